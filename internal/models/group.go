package models

import "time"

// Group is a named set of unit members. Membership is kept as an embedded
// list of user ids.
type Group struct {
	ID          string    `json:"id" bson:"id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	MemberIDs   []string  `json:"member_ids" bson:"member_ids"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// HasMember reports whether the given user id belongs to the group
func (g *Group) HasMember(userID string) bool {
	for _, id := range g.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// GroupCreate is the payload for POST /groups
type GroupCreate struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// GroupUpdate is a partial update for a group; nil fields are left untouched
type GroupUpdate struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	MemberIDs   *[]string `json:"member_ids,omitempty"`
}
