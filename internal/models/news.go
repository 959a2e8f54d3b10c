package models

import "time"

// News represents a single news item, authored locally or pulled from an
// external feed. External items carry ExternalURL which is used for dedup.
type News struct {
	ID          string    `json:"id" bson:"id"`
	Title       string    `json:"title" bson:"title"`
	Content     string    `json:"content" bson:"content"`
	ImageURL    string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	AuthorID    string    `json:"author_id" bson:"author_id"`
	AuthorName  string    `json:"author_name" bson:"author_name"`
	IsExternal  bool      `json:"is_external" bson:"is_external"`
	ExternalURL string    `json:"external_url,omitempty" bson:"external_url,omitempty"`
	Source      string    `json:"source,omitempty" bson:"source,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// NewsCreate is the payload for POST /news
type NewsCreate struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url,omitempty"`
}

// NewsUpdate is a partial update for a news item; nil fields are left untouched
type NewsUpdate struct {
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
}
