package models

import (
	"fmt"
	"time"
)

// DutyDateLayout is the wire and storage format for duty dates. Dates carry
// no time component; the lexicographic order of this layout matches
// chronological order, so stored entries sort correctly as plain strings.
const DutyDateLayout = "2006-01-02"

// Duty asserts that a specific user is on duty on a specific calendar date.
// UserName is a snapshot taken at assignment time and is not kept in sync
// with later renames. At most one entry exists per (user_id, duty_date).
type Duty struct {
	ID        string    `json:"id" bson:"id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	UserName  string    `json:"user_name" bson:"user_name"`
	DutyDate  string    `json:"duty_date" bson:"duty_date"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// DutyAssignment is one (user, dates) pair of a bulk-assign request
type DutyAssignment struct {
	UserID string   `json:"user_id"`
	Dates  []string `json:"dates"`
}

// BulkAssignRequest is the payload for POST /duties/bulk
type BulkAssignRequest struct {
	Assignments []DutyAssignment `json:"assignments"`
}

// ReplaceDutiesRequest is the payload for PUT /duties/user/{id}
type ReplaceDutiesRequest struct {
	Dates []string `json:"dates"`
}

// ParseDutyDate normalizes an incoming ISO-8601 date to DutyDateLayout.
// A full timestamp is accepted and truncated to its calendar date.
func ParseDutyDate(s string) (string, error) {
	if t, err := time.Parse(DutyDateLayout, s); err == nil {
		return t.Format(DutyDateLayout), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format(DutyDateLayout), nil
	}
	return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, ErrValidation)
}
