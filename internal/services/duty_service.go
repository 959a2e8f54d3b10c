package services

import (
	"context"
	"fmt"
	"time"

	"github.com/bsheremet/unit-info-backend/internal/models"
	"github.com/google/uuid"
)

// DutyRepository is the interface that wraps methods for duties collection
// data access.
type DutyRepository interface {
	// Method Create inserts a new duty entry.
	Create(ctx context.Context, duty *models.Duty) error
	// Method ListAll retrieves every duty entry sorted ascending by date.
	ListAll(ctx context.Context) ([]models.Duty, error)
	// Method ListByUser retrieves one user's entries sorted ascending by date.
	ListByUser(ctx context.Context, userID string) ([]models.Duty, error)
	// Method Exists reports whether an entry is stored for (user, date).
	Exists(ctx context.Context, userID, date string) (bool, error)
	// Method DeleteByUser removes every entry of a user and returns the
	// deleted count; zero is a valid result.
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}

// UserDirectory resolves user ids to users; duty entries snapshot the user
// name from it at assignment time.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// dutyService reconciles the duty roster. Assignment is a set-membership
// problem over (user, date) pairs: the caller declares the dates a user
// should be on duty and the service inserts whatever is missing.
type dutyService struct {
	dutyRepo DutyRepository
	users    UserDirectory
}

// NewDutyService creates a new duty service
func NewDutyService(dutyRepo DutyRepository, users UserDirectory) *dutyService {
	return &dutyService{
		dutyRepo: dutyRepo,
		users:    users,
	}
}

// BulkAssign expands the (user, dates) pairs into individual duty entries
// and inserts the ones not stored yet. Every referenced user is resolved up
// front: an unknown user id fails the whole call before anything is
// written. Re-submitting the same request is idempotent and reports zero.
// The returned count is the number of entries actually inserted.
func (s *dutyService) BulkAssign(ctx context.Context, assignments []models.DutyAssignment) (int, error) {
	// Normalize dates and collapse duplicate (user, date) pairs in the input
	type pair struct {
		userID string
		date   string
	}
	pairs := make([]pair, 0)
	seen := make(map[pair]bool)
	for _, a := range assignments {
		if a.UserID == "" {
			return 0, fmt.Errorf("user_id is required: %w", models.ErrValidation)
		}
		for _, raw := range a.Dates {
			date, err := models.ParseDutyDate(raw)
			if err != nil {
				return 0, err
			}
			p := pair{userID: a.UserID, date: date}
			if seen[p] {
				continue
			}
			seen[p] = true
			pairs = append(pairs, p)
		}
	}

	// Resolve all users before writing anything so a bad id cannot leave a
	// partial batch behind
	userNames := make(map[string]string)
	for _, p := range pairs {
		if _, ok := userNames[p.userID]; ok {
			continue
		}
		user, err := s.users.GetByID(ctx, p.userID)
		if err != nil {
			return 0, err
		}
		userNames[p.userID] = user.FullName
	}

	created := 0
	for _, p := range pairs {
		exists, err := s.dutyRepo.Exists(ctx, p.userID, p.date)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}

		duty := &models.Duty{
			ID:        uuid.New().String(),
			UserID:    p.userID,
			UserName:  userNames[p.userID],
			DutyDate:  p.date,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.dutyRepo.Create(ctx, duty); err != nil {
			return created, err
		}
		created++
	}

	return created, nil
}

// ListAll returns every duty entry sorted ascending by duty date
func (s *dutyService) ListAll(ctx context.Context) ([]models.Duty, error) {
	return s.dutyRepo.ListAll(ctx)
}

// ListForUser returns one user's duty entries sorted ascending by duty date
func (s *dutyService) ListForUser(ctx context.Context, userID string) ([]models.Duty, error) {
	return s.dutyRepo.ListByUser(ctx, userID)
}

// ReplaceForUser makes the stored roster for a user exactly the given date
// list: every existing entry is deleted, then the new dates are assigned.
// Duplicates in the input collapse to one entry and the order of the input
// does not matter. Returns the number of entries the user ends up with.
func (s *dutyService) ReplaceForUser(ctx context.Context, userID string, dates []string) (int, error) {
	// Validate the user and every date before touching stored entries
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return 0, err
	}
	normalized := make([]string, 0, len(dates))
	for _, raw := range dates {
		date, err := models.ParseDutyDate(raw)
		if err != nil {
			return 0, err
		}
		normalized = append(normalized, date)
	}

	if _, err := s.dutyRepo.DeleteByUser(ctx, userID); err != nil {
		return 0, err
	}

	return s.BulkAssign(ctx, []models.DutyAssignment{{UserID: userID, Dates: normalized}})
}

// DeleteForUser clears a user's roster and returns how many entries existed
func (s *dutyService) DeleteForUser(ctx context.Context, userID string) (int64, error) {
	return s.dutyRepo.DeleteByUser(ctx, userID)
}
