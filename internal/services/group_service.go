package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsheremet/unit-info-backend/internal/models"
	"github.com/google/uuid"
)

// GroupRepository is the interface that wraps methods for groups collection
// data access.
type GroupRepository interface {
	// Method List retrieves all groups.
	List(ctx context.Context) ([]models.Group, error)
	// Method ListByMember retrieves the groups a user belongs to.
	ListByMember(ctx context.Context, userID string) ([]models.Group, error)
	// Method GetByID retrieves a single group.
	GetByID(ctx context.Context, id string) (*models.Group, error)
	// Method Create inserts a new group document.
	Create(ctx context.Context, group *models.Group) error
	// Method Update applies a partial field set to a group document.
	Update(ctx context.Context, id string, fields map[string]any) error
	// Method Delete removes a group document and returns the deleted count.
	Delete(ctx context.Context, id string) (int64, error)
}

// groupService implements member group management
type groupService struct {
	groupRepo GroupRepository
	users     UserDirectory
}

// NewGroupService creates a new group service
func NewGroupService(groupRepo GroupRepository, users UserDirectory) *groupService {
	return &groupService{
		groupRepo: groupRepo,
		users:     users,
	}
}

// List returns all groups
func (s *groupService) List(ctx context.Context) ([]models.Group, error) {
	return s.groupRepo.List(ctx)
}

// MyGroups returns the groups the caller belongs to
func (s *groupService) MyGroups(ctx context.Context, userID string) ([]models.Group, error) {
	return s.groupRepo.ListByMember(ctx, userID)
}

// Create makes a new, initially empty group
func (s *groupService) Create(ctx context.Context, req *models.GroupCreate) (*models.Group, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required: %w", models.ErrValidation)
	}

	group := &models.Group{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		MemberIDs:   []string{},
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// Update applies a partial update to a group, including full replacement of
// the member list
func (s *groupService) Update(ctx context.Context, id string, upd *models.GroupUpdate) (*models.Group, error) {
	fields := map[string]any{}
	if upd.Name != nil {
		fields["name"] = *upd.Name
	}
	if upd.Description != nil {
		fields["description"] = *upd.Description
	}
	if upd.MemberIDs != nil {
		fields["member_ids"] = *upd.MemberIDs
	}

	if len(fields) > 0 {
		if err := s.groupRepo.Update(ctx, id, fields); err != nil {
			return nil, err
		}
	}

	return s.groupRepo.GetByID(ctx, id)
}

// Delete removes a group
func (s *groupService) Delete(ctx context.Context, id string) error {
	count, err := s.groupRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("group %w", models.ErrNotFound)
	}
	return nil
}

// Members resolves a group's member ids to users. Only group members and
// admins may look at the roster. Dangling ids of since-deleted users are
// skipped silently.
func (s *groupService) Members(ctx context.Context, groupID string, caller *models.User) ([]models.User, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if !caller.IsAdmin() && !group.HasMember(caller.ID) {
		return nil, models.ErrForbidden
	}

	members := []models.User{}
	for _, memberID := range group.MemberIDs {
		user, err := s.users.GetByID(ctx, memberID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				continue
			}
			return nil, err
		}
		members = append(members, *user)
	}

	return members, nil
}
