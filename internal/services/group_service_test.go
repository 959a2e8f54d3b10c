package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/bsheremet/unit-info-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockGroupRepository is a stateful mock implementation of GroupRepository
type mockGroupRepository struct {
	groups    []models.Group
	createErr error
}

func (m *mockGroupRepository) List(ctx context.Context) ([]models.Group, error) {
	return m.groups, nil
}

func (m *mockGroupRepository) ListByMember(ctx context.Context, userID string) ([]models.Group, error) {
	result := make([]models.Group, 0)
	for _, g := range m.groups {
		if g.HasMember(userID) {
			result = append(result, g)
		}
	}
	return result, nil
}

func (m *mockGroupRepository) GetByID(ctx context.Context, id string) (*models.Group, error) {
	for i := range m.groups {
		if m.groups[i].ID == id {
			return &m.groups[i], nil
		}
	}
	return nil, fmt.Errorf("group %w", models.ErrNotFound)
}

func (m *mockGroupRepository) Create(ctx context.Context, group *models.Group) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.groups = append(m.groups, *group)
	return nil
}

func (m *mockGroupRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	for i := range m.groups {
		if m.groups[i].ID != id {
			continue
		}
		if name, ok := fields["name"].(string); ok {
			m.groups[i].Name = name
		}
		if description, ok := fields["description"].(string); ok {
			m.groups[i].Description = description
		}
		if memberIDs, ok := fields["member_ids"].([]string); ok {
			m.groups[i].MemberIDs = memberIDs
		}
		return nil
	}
	return fmt.Errorf("group %w", models.ErrNotFound)
}

func (m *mockGroupRepository) Delete(ctx context.Context, id string) (int64, error) {
	for i := range m.groups {
		if m.groups[i].ID == id {
			m.groups = append(m.groups[:i], m.groups[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func TestGroupService_Create(t *testing.T) {
	t.Run("success starts with no members", func(t *testing.T) {
		repo := &mockGroupRepository{}
		svc := NewGroupService(repo, testUserDirectory())

		group, err := svc.Create(context.Background(), &models.GroupCreate{
			Name:        "Перша рота",
			Description: "Особовий склад першої роти",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, group.ID)
		assert.Equal(t, "Перша рота", group.Name)
		assert.NotNil(t, group.MemberIDs)
		assert.Empty(t, group.MemberIDs)
	})

	t.Run("missing name", func(t *testing.T) {
		svc := NewGroupService(&mockGroupRepository{}, testUserDirectory())

		_, err := svc.Create(context.Background(), &models.GroupCreate{})

		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrValidation)
	})
}

func TestGroupService_Update_ReplacesMemberList(t *testing.T) {
	repo := &mockGroupRepository{groups: []models.Group{
		{ID: "g1", Name: "Перша рота", MemberIDs: []string{"u1"}},
	}}
	svc := NewGroupService(repo, testUserDirectory())

	members := []string{"u1", "u2"}
	group, err := svc.Update(context.Background(), "g1", &models.GroupUpdate{MemberIDs: &members})

	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2"}, group.MemberIDs)
	assert.Equal(t, "Перша рота", group.Name)
}

func TestGroupService_MyGroups(t *testing.T) {
	repo := &mockGroupRepository{groups: []models.Group{
		{ID: "g1", Name: "Перша рота", MemberIDs: []string{"u1", "u2"}},
		{ID: "g2", Name: "Друга рота", MemberIDs: []string{"u2"}},
	}}
	svc := NewGroupService(repo, testUserDirectory())

	mine, err := svc.MyGroups(context.Background(), "u1")

	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "g1", mine[0].ID)
}

func TestGroupService_Delete(t *testing.T) {
	repo := &mockGroupRepository{groups: []models.Group{{ID: "g1", Name: "Перша рота"}}}
	svc := NewGroupService(repo, testUserDirectory())

	require.NoError(t, svc.Delete(context.Background(), "g1"))

	err := svc.Delete(context.Background(), "g1")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestGroupService_Members(t *testing.T) {
	groups := []models.Group{
		{ID: "g1", Name: "Перша рота", MemberIDs: []string{"u1", "u2"}},
	}

	tests := []struct {
		name          string
		groupID       string
		caller        *models.User
		expectedLen   int
		expectedError bool
		errorIs       error
	}{
		{
			name:        "admin outside the group",
			groupID:     "g1",
			caller:      &models.User{ID: "admin", Role: models.RoleAdmin},
			expectedLen: 2,
		},
		{
			name:        "member of the group",
			groupID:     "g1",
			caller:      &models.User{ID: "u1", Role: models.RoleUser},
			expectedLen: 2,
		},
		{
			name:          "outsider",
			groupID:       "g1",
			caller:        &models.User{ID: "outsider", Role: models.RoleUser},
			expectedError: true,
			errorIs:       models.ErrForbidden,
		},
		{
			name:          "unknown group",
			groupID:       "missing",
			caller:        &models.User{ID: "admin", Role: models.RoleAdmin},
			expectedError: true,
			errorIs:       models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockGroupRepository{groups: groups}
			svc := NewGroupService(repo, testUserDirectory())

			members, err := svc.Members(context.Background(), tt.groupID, tt.caller)

			if tt.expectedError {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.errorIs)
				return
			}

			require.NoError(t, err)
			assert.Len(t, members, tt.expectedLen)
		})
	}
}

func TestGroupService_Members_SkipsDanglingIDs(t *testing.T) {
	repo := &mockGroupRepository{groups: []models.Group{
		{ID: "g1", Name: "Перша рота", MemberIDs: []string{"u1", "deleted-user", "u2"}},
	}}
	svc := NewGroupService(repo, testUserDirectory())

	members, err := svc.Members(context.Background(), "g1", &models.User{ID: "admin", Role: models.RoleAdmin})

	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "u1", members[0].ID)
	assert.Equal(t, "u2", members[1].ID)
}
