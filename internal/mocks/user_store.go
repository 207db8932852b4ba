package mocks

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/promanage/promanage-api/internal/domain"
	"github.com/promanage/promanage-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn               func(ctx context.Context, user *domain.User) error
	GetByIDFn              func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFn           func(ctx context.Context, email string) (*domain.User, error)
	UpdateFn               func(ctx context.Context, user *domain.User) error
	SearchEmailsByPrefixFn func(ctx context.Context, prefix string, excludeID uuid.UUID) ([]string, error)

	// Users holds the default in-memory state, keyed by lowercased email.
	Users map[string]*domain.User

	// Errors forced onto the default implementations
	CreateError error
	GetError    error
	UpdateError error
	SearchError error
}

// Ensure MockUserStore implements store.UserStore
var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users: make(map[string]*domain.User),
	}
}

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	key := strings.ToLower(user.Email)
	if _, exists := m.Users[key]; exists {
		return store.ErrEmailExists
	}

	m.Users[key] = user
	return nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	if m.GetError != nil {
		return nil, m.GetError
	}

	for _, user := range m.Users {
		if user.ID == id {
			return user, nil
		}
	}

	return nil, store.ErrUserNotFound
}

// GetByEmail implements the UserStore interface
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	if m.GetError != nil {
		return nil, m.GetError
	}

	user, exists := m.Users[strings.ToLower(email)]
	if !exists {
		return nil, store.ErrUserNotFound
	}

	return user, nil
}

// Update implements the UserStore interface
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}

	if m.UpdateError != nil {
		return m.UpdateError
	}

	for key, existing := range m.Users {
		if existing.ID == user.ID {
			newKey := strings.ToLower(user.Email)
			if key != newKey {
				if _, exists := m.Users[newKey]; exists {
					return store.ErrEmailExists
				}
				delete(m.Users, key)
			}
			m.Users[newKey] = user
			return nil
		}
	}

	return store.ErrUserNotFound
}

// SearchEmailsByPrefix implements the UserStore interface
func (m *MockUserStore) SearchEmailsByPrefix(
	ctx context.Context,
	prefix string,
	excludeID uuid.UUID,
) ([]string, error) {
	if m.SearchEmailsByPrefixFn != nil {
		return m.SearchEmailsByPrefixFn(ctx, prefix, excludeID)
	}

	if m.SearchError != nil {
		return nil, m.SearchError
	}

	emails := []string{}
	lowered := strings.ToLower(prefix)
	for _, user := range m.Users {
		if user.ID == excludeID {
			continue
		}
		if strings.HasPrefix(strings.ToLower(user.Email), lowered) {
			emails = append(emails, user.Email)
		}
	}
	sort.Strings(emails)

	return emails, nil
}
