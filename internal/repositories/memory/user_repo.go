package memory

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yoockh/resumecraft/internal/models"
	pgrepo "github.com/yoockh/resumecraft/internal/repositories/postgres"
	"github.com/yoockh/resumecraft/internal/utils"
)

// UserRepo is the in-process stand-in for the postgres users table.
type UserRepo struct {
	mu    sync.RWMutex
	users map[string]models.User
	now   func() time.Time
}

var _ pgrepo.UserRepository = (*UserRepo)(nil)

func NewUserRepo() *UserRepo {
	return &UserRepo{users: map[string]models.User{}, now: func() time.Time { return time.Now().UTC() }}
}

func (r *UserRepo) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if _, exists := r.users[u.ID]; exists {
		return utils.ErrDuplicate
	}
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return utils.ErrDuplicate
		}
	}
	now := r.now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	if u.Provider == "" {
		u.Provider = models.ProviderLocal
	}
	r.users[u.ID] = cloneUser(*u)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	u = cloneUser(u)
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range r.users {
		if u.Email == email {
			u = cloneUser(u)
			return &u, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r *UserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	return r.modify(id, func(u *models.User) { u.PasswordHash = hash })
}

func (r *UserRepo) AppendResume(_ context.Context, userID, resumeID string) error {
	err := r.modify(userID, func(u *models.User) {
		if !slices.Contains(u.ResumeIDs, resumeID) {
			u.ResumeIDs = append(u.ResumeIDs, resumeID)
		}
	})
	// the postgres update silently matches no row for an unknown user
	if errors.Is(err, utils.ErrNotFound) {
		return nil
	}
	return err
}

func (r *UserRepo) RemoveResume(_ context.Context, userID, resumeID string) error {
	err := r.modify(userID, func(u *models.User) {
		u.ResumeIDs = slices.DeleteFunc(u.ResumeIDs, func(id string) bool { return id == resumeID })
	})
	if errors.Is(err, utils.ErrNotFound) {
		return nil
	}
	return err
}

func (r *UserRepo) modify(id string, fn func(u *models.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return utils.ErrNotFound
	}
	u = cloneUser(u)
	fn(&u)
	u.UpdatedAt = r.now()
	r.users[id] = u
	return nil
}

func (r *UserRepo) List(_ context.Context, q models.ListQuery) ([]models.User, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	term := strings.ToLower(strings.TrimSpace(q.Search))
	matched := []models.User{}
	for _, u := range r.users {
		if term == "" ||
			strings.Contains(strings.ToLower(u.Name), term) ||
			strings.Contains(u.Email, term) {
			matched = append(matched, cloneUser(u))
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})
	return window(matched, q), int64(len(matched)), nil
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return utils.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *UserRepo) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

func cloneUser(u models.User) models.User {
	u.ResumeIDs = slices.Clone(u.ResumeIDs)
	u.Preferences = slices.Clone(u.Preferences)
	return u
}
