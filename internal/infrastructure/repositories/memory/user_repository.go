package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"hostdeck/internal/core/domain"
	"hostdeck/internal/core/ports"
)

type userRecord struct {
	user domain.User
	hash string
}

type MemoryUserRepository struct {
	mu     sync.RWMutex
	users  map[string]userRecord
	nextID int64
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: map[string]userRecord{}, nextID: 0}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *domain.User, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range r.users {
		if rec.user.Username == user.Username {
			return domain.ErrDuplicateUsername
		}
		if rec.user.Email == user.Email {
			return domain.ErrDuplicateEmail
		}
	}

	if user.ID == "" {
		r.nextID++
		user.ID = strconv.FormatInt(r.nextID, 10)
	} else if n, err := strconv.ParseInt(user.ID, 10, 64); err == nil && n > r.nextID {
		r.nextID = n
	}

	r.users[user.ID] = userRecord{user: *user, hash: passwordHash}
	return nil
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := rec.user
	return &u, nil
}

func (r *MemoryUserRepository) GetByUsernameOrEmail(_ context.Context, usernameOrEmail string) (*domain.User, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.users {
		if rec.user.Username == usernameOrEmail || rec.user.Email == usernameOrEmail {
			u := rec.user
			return &u, rec.hash, nil
		}
	}
	return nil, "", domain.ErrUserNotFound
}

func (r *MemoryUserRepository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, rec := range r.users {
		u := rec.user
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryUserRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.users[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	rec.user = *user
	r.users[user.ID] = rec
	return nil
}

func (r *MemoryUserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

var _ ports.UserRepository = (*MemoryUserRepository)(nil)
