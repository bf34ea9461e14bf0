package memory

import (
	"context"

	"github.com/riskibarqy/gamemaster/internal/domain/user"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) GetByID(_ context.Context, userID string) (user.User, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[userID]
	return u, ok, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (user.User, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	id, ok := r.store.userByEmail[user.NormalizeEmail(email)]
	if !ok {
		return user.User{}, false, nil
	}
	return r.store.users[id], true, nil
}

func (r *UserRepository) Create(_ context.Context, u user.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u.Email = user.NormalizeEmail(u.Email)
	if _, exists := r.store.userByEmail[u.Email]; exists {
		return user.ErrDuplicateEmail
	}
	r.store.users[u.ID] = u
	r.store.userByEmail[u.Email] = u.ID
	return nil
}

func (r *UserRepository) ClaimCredentials(_ context.Context, userID, passwordHash, name string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.users[userID]
	if !ok || u.HasPassword() {
		return false, nil
	}
	u.PasswordHash = passwordHash
	u.Name = name
	r.store.users[userID] = u
	return true, nil
}
