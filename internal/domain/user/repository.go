package user

import "context"

type Repository interface {
	GetByID(ctx context.Context, userID string) (User, bool, error)
	GetByEmail(ctx context.Context, email string) (User, bool, error)
	Create(ctx context.Context, u User) error
	// ClaimCredentials stores a password hash and display name on a user that
	// has no password yet, e.g. a player created by a join. It reports false
	// when the user is missing or already holds credentials.
	ClaimCredentials(ctx context.Context, userID, passwordHash, name string) (bool, error)
}
