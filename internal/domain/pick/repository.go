package pick

import "context"

type Repository interface {
	// Upsert inserts p or, when the user already picked this fixture,
	// overwrites the team and returns the stored row.
	Upsert(ctx context.Context, p Pick) (Pick, error)
}
