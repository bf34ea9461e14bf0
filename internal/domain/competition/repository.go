package competition

import "context"

type Repository interface {
	Create(ctx context.Context, c Competition) error
	GetByID(ctx context.Context, competitionID string) (Competition, bool, error)
	List(ctx context.Context, filter Filter) ([]Competition, error)
	// TransitionStatus moves the competition from one status to another only
	// if it is still in from. It reports whether a row changed.
	TransitionStatus(ctx context.Context, competitionID string, from, to Status) (bool, error)
}

type EntryRepository interface {
	// Join upserts the user by email, ensures a PLAYER club membership without
	// downgrading an existing role and inserts the entry, all or nothing.
	// A second entry for the same user fails with ErrDuplicateEntry.
	Join(ctx context.Context, params JoinParams) (JoinResult, error)
}
