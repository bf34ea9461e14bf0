package club

import "context"

type Repository interface {
	Create(ctx context.Context, c Club) error
	GetByID(ctx context.Context, clubID string) (Club, bool, error)
	GetBySlug(ctx context.Context, slug string) (Club, bool, error)
	List(ctx context.Context) ([]Club, error)
	Count(ctx context.Context) (int, error)

	GetMember(ctx context.Context, clubID, userID string) (Member, bool, error)
	// UpsertMember creates the membership or overwrites its role.
	UpsertMember(ctx context.Context, m Member) error
	ListMembershipsByUser(ctx context.Context, userID string) ([]Membership, error)
}
