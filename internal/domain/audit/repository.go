package audit

import "context"

type Repository interface {
	Append(ctx context.Context, e Event) error
}
