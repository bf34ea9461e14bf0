package template

import "context"

type Repository interface {
	Create(ctx context.Context, t Template) error
	GetByID(ctx context.Context, templateID string) (Template, bool, error)
	List(ctx context.Context, filter Filter) ([]Template, error)
}
