package form

import (
	"context"

	"frontline/internal/domain"
)

type FormRepository interface {
	Create(ctx context.Context, f *domain.Form) error
	List(ctx context.Context, limit, offset int) ([]domain.Form, error)
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id string) (*domain.Form, error)
	Replace(ctx context.Context, id string, rep domain.FormReplacement) (*domain.Form, error)
	UpdateRates(ctx context.Context, id string, u domain.RatesUpdate) (*domain.Form, error)
	Delete(ctx context.Context, id string) error
}

// CodeGenerator renders content into an embeddable image reference.
type CodeGenerator interface {
	DataURI(content string) (string, error)
}
