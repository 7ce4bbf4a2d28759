package repository

import (
	"context"
	"fmt"

	"frontline/internal/database"
	"frontline/internal/domain"
)

// FormStore is implemented by both the gorm and the mongo repositories.
type FormStore interface {
	Create(ctx context.Context, f *domain.Form) error
	List(ctx context.Context, limit, offset int) ([]domain.Form, error)
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id string) (*domain.Form, error)
	Replace(ctx context.Context, id string, rep domain.FormReplacement) (*domain.Form, error)
	UpdateRates(ctx context.Context, id string, u domain.RatesUpdate) (*domain.Form, error)
	Delete(ctx context.Context, id string) error
}

var (
	_ FormStore = (*FormRepository)(nil)
	_ FormStore = (*MongoFormRepository)(nil)
)

// NewFormStore returns the repository matching the backend conn is connected to.
func NewFormStore(conn *database.Conn) (FormStore, error) {
	switch conn.Backend() {
	case database.BackendMongo:
		return NewMongoFormRepository(conn.Mongo()), nil
	case database.BackendPostgres, database.BackendSQLite:
		return NewFormRepository(conn.SQL()), nil
	default:
		return nil, fmt.Errorf("%w: not connected", database.ErrConnection)
	}
}
