package repository

import (
	"context"
	"errors"

	"frontline/internal/domain"

	"gorm.io/gorm"
)

// ErrNotFound is returned when an id does not resolve to a stored form,
// including ids that are not valid ObjectIDs.
var ErrNotFound = errors.New("form not found")

// FormRepository stores forms in a relational database through gorm.
type FormRepository struct {
	db *gorm.DB
}

func NewFormRepository(db *gorm.DB) *FormRepository {
	return &FormRepository{db: db}
}

// Create inserts f as is; the id is allocated by the caller.
func (r *FormRepository) Create(ctx context.Context, f *domain.Form) error {
	return r.db.WithContext(ctx).Create(f).Error
}

// List returns one page of forms, newest first.
func (r *FormRepository) List(ctx context.Context, limit, offset int) ([]domain.Form, error) {
	var forms []domain.Form
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&forms).Error
	if err != nil {
		return nil, err
	}
	return forms, nil
}

func (r *FormRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.Form{}).Count(&total).Error
	return total, err
}

func (r *FormRepository) GetByID(ctx context.Context, id string) (*domain.Form, error) {
	if !domain.IsValidFormID(id) {
		return nil, ErrNotFound
	}
	return r.first(r.db.WithContext(ctx), id)
}

// Replace overwrites the full field set of the form.
func (r *FormRepository) Replace(ctx context.Context, id string, rep domain.FormReplacement) (*domain.Form, error) {
	return r.modify(ctx, id, rep.Apply)
}

// UpdateRates writes the rates marked as set in u and nothing else.
func (r *FormRepository) UpdateRates(ctx context.Context, id string, u domain.RatesUpdate) (*domain.Form, error) {
	return r.modify(ctx, id, u.Apply)
}

func (r *FormRepository) Delete(ctx context.Context, id string) error {
	if !domain.IsValidFormID(id) {
		return ErrNotFound
	}
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Form{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *FormRepository) modify(ctx context.Context, id string, change func(*domain.Form)) (*domain.Form, error) {
	if !domain.IsValidFormID(id) {
		return nil, ErrNotFound
	}

	var updated *domain.Form
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		f, err := r.first(tx, id)
		if err != nil {
			return err
		}
		change(f)
		if err := tx.Save(f).Error; err != nil {
			return err
		}
		updated = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *FormRepository) first(db *gorm.DB, id string) (*domain.Form, error) {
	var f domain.Form
	if err := db.Where("id = ?", id).First(&f).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}
