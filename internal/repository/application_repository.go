package repository

import (
	"context"

	"gorm.io/gorm"

	errs "jobtrack/internal/errors"
	"jobtrack/internal/model"
)

// ApplicationRepository defines persistence operations over job applications.
type ApplicationRepository interface {
	Create(ctx context.Context, app *model.Application) error
	FindByID(ctx context.Context, id uint) (*model.Application, error)
	List(ctx context.Context) ([]model.Application, error)
	UpdateFields(ctx context.Context, id uint, changes map[string]interface{}) error
	Delete(ctx context.Context, id uint) (bool, error)
}

type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository builds a GORM-backed repository.
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, app *model.Application) error {
	res := r.db.WithContext(ctx).Create(app)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrNothingPersisted
	}
	return nil
}

func (r *applicationRepository) FindByID(ctx context.Context, id uint) (*model.Application, error) {
	var app model.Application
	if err := r.db.WithContext(ctx).First(&app, id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// List returns every application, most recently updated first.
func (r *applicationRepository) List(ctx context.Context) ([]model.Application, error) {
	var apps []model.Application
	if err := r.db.WithContext(ctx).Order("updated_at DESC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// UpdateFields applies a column map built by the service from its fixed
// allow-list. GORM's Updates callback refreshes updated_at alongside.
func (r *applicationRepository) UpdateFields(ctx context.Context, id uint, changes map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Application{}).
		Where("id = ?", id).
		Updates(changes).Error
}

func (r *applicationRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Application{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
