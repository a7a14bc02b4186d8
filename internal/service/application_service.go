package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"jobtrack/internal/cache"
	errs "jobtrack/internal/errors"
	"jobtrack/internal/model"
	"jobtrack/internal/repository"
)

const applicationCacheTTL = 5 * time.Minute

// CreateApplicationInput carries the creatable fields of an application.
// Status and ApplicationDate are optional and defaulted by the service.
type CreateApplicationInput struct {
	CompanyName     string
	JobTitle        string
	Status          string
	ApplicationDate *time.Time
	JobDescription  string
	Notes           string
	URL             string
}

// UpdateApplicationInput carries a partial update: nil means "leave the
// field untouched". Column names for the update are taken from the fixed
// mapping in changes(), never from caller-supplied strings.
type UpdateApplicationInput struct {
	CompanyName     *string
	JobTitle        *string
	Status          *string
	ApplicationDate *time.Time
	JobDescription  *string
	Notes           *string
	URL             *string
}

// changes builds the column map for the fields present in the input. The
// mutable attribute set is fixed here at compile time.
func (in UpdateApplicationInput) changes() map[string]interface{} {
	m := map[string]interface{}{}
	if in.CompanyName != nil {
		m["company_name"] = *in.CompanyName
	}
	if in.JobTitle != nil {
		m["job_title"] = *in.JobTitle
	}
	if in.Status != nil {
		m["status"] = *in.Status
	}
	if in.ApplicationDate != nil {
		m["application_date"] = dateOnly(*in.ApplicationDate)
	}
	if in.JobDescription != nil {
		m["job_description"] = *in.JobDescription
	}
	if in.Notes != nil {
		m["notes"] = *in.Notes
	}
	if in.URL != nil {
		m["url"] = *in.URL
	}
	return m
}

// ApplicationService exposes CRUD over job-application records. Records form
// a single shared pool: there is no per-user scoping.
type ApplicationService interface {
	Create(ctx context.Context, in CreateApplicationInput) (*model.Application, error)
	List(ctx context.Context) ([]model.Application, error)
	GetByID(ctx context.Context, id uint) (*model.Application, error)
	Update(ctx context.Context, id uint, in UpdateApplicationInput) (*model.Application, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type applicationService struct {
	repo  repository.ApplicationRepository
	cache *cache.Client
}

// NewApplicationService builds an ApplicationService with repository and cache.
func NewApplicationService(repo repository.ApplicationRepository, cache *cache.Client) ApplicationService {
	return &applicationService{repo: repo, cache: cache}
}

func (s *applicationService) cacheKey(id uint) string {
	return fmt.Sprintf("application:%d", id)
}

// Create persists a new application, defaulting status to "Applied" and the
// application date to today when absent.
func (s *applicationService) Create(ctx context.Context, in CreateApplicationInput) (*model.Application, error) {
	status := in.Status
	if status == "" {
		status = model.DefaultStatus
	}
	appDate := dateOnly(time.Now())
	if in.ApplicationDate != nil {
		appDate = dateOnly(*in.ApplicationDate)
	}

	app := &model.Application{
		CompanyName:     in.CompanyName,
		JobTitle:        in.JobTitle,
		Status:          status,
		ApplicationDate: appDate,
		JobDescription:  in.JobDescription,
		Notes:           in.Notes,
		URL:             in.URL,
	}

	if err := s.repo.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(app.ID))
	return app, nil
}

func (s *applicationService) List(ctx context.Context) ([]model.Application, error) {
	return s.repo.List(ctx)
}

// GetByID returns the application or ErrApplicationNotFound, distinct from a
// storage failure. Hits are served from the fail-safe cache.
func (s *applicationService) GetByID(ctx context.Context, id uint) (*model.Application, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Application
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("find application: %w", err)
	}

	if payload, err := json.Marshal(app); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, applicationCacheTTL)
	}
	return app, nil
}

// Update applies a partial update touching only the fields present in the
// input. An empty field set is a no-op returning the current record. The
// existence check and the update run as two independent statements, the same
// check-then-act the rest of the service uses.
func (s *applicationService) Update(ctx context.Context, id uint, in UpdateApplicationInput) (*model.Application, error) {
	changes := in.changes()
	if len(changes) == 0 {
		return s.GetByID(ctx, id)
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("find application: %w", err)
	}

	if err := s.repo.UpdateFields(ctx, id, changes); err != nil {
		return nil, fmt.Errorf("update application: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))

	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload application: %w", err)
	}
	return app, nil
}

// Delete removes an application, reporting false when the id did not exist.
// The absence case is not an error here; callers decide how to present it.
func (s *applicationService) Delete(ctx context.Context, id uint) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete application: %w", err)
	}
	if deleted {
		_ = s.cache.Delete(ctx, s.cacheKey(id))
	}
	return deleted, nil
}

// dateOnly truncates a timestamp to its calendar date for the DATE column.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
