package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	errs "jobtrack/internal/errors"
	"jobtrack/internal/model"
)

// MockApplicationRepository is a mock implementation of ApplicationRepository.
type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Create(ctx context.Context, app *model.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockApplicationRepository) FindByID(ctx context.Context, id uint) (*model.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationRepository) List(ctx context.Context) ([]model.Application, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Application), args.Error(1)
}

func (m *MockApplicationRepository) UpdateFields(ctx context.Context, id uint, changes map[string]interface{}) error {
	args := m.Called(ctx, id, changes)
	return args.Error(0)
}

func (m *MockApplicationRepository) Delete(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func strPtr(s string) *string { return &s }

func TestApplicationService_Create_Defaults(t *testing.T) {
	mockRepo := new(MockApplicationRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Application")).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Application).ID = 1
	}).Return(nil)

	service := NewApplicationService(mockRepo, nil)

	app, err := service.Create(context.Background(), CreateApplicationInput{
		CompanyName: "Acme",
		JobTitle:    "Engineer",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Acme", app.CompanyName)
	assert.Equal(t, "Engineer", app.JobTitle)
	assert.Equal(t, model.DefaultStatus, app.Status)

	today := dateOnly(time.Now())
	assert.True(t, app.ApplicationDate.Equal(today), "application_date should default to today")

	mockRepo.AssertExpectations(t)
}

func TestApplicationService_Create_ExplicitFields(t *testing.T) {
	mockRepo := new(MockApplicationRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Application")).Return(nil)

	service := NewApplicationService(mockRepo, nil)

	date := time.Date(2026, time.August, 3, 15, 4, 5, 0, time.UTC)
	app, err := service.Create(context.Background(), CreateApplicationInput{
		CompanyName:     "Initech",
		JobTitle:        "Platform Engineer",
		Status:          "Interviewing",
		ApplicationDate: &date,
		Notes:           "referral",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Interviewing", app.Status)
	// The DATE column gets the calendar date, not the timestamp.
	assert.Equal(t, time.Date(2026, time.August, 3, 0, 0, 0, 0, time.UTC), app.ApplicationDate)
	assert.Equal(t, "referral", app.Notes)
}

func TestApplicationService_Create_PersistenceFailure(t *testing.T) {
	mockRepo := new(MockApplicationRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Application")).Return(errs.ErrNothingPersisted)

	service := NewApplicationService(mockRepo, nil)

	app, err := service.Create(context.Background(), CreateApplicationInput{
		CompanyName: "Acme",
		JobTitle:    "Engineer",
	})

	assert.Nil(t, app)
	assert.ErrorIs(t, err, errs.ErrNothingPersisted)
}

func TestApplicationService_GetByID(t *testing.T) {
	tests := []struct {
		name          string
		id            uint
		setupMock     func(*MockApplicationRepository)
		expectedError error
	}{
		{
			name: "found",
			id:   1,
			setupMock: func(m *MockApplicationRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(&model.Application{ID: 1, CompanyName: "Acme"}, nil)
			},
		},
		{
			name: "not found is a distinct signal",
			id:   99,
			setupMock: func(m *MockApplicationRepository) {
				m.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errs.ErrApplicationNotFound,
		},
		{
			name: "storage failure is not a not-found",
			id:   1,
			setupMock: func(m *MockApplicationRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(nil, errors.New("connection reset"))
			},
			expectedError: errors.New("connection reset"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockApplicationRepository)
			tt.setupMock(mockRepo)

			service := NewApplicationService(mockRepo, nil)
			app, err := service.GetByID(context.Background(), tt.id)

			switch {
			case tt.expectedError == nil:
				assert.NoError(t, err)
				assert.NotNil(t, app)
			case errors.Is(tt.expectedError, errs.ErrApplicationNotFound):
				assert.ErrorIs(t, err, errs.ErrApplicationNotFound)
				assert.Nil(t, app)
			default:
				assert.Error(t, err)
				assert.NotErrorIs(t, err, errs.ErrApplicationNotFound)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestApplicationService_Update_PartialFields(t *testing.T) {
	existing := &model.Application{ID: 1, CompanyName: "Acme", JobTitle: "Engineer", Status: "Applied"}
	updated := &model.Application{ID: 1, CompanyName: "Acme", JobTitle: "Engineer", Status: "Offer"}

	mockRepo := new(MockApplicationRepository)
	mockRepo.On("FindByID", mock.Anything, uint(1)).Return(existing, nil).Once()

	var captured map[string]interface{}
	mockRepo.On("UpdateFields", mock.Anything, uint(1), mock.AnythingOfType("map[string]interface {}")).Run(func(args mock.Arguments) {
		captured = args.Get(2).(map[string]interface{})
	}).Return(nil)
	mockRepo.On("FindByID", mock.Anything, uint(1)).Return(updated, nil).Once()

	service := NewApplicationService(mockRepo, nil)

	app, err := service.Update(context.Background(), 1, UpdateApplicationInput{
		Status: strPtr("Offer"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "Offer", app.Status)
	assert.Equal(t, "Acme", app.CompanyName)

	// Only the supplied field makes it into the column map.
	assert.Equal(t, map[string]interface{}{"status": "Offer"}, captured)

	mockRepo.AssertExpectations(t)
}

func TestApplicationService_Update_EmptyInputIsNoop(t *testing.T) {
	existing := &model.Application{ID: 1, CompanyName: "Acme", JobTitle: "Engineer"}

	mockRepo := new(MockApplicationRepository)
	mockRepo.On("FindByID", mock.Anything, uint(1)).Return(existing, nil)

	service := NewApplicationService(mockRepo, nil)

	app, err := service.Update(context.Background(), 1, UpdateApplicationInput{})

	assert.NoError(t, err)
	assert.Equal(t, existing, app)
	mockRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestApplicationService_Update_NotFound(t *testing.T) {
	mockRepo := new(MockApplicationRepository)
	mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	service := NewApplicationService(mockRepo, nil)

	app, err := service.Update(context.Background(), 99, UpdateApplicationInput{
		Status: strPtr("Offer"),
	})

	assert.Nil(t, app)
	assert.ErrorIs(t, err, errs.ErrApplicationNotFound)
	mockRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestApplicationService_Delete(t *testing.T) {
	tests := []struct {
		name    string
		id      uint
		deleted bool
	}{
		{name: "existing row removed", id: 1, deleted: true},
		{name: "already deleted id reports false", id: 99, deleted: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockApplicationRepository)
			mockRepo.On("Delete", mock.Anything, tt.id).Return(tt.deleted, nil)

			service := NewApplicationService(mockRepo, nil)
			deleted, err := service.Delete(context.Background(), tt.id)

			assert.NoError(t, err)
			assert.Equal(t, tt.deleted, deleted)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestApplicationService_List(t *testing.T) {
	// Ordering is the repository's contract (updated_at DESC); the service
	// passes the slice through untouched.
	apps := []model.Application{
		{ID: 2, CompanyName: "Initech"},
		{ID: 1, CompanyName: "Acme"},
	}

	mockRepo := new(MockApplicationRepository)
	mockRepo.On("List", mock.Anything).Return(apps, nil)

	service := NewApplicationService(mockRepo, nil)
	got, err := service.List(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, apps, got)
}

func TestUpdateApplicationInput_Changes_AllowList(t *testing.T) {
	date := time.Date(2026, time.July, 1, 10, 0, 0, 0, time.UTC)
	in := UpdateApplicationInput{
		CompanyName:     strPtr("Globex"),
		JobTitle:        strPtr("SRE"),
		Status:          strPtr("Offer"),
		ApplicationDate: &date,
		JobDescription:  strPtr("on-call"),
		Notes:           strPtr("n"),
		URL:             strPtr("https://example.com"),
	}

	changes := in.changes()

	assert.Equal(t, map[string]interface{}{
		"company_name":     "Globex",
		"job_title":        "SRE",
		"status":           "Offer",
		"application_date": time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC),
		"job_description":  "on-call",
		"notes":            "n",
		"url":              "https://example.com",
	}, changes)
}
