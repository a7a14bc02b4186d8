package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	errs "jobtrack/internal/errors"
	"jobtrack/internal/service"
)

const dateLayout = "2006-01-02"

// ApplicationHandler handles job-application endpoints.
type ApplicationHandler struct {
	applicationService service.ApplicationService
}

// NewApplicationHandler creates a new application handler.
func NewApplicationHandler(applicationService service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

// CreateApplicationRequest represents an application creation request.
// Status and application_date are optional; the service defaults them.
type CreateApplicationRequest struct {
	CompanyName     string `json:"company_name" validate:"required"`
	JobTitle        string `json:"job_title" validate:"required"`
	Status          string `json:"status"`
	ApplicationDate string `json:"application_date"`
	JobDescription  string `json:"job_description"`
	Notes           string `json:"notes"`
	URL             string `json:"url"`
}

// UpdateApplicationRequest represents a partial update. Absent fields are
// left untouched.
type UpdateApplicationRequest struct {
	CompanyName     *string `json:"company_name"`
	JobTitle        *string `json:"job_title"`
	Status          *string `json:"status"`
	ApplicationDate *string `json:"application_date"`
	JobDescription  *string `json:"job_description"`
	Notes           *string `json:"notes"`
	URL             *string `json:"url"`
}

// Create godoc
// @Summary Create a job application
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateApplicationRequest true "Application data"
// @Success 201 {object} model.Application
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /applications [post]
func (h *ApplicationHandler) Create(c echo.Context) error {
	var req CreateApplicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := service.CreateApplicationInput{
		CompanyName:    req.CompanyName,
		JobTitle:       req.JobTitle,
		Status:         req.Status,
		JobDescription: req.JobDescription,
		Notes:          req.Notes,
		URL:            req.URL,
	}
	if req.ApplicationDate != "" {
		date, err := parseDate(req.ApplicationDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errs.ErrorResponse{
				Error: "invalid application_date, expected YYYY-MM-DD",
				Code:  "INVALID_DATE",
			})
		}
		in.ApplicationDate = &date
	}

	app, err := h.applicationService.Create(c.Request().Context(), in)
	if err != nil {
		httpErr := errs.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, app)
}

// List godoc
// @Summary List all job applications
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Application
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /applications [get]
func (h *ApplicationHandler) List(c echo.Context) error {
	apps, err := h.applicationService.List(c.Request().Context())
	if err != nil {
		httpErr := errs.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, apps)
}

// GetByID godoc
// @Summary Get a job application by id
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} model.Application
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /applications/{id} [get]
func (h *ApplicationHandler) GetByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	app, err := h.applicationService.GetByID(c.Request().Context(), id)
	if err != nil {
		httpErr := errs.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, app)
}

// Update godoc
// @Summary Partially update a job application
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body UpdateApplicationRequest true "Fields to update"
// @Success 200 {object} model.Application
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /applications/{id} [put]
func (h *ApplicationHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req UpdateApplicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	in := service.UpdateApplicationInput{
		CompanyName:    req.CompanyName,
		JobTitle:       req.JobTitle,
		Status:         req.Status,
		JobDescription: req.JobDescription,
		Notes:          req.Notes,
		URL:            req.URL,
	}
	if req.ApplicationDate != nil {
		date, err := parseDate(*req.ApplicationDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errs.ErrorResponse{
				Error: "invalid application_date, expected YYYY-MM-DD",
				Code:  "INVALID_DATE",
			})
		}
		in.ApplicationDate = &date
	}

	app, err := h.applicationService.Update(c.Request().Context(), id, in)
	if err != nil {
		httpErr := errs.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, app)
}

// Delete godoc
// @Summary Delete a job application
// @Tags applications
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /applications/{id} [delete]
func (h *ApplicationHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	deleted, err := h.applicationService.Delete(c.Request().Context(), id)
	if err != nil {
		httpErr := errs.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	if !deleted {
		httpErr := errs.MapErrorToHTTP(errs.ErrApplicationNotFound)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.NoContent(http.StatusNoContent)
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errs.ErrorResponse{
			Error: "invalid application id",
			Code:  "INVALID_ID",
		})
	}
	return uint(id), nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
