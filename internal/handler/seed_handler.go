package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"jobtrack/internal/service"
)

// SeedHandler handles seed data endpoints. Development convenience only:
// the router does not register it in production.
type SeedHandler struct {
	applicationService service.ApplicationService
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(applicationService service.ApplicationService) *SeedHandler {
	return &SeedHandler{applicationService: applicationService}
}

// SeedApplicationsResponse represents the seed response.
type SeedApplicationsResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// sampleApplications are the fixtures inserted by the seed endpoint.
var sampleApplications = []service.CreateApplicationInput{
	{
		CompanyName:    "Acme Corp",
		JobTitle:       "Backend Engineer",
		Status:         "Applied",
		JobDescription: "Go services, MySQL, Redis.",
		URL:            "https://careers.acme.example/backend-engineer",
	},
	{
		CompanyName: "Initech",
		JobTitle:    "Platform Engineer",
		Status:      "Interviewing",
		Notes:       "Recruiter call went well, tech screen next week.",
		URL:         "https://jobs.initech.example/platform",
	},
	{
		CompanyName: "Globex",
		JobTitle:    "Site Reliability Engineer",
		Status:      "Rejected",
		Notes:       "Position filled internally.",
	},
}

// SeedApplications godoc
// @Summary Seed sample job applications
// @Tags seed
// @Produce json
// @Success 200 {object} SeedApplicationsResponse
// @Failure 500 {object} map[string]string
// @Router /seed/applications [post]
func (h *SeedHandler) SeedApplications(c echo.Context) error {
	count := 0
	for _, in := range sampleApplications {
		if _, err := h.applicationService.Create(c.Request().Context(), in); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{
				"error": "failed to seed applications",
			})
		}
		count++
	}

	return c.JSON(http.StatusOK, SeedApplicationsResponse{
		Message: "Applications seeded successfully",
		Count:   count,
	})
}
