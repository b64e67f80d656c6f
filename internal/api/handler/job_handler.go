package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gigboard/marketplace/internal/api/metrics"
	"github.com/gigboard/marketplace/internal/core/domain"
	"github.com/gigboard/marketplace/internal/core/ports"
)

// JobHandler handles HTTP requests for jobs and applications.
type JobHandler struct {
	service ports.JobService
}

func NewJobHandler(service ports.JobService) *JobHandler {
	return &JobHandler{service: service}
}

// List handles GET /v1/jobs.
//
// @Summary      Browse and search jobs
// @Tags         jobs
// @Produce      json
// @Param        q           query     string  false  "Case-insensitive text in title or description"
// @Param        category    query     string  false  "Category, repeatable or comma separated"
// @Param        min_budget  query     number  false  "Inclusive lower budget bound"
// @Param        max_budget  query     number  false  "Inclusive upper budget bound"
// @Success      200         {object}  listJobsResponse
// @Failure      400         {object}  errorResponse
// @Router       /v1/jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	filter, err := parseJobFilter(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	jobs, err := h.service.SearchJobs(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toJobListResponse(jobs))
}

// Get handles GET /v1/jobs/:id.
//
// @Summary      Get a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  jobResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/jobs/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	job, err := h.service.JobByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toJobResponse(*job))
}

// Create handles POST /v1/jobs.
//
// @Summary      Post a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      postJobRequest  true  "Job details"
// @Success      201   {object}  jobResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	who, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req postJobRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	job, err := h.service.PostJob(c.Request().Context(), toPostJobInput(req, who.ID))
	if err != nil {
		return respondError(c, err)
	}
	metrics.JobsPostedTotal.WithLabelValues(string(job.Category)).Inc()

	return c.JSON(http.StatusCreated, toJobResponse(*job))
}

// MyJobs handles GET /v1/me/jobs: the client dashboard.
//
// @Summary      List the caller's jobs with application counts
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  clientJobsResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/me/jobs [get]
func (h *JobHandler) MyJobs(c echo.Context) error {
	who, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	rows, err := h.service.ClientOverview(c.Request().Context(), who.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toClientJobsResponse(rows))
}

// ApplicationsForJob handles GET /v1/jobs/:id/applications.
//
// @Summary      List applications to one of the caller's jobs
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  listApplicationsResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/jobs/{id}/applications [get]
func (h *JobHandler) ApplicationsForJob(c echo.Context) error {
	who, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	job, err := h.service.JobByID(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	if job.ClientID != who.ID {
		return respondError(c, domain.ErrForbidden)
	}

	apps, err := h.service.ApplicationsForJob(ctx, job.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, listApplicationsResponse{Data: toApplicationResponses(apps)})
}

// Apply handles POST /v1/jobs/:id/applications.
//
// @Summary      Apply to a job
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Job id"
// @Param        body  body      applyRequest  true  "Proposal"
// @Success      201   {object}  applicationResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/jobs/{id}/applications [post]
func (h *JobHandler) Apply(c echo.Context) error {
	who, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req applyRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	app, err := h.service.Apply(c.Request().Context(), toApplyInput(req, c.Param("id"), who))
	if err != nil {
		return respondError(c, err)
	}
	metrics.ApplicationsSubmittedTotal.Inc()

	return c.JSON(http.StatusCreated, toApplicationResponse(*app))
}

// MyApplications handles GET /v1/me/applications: the freelancer dashboard.
//
// @Summary      List the caller's applications with a status tally
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  freelancerApplicationsResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/me/applications [get]
func (h *JobHandler) MyApplications(c echo.Context) error {
	who, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	overview, err := h.service.FreelancerOverview(c.Request().Context(), who.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, freelancerApplicationsResponse{
		Data:  toApplicationResponses(overview.Applications),
		Tally: toTallyResponse(overview.Tally),
	})
}

// Decide handles PATCH /v1/applications/:id.
//
// @Summary      Accept or reject an application
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Application id"
// @Param        body  body      decisionRequest  true  "Decision"
// @Success      200   {object}  applicationResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/applications/{id} [patch]
func (h *JobHandler) Decide(c echo.Context) error {
	who, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req decisionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	ctx := c.Request().Context()
	app, err := h.service.ApplicationByID(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	// Applications to jobs that no longer resolve have no owner to decide them.
	job, err := h.service.JobByID(ctx, app.JobID)
	switch {
	case errors.Is(err, domain.ErrJobNotFound):
		return respondError(c, domain.ErrForbidden)
	case err != nil:
		return respondError(c, err)
	case job.ClientID != who.ID:
		return respondError(c, domain.ErrForbidden)
	}

	updated, err := h.service.SetApplicationStatus(ctx, app.ID, domain.ApplicationStatus(req.Status))
	if err != nil {
		return respondError(c, err)
	}
	metrics.ApplicationDecisionsTotal.WithLabelValues(string(updated.Status)).Inc()

	return c.JSON(http.StatusOK, toApplicationResponse(*updated))
}

// parseJobFilter reads the browse query parameters. Categories may be
// repeated (?category=web&category=design) or comma separated.
func parseJobFilter(c echo.Context) (domain.JobFilter, error) {
	filter := domain.JobFilter{Search: strings.TrimSpace(c.QueryParam("q"))}

	for _, raw := range c.QueryParams()["category"] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			cat := domain.Category(part)
			if !cat.Valid() {
				return filter, fmt.Errorf("unknown category %q", part)
			}
			filter.Categories = append(filter.Categories, cat)
		}
	}

	var err error
	if filter.MinBudget, err = parseBudget(c, "min_budget"); err != nil {
		return filter, err
	}
	if filter.MaxBudget, err = parseBudget(c, "max_budget"); err != nil {
		return filter, err
	}
	return filter, nil
}

func parseBudget(c echo.Context, name string) (*float64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", name)
	}
	return &v, nil
}
