package handler

import (
	"context"
	"net/http"

	"alumnidir/internal/router"
	"alumnidir/internal/service"
	"alumnidir/internal/session"
)

// CourseHandler handles course list endpoints.
type CourseHandler struct {
	courses  service.CourseService
	sessions *session.Manager
}

// NewCourseHandler creates a new course handler.
func NewCourseHandler(courses service.CourseService, sessions *session.Manager) *CourseHandler {
	return &CourseHandler{courses: courses, sessions: sessions}
}

// Routes implements RouteProvider.
func (h *CourseHandler) Routes() []router.Route {
	return []router.Route{
		{Method: http.MethodGet, Pattern: "/courses", Handler: h.List},
		{Method: http.MethodPut, Pattern: "/courses", Handler: h.Replace},
	}
}

// List godoc
// @Summary List courses
// @Tags courses
// @Produce json
// @Success 200 {array} string
// @Router /courses [get]
func (h *CourseHandler) List(ctx context.Context, _ router.Request) router.Response {
	names, err := h.courses.List(ctx)
	if err != nil {
		return router.Failure(err)
	}
	return router.Success(http.StatusOK, names)
}

// Replace godoc
// @Summary Replace the whole course list
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body []string true "Ordered course names"
// @Success 200 {array} string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /courses [put]
func (h *CourseHandler) Replace(ctx context.Context, req router.Request) router.Response {
	if err := requireAdmin(req.Session); err != nil {
		return router.Failure(err)
	}
	var names []string
	if err := req.Bind(&names); err != nil {
		return router.Failure(err)
	}
	saved, err := h.courses.Replace(ctx, names)
	if err != nil {
		return router.Failure(err)
	}
	h.sessions.MarkStale()
	return router.Success(http.StatusOK, saved)
}
