package handler

import (
	"context"
	"net/http"
	"strconv"

	"alumnidir/internal/router"
	"alumnidir/internal/search"
	"alumnidir/internal/session"
)

// SearchHandler serves search and autocomplete over the session's directory snapshot.
type SearchHandler struct {
	sessions *session.Manager
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(sessions *session.Manager) *SearchHandler {
	return &SearchHandler{sessions: sessions}
}

// Routes implements RouteProvider.
func (h *SearchHandler) Routes() []router.Route {
	return []router.Route{
		{Method: http.MethodGet, Pattern: "/search", Handler: h.Search},
		{Method: http.MethodGet, Pattern: "/search/suggest", Handler: h.Suggest},
		{Method: http.MethodGet, Pattern: "/search/recent", Handler: h.Recent},
	}
}

// Search godoc
// @Summary Search the directory
// @Tags search
// @Produce json
// @Param q query string false "Name or course substring"
// @Param course query string false "Exact course"
// @Param year query string false "Graduation year substring"
// @Success 200 {array} model.Profile
// @Router /search [get]
func (h *SearchHandler) Search(ctx context.Context, req router.Request) router.Response {
	filters := search.Filters{
		Query:  req.QueryValue("q"),
		Course: req.QueryValue("course"),
		Year:   req.QueryValue("year"),
	}
	snapshot := h.sessions.State(ctx, req.Session).Profiles()
	return router.Success(http.StatusOK, search.Filter(snapshot, filters))
}

// Suggest godoc
// @Summary Autocomplete suggestions
// @Tags search
// @Produce json
// @Param q query string false "Name or course substring"
// @Success 200 {array} model.Profile
// @Router /search/suggest [get]
func (h *SearchHandler) Suggest(ctx context.Context, req router.Request) router.Response {
	snapshot := h.sessions.State(ctx, req.Session).Profiles()
	return router.Success(http.StatusOK, search.Suggest(snapshot, req.QueryValue("q")))
}

// Recent godoc
// @Summary First profiles of the directory
// @Tags search
// @Produce json
// @Param limit query int false "How many profiles" default(6)
// @Success 200 {array} model.Profile
// @Router /search/recent [get]
func (h *SearchHandler) Recent(ctx context.Context, req router.Request) router.Response {
	n, _ := strconv.Atoi(req.QueryValue("limit"))
	snapshot := h.sessions.State(ctx, req.Session).Profiles()
	return router.Success(http.StatusOK, search.Recent(snapshot, n))
}
