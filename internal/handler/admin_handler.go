package handler

import (
	"context"
	"fmt"
	"net/http"

	apperrors "alumnidir/internal/errors"
	"alumnidir/internal/router"
	"alumnidir/internal/service"
)

// AdminHandler handles admin account endpoints.
type AdminHandler struct {
	admins service.AdminService
	auth   service.AuthService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(admins service.AdminService, auth service.AuthService) *AdminHandler {
	return &AdminHandler{admins: admins, auth: auth}
}

// Routes implements RouteProvider.
func (h *AdminHandler) Routes() []router.Route {
	return []router.Route{
		{Method: http.MethodGet, Pattern: "/admins", Query: []string{"username"}, Handler: h.GetByUsername},
		{Method: http.MethodGet, Pattern: "/admins", Handler: h.MissingUsername},
		{Method: http.MethodGet, Pattern: "/admins/:id", Handler: h.Get},
		{Method: http.MethodPost, Pattern: "/admins", Handler: h.Create},
	}
}

// GetByUsername godoc
// @Summary Find an admin by username
// @Tags admins
// @Produce json
// @Param username query string true "Username"
// @Success 200 {object} model.Admin
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admins [get]
func (h *AdminHandler) GetByUsername(ctx context.Context, req router.Request) router.Response {
	admin, err := h.admins.GetByUsername(ctx, req.QueryValue("username"))
	if err != nil {
		return router.Failure(err)
	}
	return router.Success(http.StatusOK, admin)
}

// MissingUsername rejects admin listing, which is only supported by username.
func (h *AdminHandler) MissingUsername(_ context.Context, _ router.Request) router.Response {
	return router.Failure(fmt.Errorf("%w: username query parameter is required", apperrors.ErrValidationFailed))
}

// Get godoc
// @Summary Get an admin
// @Tags admins
// @Produce json
// @Param id path string true "Admin ID"
// @Success 200 {object} model.Admin
// @Failure 404 {object} errors.ErrorResponse
// @Router /admins/{id} [get]
func (h *AdminHandler) Get(ctx context.Context, req router.Request) router.Response {
	admin, err := h.admins.Get(ctx, req.Param("id"))
	if err != nil {
		return router.Failure(err)
	}
	return router.Success(http.StatusOK, admin)
}

// Create godoc
// @Summary Create an admin account
// @Tags admins
// @Accept json
// @Produce json
// @Param request body service.RegisterAdminInput true "Admin data"
// @Success 201 {object} model.Admin
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admins [post]
func (h *AdminHandler) Create(ctx context.Context, req router.Request) router.Response {
	var in service.RegisterAdminInput
	if err := req.Bind(&in); err != nil {
		return router.Failure(err)
	}
	admin, err := h.auth.RegisterAdmin(ctx, in)
	if err != nil {
		return router.Failure(err)
	}
	return router.Success(http.StatusCreated, admin)
}
