package handler

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	apperrors "alumnidir/internal/errors"
	"alumnidir/internal/model"
	"alumnidir/internal/router"
	"alumnidir/internal/search"
	"alumnidir/internal/service"
	"alumnidir/internal/session"
)

// ProfileHandler handles directory profile endpoints.
type ProfileHandler struct {
	profiles service.ProfileService
	invites  service.InviteService
	sessions *session.Manager
	logger   *zap.Logger
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profiles service.ProfileService, invites service.InviteService, sessions *session.Manager, logger *zap.Logger) *ProfileHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileHandler{profiles: profiles, invites: invites, sessions: sessions, logger: logger}
}

// Routes implements RouteProvider.
func (h *ProfileHandler) Routes() []router.Route {
	return []router.Route{
		{Method: http.MethodGet, Pattern: "/profiles", Query: []string{"username"}, Handler: h.GetByUsername},
		{Method: http.MethodGet, Pattern: "/profiles", Handler: h.List},
		{Method: http.MethodGet, Pattern: "/profiles/:id", Handler: h.Get},
		{Method: http.MethodPost, Pattern: "/profiles", Handler: h.Signup},
		{Method: http.MethodPut, Pattern: "/profiles/:id", Handler: h.Update},
		{Method: http.MethodDelete, Pattern: "/profiles/:id", Handler: h.Delete},
	}
}

// List godoc
// @Summary List directory profiles
// @Description Verified profiles only, unless the caller is an admin.
// @Tags profiles
// @Produce json
// @Success 200 {array} model.Profile
// @Router /profiles [get]
func (h *ProfileHandler) List(ctx context.Context, req router.Request) router.Response {
	return router.Success(http.StatusOK, h.sessions.State(ctx, req.Session).Profiles())
}

// GetByUsername godoc
// @Summary Find a profile by username
// @Description Unverified profiles are 404 unless the caller is an admin or the owner.
// @Tags profiles
// @Produce json
// @Param username query string true "Username"
// @Success 200 {object} model.Profile
// @Failure 404 {object} errors.ErrorResponse
// @Router /profiles [get]
func (h *ProfileHandler) GetByUsername(ctx context.Context, req router.Request) router.Response {
	profile, err := h.profiles.GetByUsername(ctx, req.QueryValue("username"))
	if err != nil {
		return router.Failure(err)
	}
	return visibleTo(req.Session, profile)
}

// Get godoc
// @Summary Get a profile
// @Description Unverified profiles are 404 unless the caller is an admin or the owner.
// @Tags profiles
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} model.Profile
// @Failure 404 {object} errors.ErrorResponse
// @Router /profiles/{id} [get]
func (h *ProfileHandler) Get(ctx context.Context, req router.Request) router.Response {
	profile, err := h.profiles.Get(ctx, req.Param("id"))
	if err != nil {
		return router.Failure(err)
	}
	return visibleTo(req.Session, profile)
}

// visibleTo hides unverified profiles from everyone but admins and the owner.
func visibleTo(sess session.Session, profile *model.Profile) router.Response {
	if !search.CanView(*profile, sess.IsAdmin(), sess.ProfileID()) {
		return router.Failure(apperrors.ErrNotFound)
	}
	return router.Success(http.StatusOK, profile)
}

// Signup godoc
// @Summary Create a profile by redeeming an invite
// @Tags profiles
// @Accept json
// @Produce json
// @Param request body service.SignupInput true "Signup data"
// @Success 201 {object} model.Profile
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /profiles [post]
func (h *ProfileHandler) Signup(ctx context.Context, req router.Request) router.Response {
	var in service.SignupInput
	if err := req.Bind(&in); err != nil {
		return router.Failure(err)
	}
	profile, err := h.invites.Redeem(ctx, in)
	if err != nil {
		return router.Failure(err)
	}
	h.sessions.MarkStale()
	return router.Success(http.StatusCreated, profile)
}

// Update godoc
// @Summary Update a profile
// @Description Owners edit their own fields; admins may only change verification.
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Profile ID"
// @Param request body service.UpdateProfileInput true "Fields to change"
// @Success 200 {object} model.Profile
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /profiles/{id} [put]
func (h *ProfileHandler) Update(ctx context.Context, req router.Request) router.Response {
	var in service.UpdateProfileInput
	if err := req.Bind(&in); err != nil {
		return router.Failure(err)
	}
	profile, err := h.profiles.Update(ctx, req.Session, req.Param("id"), in)
	if err != nil {
		return router.Failure(err)
	}
	if req.Session.Owns(profile.ID) {
		if err := h.sessions.UpdateAlumni(ctx, req.Session.ID, *profile); err != nil {
			h.logger.Warn("refresh alumni session after update", zap.String("profile_id", profile.ID), zap.Error(err))
		}
	}
	h.sessions.MarkStale()
	return router.Success(http.StatusOK, profile)
}

// Delete godoc
// @Summary Delete a profile
// @Tags profiles
// @Security BearerAuth
// @Param id path string true "Profile ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /profiles/{id} [delete]
func (h *ProfileHandler) Delete(ctx context.Context, req router.Request) router.Response {
	if err := h.profiles.Delete(ctx, req.Session, req.Param("id")); err != nil {
		return router.Failure(err)
	}
	h.sessions.MarkStale()
	return router.Success(http.StatusNoContent, nil)
}
