package handler

import (
	"context"
	"net/http"

	"alumnidir/internal/router"
	"alumnidir/internal/service"
)

// InviteHandler handles invite ledger endpoints. Every route requires an admin session.
type InviteHandler struct {
	invites service.InviteService
	baseURL string
}

// NewInviteHandler creates a new invite handler.
func NewInviteHandler(invites service.InviteService, baseURL string) *InviteHandler {
	return &InviteHandler{invites: invites, baseURL: baseURL}
}

// InviteResponse is an invite together with its signup link.
type InviteResponse struct {
	Code string `json:"code"`
	Link string `json:"link"`
}

// Routes implements RouteProvider.
func (h *InviteHandler) Routes() []router.Route {
	return []router.Route{
		{Method: http.MethodGet, Pattern: "/invites", Handler: h.List},
		{Method: http.MethodPost, Pattern: "/invites", Handler: h.Issue},
		{Method: http.MethodPut, Pattern: "/invites", Handler: h.Cancel},
	}
}

// List godoc
// @Summary List invites
// @Tags invites
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Invite
// @Failure 401 {object} errors.ErrorResponse
// @Router /invites [get]
func (h *InviteHandler) List(ctx context.Context, req router.Request) router.Response {
	if err := requireAdmin(req.Session); err != nil {
		return router.Failure(err)
	}
	invites, err := h.invites.List(ctx)
	if err != nil {
		return router.Failure(err)
	}
	return router.Success(http.StatusOK, invites)
}

// Issue godoc
// @Summary Issue an invite
// @Tags invites
// @Produce json
// @Security BearerAuth
// @Success 201 {object} InviteResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /invites [post]
func (h *InviteHandler) Issue(ctx context.Context, req router.Request) router.Response {
	if err := requireAdmin(req.Session); err != nil {
		return router.Failure(err)
	}
	invite, err := h.invites.Issue(ctx, req.Session.AdminID())
	if err != nil {
		return router.Failure(err)
	}
	return router.Success(http.StatusCreated, InviteResponse{
		Code: invite.Code,
		Link: service.InviteLink(h.baseURL, invite.Code),
	})
}

// Cancel godoc
// @Summary Cancel an unused invite
// @Tags invites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CancelInviteInput true "Invite code"
// @Success 200 {object} model.Invite
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /invites [put]
func (h *InviteHandler) Cancel(ctx context.Context, req router.Request) router.Response {
	if err := requireAdmin(req.Session); err != nil {
		return router.Failure(err)
	}
	var in service.CancelInviteInput
	if err := req.Bind(&in); err != nil {
		return router.Failure(err)
	}
	invite, err := h.invites.Cancel(ctx, in.Code)
	if err != nil {
		return router.Failure(err)
	}
	return router.Success(http.StatusOK, invite)
}
