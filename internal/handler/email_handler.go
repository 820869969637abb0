package handler

import (
	"context"
	"net/http"

	"alumnidir/internal/router"
	"alumnidir/internal/service"
)

// EmailHandler handles bulk invite email endpoints.
type EmailHandler struct {
	emailService service.EmailService
}

// NewEmailHandler creates a new email handler.
func NewEmailHandler(emailService service.EmailService) *EmailHandler {
	return &EmailHandler{emailService: emailService}
}

// Routes implements RouteProvider.
func (h *EmailHandler) Routes() []router.Route {
	return []router.Route{
		{Method: http.MethodPost, Pattern: "/email/send", Handler: h.Send},
	}
}

// Send godoc
// @Summary Send invite emails
// @Description Issues one invite per recipient and mails its link in place of {link}.
// @Tags email
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.EmailRequest true "Campaign"
// @Success 200 {object} service.EmailReport
// @Success 207 {object} service.EmailReport
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} service.EmailReport
// @Router /email/send [post]
func (h *EmailHandler) Send(ctx context.Context, req router.Request) router.Response {
	if err := requireAdmin(req.Session); err != nil {
		return router.Failure(err)
	}
	var in service.EmailRequest
	if err := req.Bind(&in); err != nil {
		return router.Failure(err)
	}
	report, err := h.emailService.SendInvites(ctx, req.Session.AdminID(), in)
	if report == nil {
		return router.Failure(err)
	}
	return router.Result(err, report)
}
