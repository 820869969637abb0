package handler

import (
	"context"
	"fmt"
	"net/http"

	"alumnidir/internal/auth"
	"alumnidir/internal/router"
	"alumnidir/internal/service"
	"alumnidir/internal/session"
)

// AuthHandler handles login endpoints.
type AuthHandler struct {
	authService service.AuthService
	sessions    *session.Manager
	jwtService  *auth.JWTService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, sessions *session.Manager, jwtService *auth.JWTService) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, jwtService: jwtService}
}

// LoginRequest represents a login request. FirstLogin is set by clients right
// after signup to force profile completion.
type LoginRequest struct {
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required"`
	FirstLogin bool   `json:"firstLogin"`
}

// AuthResponse represents an authentication response.
type AuthResponse struct {
	Token   string          `json:"token"`
	Session session.Session `json:"session"`
}

// Routes implements RouteProvider.
func (h *AuthHandler) Routes() []router.Route {
	return []router.Route{
		{Method: http.MethodPost, Pattern: "/login/alumni", Handler: h.LoginAlumni},
		{Method: http.MethodPost, Pattern: "/login/admin", Handler: h.LoginAdmin},
	}
}

// LoginAlumni godoc
// @Summary Log in as alumni
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /login/alumni [post]
func (h *AuthHandler) LoginAlumni(ctx context.Context, req router.Request) router.Response {
	var in LoginRequest
	if err := req.Bind(&in); err != nil {
		return router.Failure(err)
	}
	profile, err := h.authService.AuthenticateAlumni(ctx, in.Username, in.Password)
	if err != nil {
		return router.Failure(err)
	}
	sess, err := h.sessions.EstablishAlumni(ctx, req.Session.ID, *profile, in.FirstLogin)
	if err != nil {
		return router.Failure(err)
	}
	return h.respond(sess)
}

// LoginAdmin godoc
// @Summary Log in as admin
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /login/admin [post]
func (h *AuthHandler) LoginAdmin(ctx context.Context, req router.Request) router.Response {
	var in LoginRequest
	if err := req.Bind(&in); err != nil {
		return router.Failure(err)
	}
	admin, err := h.authService.AuthenticateAdmin(ctx, in.Username, in.Password)
	if err != nil {
		return router.Failure(err)
	}
	sess, err := h.sessions.EstablishAdmin(ctx, req.Session.ID, *admin)
	if err != nil {
		return router.Failure(err)
	}
	return h.respond(sess)
}

func (h *AuthHandler) respond(sess session.Session) router.Response {
	token, err := h.jwtService.GenerateSessionToken(sess.ID)
	if err != nil {
		return router.Failure(fmt.Errorf("generate session token: %w", err))
	}
	return router.Success(http.StatusOK, AuthResponse{Token: token, Session: sess})
}
