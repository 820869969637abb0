package handler

import (
	"context"
	"net/http"
	"time"

	"alumnidir/internal/router"
	"alumnidir/internal/session"
)

// SessionHandler exposes the caller's session and directory state.
type SessionHandler struct {
	sessions *session.Manager
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sessions *session.Manager) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// SessionResponse describes the caller's session and the state loaded for it.
type SessionResponse struct {
	Session       session.Session `json:"session"`
	Courses       []string        `json:"courses"`
	DirectorySize int             `json:"directorySize"`
	LoadedAt      time.Time       `json:"loadedAt"`
}

// Routes implements RouteProvider.
func (h *SessionHandler) Routes() []router.Route {
	return []router.Route{
		{Method: http.MethodGet, Pattern: "/session", Handler: h.Current},
		{Method: http.MethodPost, Pattern: "/session/refresh", Handler: h.Refresh},
		{Method: http.MethodPost, Pattern: "/logout", Handler: h.Logout},
	}
}

// Current godoc
// @Summary Describe the current session
// @Tags session
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SessionResponse
// @Router /session [get]
func (h *SessionHandler) Current(ctx context.Context, req router.Request) router.Response {
	return router.Success(http.StatusOK, describe(req.Session, h.sessions.State(ctx, req.Session)))
}

// Refresh godoc
// @Summary Reload the session's directory state
// @Tags session
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SessionResponse
// @Router /session/refresh [post]
func (h *SessionHandler) Refresh(ctx context.Context, req router.Request) router.Response {
	return router.Success(http.StatusOK, describe(req.Session, h.sessions.Refresh(ctx, req.Session)))
}

// Logout godoc
// @Summary Log out
// @Tags session
// @Security BearerAuth
// @Success 204
// @Router /logout [post]
func (h *SessionHandler) Logout(ctx context.Context, req router.Request) router.Response {
	if err := h.sessions.Logout(ctx, req.Session.ID); err != nil {
		return router.Failure(err)
	}
	return router.Success(http.StatusNoContent, nil)
}

func describe(sess session.Session, st *session.State) SessionResponse {
	return SessionResponse{
		Session:       sess,
		Courses:       st.Courses(),
		DirectorySize: len(st.Profiles()),
		LoadedAt:      st.LoadedAt(),
	}
}
