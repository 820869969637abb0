package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alumnidir/internal/auth"
	"alumnidir/internal/config"
	"alumnidir/internal/model"
	"alumnidir/internal/session"
)

type emptyCourses struct{}

func (emptyCourses) List(context.Context) ([]string, error) { return nil, nil }

type emptyProfiles struct{}

func (emptyProfiles) List(context.Context) ([]model.Profile, error) { return nil, nil }

func newTestServer(t *testing.T) (*echo.Echo, *session.Manager, *auth.JWTService) {
	t.Helper()
	sessions := session.NewManager(session.NewMemoryStorage(), emptyCourses{}, emptyProfiles{}, nil)
	jwtService := auth.NewJWTService("test-secret", time.Hour)

	dispatcher := NewDispatcher(nil, nil,
		Route{Method: http.MethodGet, Pattern: "/whoami", Handler: func(_ context.Context, req Request) Response {
			return Success(http.StatusOK, map[string]string{"kind": string(req.Session.Kind), "q": req.QueryValue("q")})
		}},
		Route{Method: http.MethodPost, Pattern: "/echo", Handler: func(_ context.Context, req Request) Response {
			var in map[string]string
			if err := req.Bind(&in); err != nil {
				return Failure(err)
			}
			return Success(http.StatusCreated, in)
		}},
		Route{Method: http.MethodDelete, Pattern: "/things/:id", Handler: func(context.Context, Request) Response {
			return Success(http.StatusNoContent, nil)
		}},
	)

	e := echo.New()
	cfg := &config.Config{CORSOrigins: []string{"*"}}
	Register(e, cfg, dispatcher, sessions, jwtService, zap.NewNop())
	return e, sessions, jwtService
}

type envelope struct {
	OK      bool            `json:"ok"`
	Status  int             `json:"status"`
	Payload json.RawMessage `json:"payload"`
}

func serve(t *testing.T, e *echo.Echo, method, target, body, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestRegister_Healthz(t *testing.T) {
	e, _, _ := newTestServer(t)
	rec, _ := serve(t, e, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRegister_AnonymousAndTokenSessions(t *testing.T) {
	e, sessions, jwtService := newTestServer(t)

	rec, env := serve(t, e, http.MethodGet, "/api/whoami?q=hi", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.OK)
	assert.JSONEq(t, `{"kind":"anonymous","q":"hi"}`, string(env.Payload))

	sess, err := sessions.EstablishAdmin(context.Background(), "", model.Admin{ID: "a1", Username: "root"})
	require.NoError(t, err)
	token, err := jwtService.GenerateSessionToken(sess.ID)
	require.NoError(t, err)

	_, env = serve(t, e, http.MethodGet, "/api/whoami", "", token)
	assert.JSONEq(t, `{"kind":"admin","q":""}`, string(env.Payload))

	forged, err := auth.NewJWTService("other-secret", time.Hour).GenerateSessionToken(sess.ID)
	require.NoError(t, err)
	rec, env = serve(t, e, http.MethodGet, "/api/whoami", "", forged)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"kind":"anonymous","q":""}`, string(env.Payload))
}

func TestRegister_StatusesAndBodies(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec, env := serve(t, e, http.MethodPost, "/api/echo", `{"a":"b"}`, "")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"a":"b"}`, string(env.Payload))

	rec, env = serve(t, e, http.MethodPost, "/api/echo", `not json`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.OK)

	rec, _ = serve(t, e, http.MethodDelete, "/api/things/1", "", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())

	rec, env = serve(t, e, http.MethodGet, "/api/nowhere", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusNotFound, env.Status)
	assert.Contains(t, string(env.Payload), "ROUTE_NOT_FOUND")
}
