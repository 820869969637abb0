package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	apperrors "alumnidir/internal/errors"
	"alumnidir/internal/logger"
	"alumnidir/internal/session"
)

// HandlerFunc serves one matched request.
type HandlerFunc func(ctx context.Context, req Request) Response

// Route binds a method and path pattern to a handler. Pattern segments starting
// with ':' capture parameters. Query lists parameters that must be present and
// non-empty for the route to match.
type Route struct {
	Method  string
	Pattern string
	Query   []string
	Handler HandlerFunc
}

// Request is a transport-independent API call.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    []byte
	Session session.Session

	params   map[string]string
	validate *validator.Validate
}

// Param returns the path parameter captured under name.
func (r Request) Param(name string) string {
	return r.params[name]
}

// QueryValue returns the first value of query parameter name.
func (r Request) QueryValue(name string) string {
	return strings.TrimSpace(r.Query.Get(name))
}

// Bind decodes the JSON body into v and validates it when v is a struct.
func (r Request) Bind(v any) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return fmt.Errorf("%w: request body is required", apperrors.ErrValidationFailed)
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("%w: invalid request body", apperrors.ErrValidationFailed)
	}
	if r.validate != nil && reflect.Indirect(reflect.ValueOf(v)).Kind() == reflect.Struct {
		if err := r.validate.Struct(v); err != nil {
			return fmt.Errorf("%w: %s", apperrors.ErrValidationFailed, err.Error())
		}
	}
	return nil
}

// Response is the tagged result of a request.
type Response struct {
	OK      bool `json:"ok"`
	Status  int  `json:"status"`
	Payload any  `json:"payload,omitempty"`

	err error
}

// Err returns the error the response was built from, if any.
func (r Response) Err() error {
	return r.err
}

// Success builds a successful response.
func Success(status int, payload any) Response {
	return Response{OK: true, Status: status, Payload: payload}
}

// Failure builds an error response from err.
func Failure(err error) Response {
	httpErr := apperrors.MapErrorToHTTP(err)
	return Response{
		OK:      false,
		Status:  httpErr.StatusCode,
		Payload: httpErr.ToErrorResponse(),
		err:     err,
	}
}

// Result builds a response that carries payload whatever the outcome. A nil err
// means 200; otherwise the status comes from err and OK follows the status class.
func Result(err error, payload any) Response {
	if err == nil {
		return Success(http.StatusOK, payload)
	}
	status := apperrors.MapErrorToHTTP(err).StatusCode
	return Response{OK: status < http.StatusBadRequest, Status: status, Payload: payload, err: err}
}

type compiledRoute struct {
	Route
	segments []string
}

// Dispatcher matches requests against a fixed routing table. Routes that
// require query parameters are tried before plain ones; otherwise the first
// registered match wins.
type Dispatcher struct {
	routes   []compiledRoute
	validate *validator.Validate
	logger   *zap.Logger
}

// NewDispatcher compiles routes into a dispatcher.
func NewDispatcher(validate *validator.Validate, log *zap.Logger, routes ...Route) *Dispatcher {
	if validate == nil {
		validate = validator.New()
	}
	if log == nil {
		log = zap.NewNop()
	}
	compiled := make([]compiledRoute, 0, len(routes))
	for _, r := range routes {
		compiled = append(compiled, compiledRoute{
			Route:    r,
			segments: splitPath(r.Pattern),
		})
	}
	sort.SliceStable(compiled, func(i, j int) bool {
		return len(compiled[i].Query) > len(compiled[j].Query)
	})
	return &Dispatcher{routes: compiled, validate: validate, logger: log}
}

// Do parses rawURL, which may carry a query string, and dispatches it.
func (d *Dispatcher) Do(ctx context.Context, method, rawURL string, body []byte, sess session.Session) Response {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Failure(fmt.Errorf("%w: malformed url", apperrors.ErrValidationFailed))
	}
	return d.Handle(ctx, Request{
		Method:  method,
		Path:    u.Path,
		Query:   u.Query(),
		Body:    body,
		Session: sess,
	})
}

// Handle runs exactly one handler for req, or returns a route-not-found
// response. It never panics.
func (d *Dispatcher) Handle(ctx context.Context, req Request) (resp Response) {
	if req.Query == nil {
		req.Query = url.Values{}
	}
	req.Method = strings.ToUpper(req.Method)
	segments := splitPath(req.Path)

	route, params, ok := d.match(req.Method, segments, req.Query)
	if !ok {
		return Failure(fmt.Errorf("%w: %s %s", apperrors.ErrRouteNotFound, req.Method, req.Path))
	}
	req.params = params
	req.validate = d.validate

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("handler panic",
				zap.String("request_id", logger.RequestID(ctx)),
				zap.String("method", req.Method),
				zap.String("path", req.Path),
				zap.Any("panic", r),
			)
			resp = Failure(fmt.Errorf("handler panic: %v", r))
		}
	}()

	resp = route.Handler(ctx, req)
	if resp.Status >= http.StatusInternalServerError && resp.err != nil {
		d.logger.Error("request failed",
			zap.String("request_id", logger.RequestID(ctx)),
			zap.String("method", req.Method),
			zap.String("path", req.Path),
			zap.Int("status", resp.Status),
			zap.Error(resp.err),
		)
	}
	return resp
}

func (d *Dispatcher) match(method string, segments []string, query url.Values) (*compiledRoute, map[string]string, bool) {
	for i := range d.routes {
		r := &d.routes[i]
		if r.Method != method || len(r.segments) != len(segments) {
			continue
		}
		params, ok := matchSegments(r.segments, segments)
		if !ok {
			continue
		}
		if !hasQuery(query, r.Query) {
			continue
		}
		return r, params, true
	}
	return nil, nil, false
}

func matchSegments(pattern, segments []string) (map[string]string, bool) {
	params := map[string]string{}
	for i, p := range pattern {
		if strings.HasPrefix(p, ":") {
			if segments[i] == "" {
				return nil, false
			}
			params[p[1:]] = segments[i]
			continue
		}
		if p != segments[i] {
			return nil, false
		}
	}
	return params, true
}

func hasQuery(query url.Values, required []string) bool {
	for _, name := range required {
		if strings.TrimSpace(query.Get(name)) == "" {
			return false
		}
	}
	return true
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	parts := strings.Split(p, "/")
	for i, s := range parts {
		if unescaped, err := url.PathUnescape(s); err == nil {
			parts[i] = unescaped
		}
	}
	return parts
}
