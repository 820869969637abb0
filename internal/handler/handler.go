// Package handler implements the API operations served through the router.
package handler

import (
	apperrors "alumnidir/internal/errors"
	"alumnidir/internal/router"
	"alumnidir/internal/session"
)

// RouteProvider exposes the routes a handler serves.
type RouteProvider interface {
	Routes() []router.Route
}

// Collect concatenates the routes of every provider in order.
func Collect(providers ...RouteProvider) []router.Route {
	var routes []router.Route
	for _, p := range providers {
		routes = append(routes, p.Routes()...)
	}
	return routes
}

func requireAdmin(sess session.Session) error {
	if !sess.IsAdmin() {
		return apperrors.ErrUnauthorized
	}
	return nil
}
