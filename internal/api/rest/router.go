// Package rest wires the HTTP handlers, middleware and routes of the
// public API.
package rest

import (
	"net/http"

	"github.com/ddrozdov/gatehouse-server/internal/api/rest/handler"
	"github.com/ddrozdov/gatehouse-server/internal/api/rest/middleware"
	"github.com/ddrozdov/gatehouse-server/internal/logger"
	"github.com/ddrozdov/gatehouse-server/internal/model"
	"github.com/ddrozdov/gatehouse-server/internal/obs"
	"github.com/ddrozdov/gatehouse-server/internal/service"
)

// Router builds the HTTP handler tree for the API.
type Router struct {
	accounts    *service.Account
	credentials *service.Credential
	access      *service.Access
	permissions *service.Permission
	ctx         model.ContextManager
	logger      *logger.Logger
}

// NewRouter creates a new router over the given services.
func NewRouter(
	accounts *service.Account,
	credentials *service.Credential,
	access *service.Access,
	permissions *service.Permission,
	ctx model.ContextManager,
	l *logger.Logger,
) *Router {
	return &Router{
		accounts:    accounts,
		credentials: credentials,
		access:      access,
		permissions: permissions,
		ctx:         ctx,
		logger:      l,
	}
}

// Handler returns the fully wired HTTP handler.
func (rt *Router) Handler() http.Handler {
	accountHandler := handler.NewAccount(rt.accounts, rt.ctx, rt.logger)
	identityHandler := handler.NewIdentity(rt.access, rt.credentials, rt.ctx, rt.logger)
	permissionHandler := handler.NewPermission(rt.permissions, rt.ctx, rt.logger)

	authenticate := middleware.Authenticate(rt.credentials, rt.ctx)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/accounts", accountHandler.Create)
	mux.Handle("GET /api/accounts/{id}", authenticate(http.HandlerFunc(accountHandler.Get)))
	mux.Handle("PATCH /api/accounts/{id}", authenticate(http.HandlerFunc(accountHandler.Update)))

	mux.Handle("GET /api/identity", authenticate(http.HandlerFunc(identityHandler.Resolve)))
	mux.HandleFunc("POST /api/token/refresh", identityHandler.Refresh)

	mux.Handle("GET /api/permissions", authenticate(http.HandlerFunc(permissionHandler.List)))
	mux.Handle("POST /api/permissions", authenticate(http.HandlerFunc(permissionHandler.Grant)))
	mux.Handle("DELETE /api/permissions", authenticate(http.HandlerFunc(permissionHandler.Revoke)))

	mux.Handle("GET /metrics", obs.Handler())

	return obs.Instrument(middleware.Logging(rt.logger)(mux))
}
