package rest

import (
	"net/http"

	"github.com/heartmarshall/inventory-backend/internal/transport/middleware"
)

// Handlers groups everything NewRouter mounts.
type Handlers struct {
	Health       *HealthHandler
	Auth         *AuthHandler
	Users        *UserHandler
	Items        *ItemHandler
	Transactions *TransactionHandler
	WS           http.Handler
}

// NewRouter mounts the API. Identity is resolved by middleware.Auth further
// out; routes here only decide whether an actor, or a manager, is required.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	authed := func(fn http.HandlerFunc) http.Handler { return middleware.RequireAuth(fn) }
	manager := func(fn http.HandlerFunc) http.Handler { return middleware.RequireManager(fn) }

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("POST /auth/login", h.Auth.Login)

	mux.Handle("GET /users/me", authed(h.Users.Me))
	mux.Handle("GET /users", manager(h.Users.List))
	mux.Handle("POST /users", manager(h.Users.Create))
	mux.Handle("PUT /users/{id}/role", manager(h.Users.SetRole))

	mux.Handle("GET /items", authed(h.Items.List))
	mux.Handle("POST /items", authed(h.Items.Create))
	mux.Handle("GET /items/{id}", authed(h.Items.Get))
	mux.Handle("PATCH /items/{id}", authed(h.Items.Update))
	mux.Handle("PUT /items/{id}", authed(h.Items.Update))
	mux.Handle("DELETE /items/{id}", authed(h.Items.Delete))
	mux.Handle("GET /items/{id}/audit", manager(h.Transactions.Audit))

	mux.Handle("GET /transactions", authed(h.Transactions.List))
	mux.Handle("POST /transactions", authed(h.Transactions.Create))

	if h.WS != nil {
		mux.Handle("GET /ws", h.WS)
	}

	return mux
}
