package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-token-ledger/internal/middlewares"
)

// authenticated returns req as AuthMiddleware would pass it on.
func authenticated(req *http.Request, userID uuid.UUID) *http.Request {
	return req.WithContext(middlewares.WithUserID(req.Context(), userID))
}

// withURLParams sets chi route parameters on req.
func withURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}
