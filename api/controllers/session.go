package controllers

import (
	"net/http"

	"github.com/dmcneil/catalog-api/api/middleware"
	"github.com/dmcneil/catalog-api/api/responses"
	"github.com/dmcneil/catalog-api/api/validators"
	authsvc "github.com/dmcneil/catalog-api/internal/auth"
	"github.com/dmcneil/catalog-api/pkg/auth/session"
	pkgerrors "github.com/dmcneil/catalog-api/pkg/errors"
	"github.com/dmcneil/catalog-api/pkg/logger"
)

// Login verifies credentials and sets the session cookie.
func Login(svc authsvc.Service, sessions *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || sessions == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload authsvc.LoginRequest
		if err := validators.DecodeBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out, err := svc.Login(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessions.Issue(w, out.Token)
		responses.WriteSuccess(w, out.User)
	}
}

// Logout clears the session cookie. The token is stateless, so clearing the
// cookie is the whole invalidation.
func Logout(sessions *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessions == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session manager unavailable"))
			return
		}

		sessions.Clear(w)
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

// Me returns the authenticated user's summary.
func Me(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if userID == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		user, err := svc.CurrentUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}
