package controllers

import (
	"net/http"

	"github.com/dmcneil/catalog-api/api/responses"
	"github.com/dmcneil/catalog-api/api/validators"
	authsvc "github.com/dmcneil/catalog-api/internal/auth"
	pkgerrors "github.com/dmcneil/catalog-api/pkg/errors"
	"github.com/dmcneil/catalog-api/pkg/logger"
)

// Register creates a new user account.
func Register(svc authsvc.RegisterService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "register service unavailable"))
			return
		}

		var payload authsvc.RegisterRequest
		if err := validators.DecodeBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Register(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, user)
	}
}
