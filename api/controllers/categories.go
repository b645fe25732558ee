package controllers

import (
	"net/http"

	"github.com/dmcneil/catalog-api/api/responses"
	"github.com/dmcneil/catalog-api/api/validators"
	categorysvc "github.com/dmcneil/catalog-api/internal/categories"
	pkgerrors "github.com/dmcneil/catalog-api/pkg/errors"
	"github.com/dmcneil/catalog-api/pkg/logger"
)

// ListCategories returns every category.
func ListCategories(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "category service unavailable"))
			return
		}

		out, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}

// CreateCategory inserts a category. The router guards this with the admin
// middleware.
func CreateCategory(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "category service unavailable"))
			return
		}

		var payload categorysvc.CreateCategoryInput
		if err := validators.DecodeBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out, err := svc.Create(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, out)
	}
}
