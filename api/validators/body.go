package validators

import (
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	pkgerrors "github.com/dmcneil/catalog-api/pkg/errors"
	"github.com/go-playground/validator/v10"
)

// maxMultipartMemory caps the in-memory portion of multipart bodies; the
// remainder spills to temp files.
const maxMultipartMemory = 10 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// DecodeBody fills dest from the request body. JSON and form-urlencoded
// payloads are both accepted; the Content-Type header decides which decoder
// runs. The decoded struct is validated either way.
func DecodeBody(r *http.Request, dest any) error {
	contentType := r.Header.Get("Content-Type")
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		switch mediaType {
		case "application/x-www-form-urlencoded":
			return decodeFormBody(r, dest)
		case "multipart/form-data":
			return decodeMultipartBody(r, dest)
		}
	}
	return DecodeJSONBody(r, dest)
}

// DecodeJSONBody parses and validates a JSON request body. An empty body
// decodes as an empty payload, so the same request succeeds or fails the
// same way as an empty form would.
func DecodeJSONBody(r *http.Request, dest any) error {
	defer func() {
		io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil && !stdErrors.Is(err, io.EOF) {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body").WithDetails(map[string]any{"error": err.Error()})
	}
	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func decodeFormBody(r *http.Request, dest any) error {
	if err := r.ParseForm(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form body")
	}
	return bindAndValidateForm(r.PostForm, dest)
}

func decodeMultipartBody(r *http.Request, dest any) error {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form body")
	}
	return bindAndValidateForm(r.PostForm, dest)
}

func bindAndValidateForm(form url.Values, dest any) error {
	if err := bindFormValues(form, dest); err != nil {
		return err
	}
	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = validationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "gte":
		return fmt.Sprintf("must be %s or more", fe.Param())
	}
	return "is invalid"
}
