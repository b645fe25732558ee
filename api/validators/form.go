package validators

import (
	"net/url"
	"reflect"
	"strconv"
	"strings"

	pkgerrors "github.com/dmcneil/catalog-api/pkg/errors"
	"github.com/shopspring/decimal"
)

var decimalType = reflect.TypeOf(decimal.Decimal{})

// bindFormValues copies url-encoded form values onto dest by the struct's
// `form` tags. Absent keys leave the field untouched, which is what gives
// partial updates their keep-existing behavior. Repeated keys (with or
// without a [] suffix) bind to string slices.
func bindFormValues(form url.Values, dest any) error {
	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return pkgerrors.New(pkgerrors.CodeInternal, "form destination must be a struct pointer")
	}
	elem := v.Elem()
	elemType := elem.Type()

	for i := 0; i < elemType.NumField(); i++ {
		field := elemType.Field(i)
		tag := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if tag == "" || tag == "-" {
			continue
		}

		values, ok := form[tag]
		if !ok {
			values, ok = form[tag+"[]"]
		}
		if !ok || len(values) == 0 {
			continue
		}

		if err := setFormField(elem.Field(i), tag, values); err != nil {
			return err
		}
	}
	return nil
}

func setFormField(target reflect.Value, name string, values []string) error {
	if target.Kind() == reflect.Pointer {
		ptr := reflect.New(target.Type().Elem())
		if err := setFormField(ptr.Elem(), name, values); err != nil {
			return err
		}
		target.Set(ptr)
		return nil
	}

	raw := values[0]

	if target.Type() == decimalType {
		parsed, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return invalidField(name, "must be a number")
		}
		target.Set(reflect.ValueOf(parsed))
		return nil
	}

	switch target.Kind() {
	case reflect.String:
		target.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		parsed, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return invalidField(name, "must be an integer")
		}
		target.SetInt(parsed)
	case reflect.Bool:
		parsed, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return invalidField(name, "must be a boolean")
		}
		target.SetBool(parsed)
	case reflect.Slice:
		if target.Type().Elem().Kind() != reflect.String {
			return invalidField(name, "is not supported in form bodies")
		}
		target.Set(reflect.ValueOf(append([]string(nil), values...)))
	default:
		return invalidField(name, "is not supported in form bodies")
	}
	return nil
}

func invalidField(name, message string) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
		WithDetails(map[string]string{name: message})
}
