package validators

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	pkgerrors "github.com/dmcneil/catalog-api/pkg/errors"
	"github.com/shopspring/decimal"
)

type createPayload struct {
	Name      string          `json:"name" form:"name" validate:"required"`
	Price     decimal.Decimal `json:"price" form:"price" validate:"required"`
	Quantity  int             `json:"quantity" form:"quantity" validate:"gte=0"`
	ImageURLs []string        `json:"image_urls" form:"image_urls"`
}

type patchPayload struct {
	Name     *string `json:"name" form:"name"`
	Quantity *int    `json:"quantity" form:"quantity"`
}

func TestDecodeBodyJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/products.json", strings.NewReader(
		`{"name":"Chair","price":"400","quantity":3,"image_urls":["a.jpg"]}`,
	))
	req.Header.Set("Content-Type", "application/json")

	var payload createPayload
	if err := DecodeBody(req, &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Name != "Chair" || payload.Quantity != 3 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if !payload.Price.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("unexpected price: %s", payload.Price)
	}
}

func TestDecodeBodyJSONRejectsUnknownField(t *testing.T) {
	req := httptest.NewRequest("POST", "/products.json", strings.NewReader(
		`{"name":"Chair","price":"400","bogus":true}`,
	))
	req.Header.Set("Content-Type", "application/json")

	var payload createPayload
	err := DecodeBody(req, &payload)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeBodyForm(t *testing.T) {
	form := url.Values{}
	form.Set("name", "Chair")
	form.Set("price", "400.50")
	form.Set("quantity", "3")
	form.Add("image_urls[]", "a.jpg")
	form.Add("image_urls[]", "b.jpg")

	req := httptest.NewRequest("POST", "/products.json", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var payload createPayload
	if err := DecodeBody(req, &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Name != "Chair" || payload.Quantity != 3 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if !payload.Price.Equal(decimal.RequireFromString("400.50")) {
		t.Fatalf("unexpected price: %s", payload.Price)
	}
	if len(payload.ImageURLs) != 2 {
		t.Fatalf("expected 2 image urls, got %v", payload.ImageURLs)
	}
}

func TestDecodeBodyMultipart(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mustWriteField := func(name, value string) {
		t.Helper()
		if err := mw.WriteField(name, value); err != nil {
			t.Fatalf("write field %s: %v", name, err)
		}
	}
	mustWriteField("name", "Chair")
	mustWriteField("price", "400")
	mustWriteField("quantity", "3")
	mustWriteField("image_urls[]", "a.jpg")
	mustWriteField("image_urls[]", "b.jpg")
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/products.json", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var payload createPayload
	if err := DecodeBody(req, &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Name != "Chair" || payload.Quantity != 3 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if !payload.Price.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("unexpected price: %s", payload.Price)
	}
	if len(payload.ImageURLs) != 2 {
		t.Fatalf("expected 2 image urls, got %v", payload.ImageURLs)
	}
}

func TestDecodeBodyEmptyBody(t *testing.T) {
	// An empty PATCH body is an empty update regardless of encoding.
	t.Run("noContentType", func(t *testing.T) {
		req := httptest.NewRequest("PATCH", "/products/1.json", strings.NewReader(""))

		var payload patchPayload
		if err := DecodeBody(req, &payload); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if payload.Name != nil || payload.Quantity != nil {
			t.Fatalf("expected untouched payload, got %+v", payload)
		}
	})

	t.Run("requiredFieldsStillFail", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/products.json", strings.NewReader(""))
		req.Header.Set("Content-Type", "application/json")

		var payload createPayload
		err := DecodeBody(req, &payload)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestDecodeBodyFormLeavesAbsentPointersNil(t *testing.T) {
	form := url.Values{}
	form.Set("quantity", "9")

	req := httptest.NewRequest("PATCH", "/products/1.json", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var payload patchPayload
	if err := DecodeBody(req, &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Name != nil {
		t.Fatalf("expected nil name, got %q", *payload.Name)
	}
	if payload.Quantity == nil || *payload.Quantity != 9 {
		t.Fatalf("expected quantity 9, got %v", payload.Quantity)
	}
}

func TestDecodeBodyValidation(t *testing.T) {
	req := httptest.NewRequest("POST", "/products.json", strings.NewReader(`{"price":"10"}`))
	req.Header.Set("Content-Type", "application/json")

	var payload createPayload
	err := DecodeBody(req, &payload)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %v", typed.Details())
	}
	if details["name"] != "is required" {
		t.Fatalf("expected name required detail, got %v", details)
	}
}
