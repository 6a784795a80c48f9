package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/shopfront/pkg/errors"
)

type addItemPayload struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1,max=99"`
}

func TestDecodeJSONBodyAcceptsValidPayload(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"productId":"p-1","quantity":2}`))
	var payload addItemPayload
	if err := DecodeJSONBody(req, &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.ProductID != "p-1" || payload.Quantity != 2 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"productId":"p-1","quantity":2,"color":"red"}`))
	var payload addItemPayload
	err := DecodeJSONBody(req, &payload)
	if err == nil {
		t.Fatal("expected unknown field to be rejected")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestDecodeJSONBodyReportsFieldErrors(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"quantity":0}`))
	var payload addItemPayload
	err := DecodeJSONBody(req, &payload)
	if err == nil {
		t.Fatal("expected validation errors")
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected domain error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field detail map, got %v", typed.Details())
	}
	if details["productId"] != "is required" {
		t.Fatalf("expected productId required message, got %v", details)
	}
	if details["quantity"] != "must be at least 1" {
		t.Fatalf("expected quantity min message, got %v", details)
	}
}

func TestParseQueryInt(t *testing.T) {
	req := httptest.NewRequest("GET", "/?page=3", nil)
	page, err := ParseQueryInt(req, "page", 1, 1, 100)
	if err != nil || page != 3 {
		t.Fatalf("expected page 3, got %d err %v", page, err)
	}

	req = httptest.NewRequest("GET", "/", nil)
	page, err = ParseQueryInt(req, "page", 1, 1, 100)
	if err != nil || page != 1 {
		t.Fatalf("expected default 1, got %d err %v", page, err)
	}

	req = httptest.NewRequest("GET", "/?page=abc", nil)
	if _, err = ParseQueryInt(req, "page", 1, 1, 100); err == nil {
		t.Fatal("expected an error for non-numeric page")
	}

	req = httptest.NewRequest("GET", "/?page=0", nil)
	if _, err = ParseQueryInt(req, "page", 1, 1, 100); err == nil {
		t.Fatal("expected an error for out-of-range page")
	}
}

func TestParseQueryDecimal(t *testing.T) {
	req := httptest.NewRequest("GET", "/?min_price=10.50", nil)
	value, err := ParseQueryDecimal(req, "min_price", decimal.Zero)
	if err != nil || !value.Equal(decimal.RequireFromString("10.50")) {
		t.Fatalf("expected 10.50, got %s err %v", value, err)
	}

	req = httptest.NewRequest("GET", "/?min_price=-5", nil)
	if _, err = ParseQueryDecimal(req, "min_price", decimal.Zero); err == nil {
		t.Fatal("expected an error for negative price")
	}
}

func TestParseQueryList(t *testing.T) {
	req := httptest.NewRequest("GET", "/?category=Electronics,%20Sports,", nil)
	got := ParseQueryList(req, "category")
	if len(got) != 2 || got[0] != "Electronics" || got[1] != "Sports" {
		t.Fatalf("unexpected list: %v", got)
	}

	req = httptest.NewRequest("GET", "/", nil)
	if got := ParseQueryList(req, "category"); got != nil {
		t.Fatalf("expected nil for absent parameter, got %v", got)
	}
}
