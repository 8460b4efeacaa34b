package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/angelmondragon/promocheck/pkg/errors"
)

type lineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=0"`
}

type cartRequest struct {
	Items []lineRequest `json:"items" validate:"required,dive"`
}

func decode(t *testing.T, body string) (cartRequest, error) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	var dest cartRequest
	err := DecodeJSONBody(httptest.NewRecorder(), req, &dest)
	return dest, err
}

func TestDecodeJSONBodyAcceptsUnknownFields(t *testing.T) {
	got, err := decode(t, `{"items":[{"product_id":"p1","quantity":2,"name":"Gummies"}],"cart_id":"c1"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].ProductID != "p1" {
		t.Fatalf("unexpected decode %+v", got)
	}
}

func TestDecodeJSONBodyReportsFieldPaths(t *testing.T) {
	_, err := decode(t, `{"items":[{"product_id":"p1","quantity":1},{"quantity":-1}]}`)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected map details, got %T", typed.Details())
	}
	if details["items[1].product_id"] != "is required" {
		t.Fatalf("missing product id detail: %v", details)
	}
	if details["items[1].quantity"] != "must be at least 0" {
		t.Fatalf("missing quantity detail: %v", details)
	}
}

func TestDecodeJSONBodyRejectsMissingItems(t *testing.T) {
	_, err := decode(t, `{}`)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	got, err := decode(t, `{"items":[]}`)
	if err != nil {
		t.Fatalf("empty cart should be accepted, got %v", err)
	}
	if got.Items == nil {
		t.Fatal("expected empty non-nil items")
	}
}

func TestDecodeJSONBodyRejectsMalformedJSON(t *testing.T) {
	for _, body := range []string{`{"items":`, `{"items":[]} {"items":[]}`, `{"items":"nope"}`} {
		_, err := decode(t, body)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error for %q, got %v", body, err)
		}
	}
}

func TestDecodeJSONBodyRejectsOversizedBody(t *testing.T) {
	body := `{"items":[{"product_id":"` + strings.Repeat("x", MaxBodyBytes) + `","quantity":1}]}`
	_, err := decode(t, body)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodePayloadTooLarge {
		t.Fatalf("expected payload too large, got %v", err)
	}
}
