package httpapi_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/multiversecave/storefront/internal/app/system/httpapi"
)

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	httpapi.JSON(rec, http.StatusCreated, map[string]int{"count": 3})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if !strings.Contains(rec.Body.String(), `"count":3`) {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()
	httpapi.Error(rec, http.StatusNotFound, "thing not found")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if !strings.Contains(rec.Body.String(), `"error":"thing not found"`) {
		t.Errorf("body = %q, want error envelope", rec.Body.String())
	}
}

func TestMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	httpapi.Message(rec, http.StatusOK, "done")

	if !strings.Contains(rec.Body.String(), `"message":"done"`) {
		t.Errorf("body = %q, want message envelope", rec.Body.String())
	}
}

func TestDecode_IgnoresUnknownFields(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"x","extra":"ignored"}`))

	var v struct {
		Name string `json:"name"`
	}
	if err := httpapi.Decode(req, &v); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v.Name != "x" {
		t.Errorf("Name = %q, want %q", v.Name, "x")
	}
}

func TestDecode_BadJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{not json`))

	var v struct{}
	if err := httpapi.Decode(req, &v); err == nil {
		t.Error("malformed body should not decode")
	}
}
