package apiutil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"name":"Ocean"}`},
		{name: "unknown_field", body: `{"name":"Ocean","extra":1}`, wantErr: true},
		{name: "trailing_document", body: `{"name":"a"}{"name":"b"}`, wantErr: true},
		{name: "empty", body: ``, wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(test.body))
			var dst payload
			err := DecodeJSON(req, &dst)
			if (err != nil) != test.wantErr {
				t.Fatalf("DecodeJSON() error = %v, wantErr %v", err, test.wantErr)
			}
			if !test.wantErr && dst.Name != "Ocean" {
				t.Fatalf("decoded name = %q", dst.Name)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	recorder := httptest.NewRecorder()
	WriteError(recorder, req, HandlerError{Status: http.StatusConflict, Message: "Theme exists"})
	if recorder.Code != http.StatusConflict {
		t.Fatalf("status: %d", recorder.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(recorder.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "Theme exists" {
		t.Fatalf("error = %q", body.Error)
	}

	recorder = httptest.NewRecorder()
	WriteError(recorder, req, errors.New("disk on fire"))
	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("status: %d", recorder.Code)
	}
	if strings.Contains(recorder.Body.String(), "disk on fire") {
		t.Fatalf("internal error leaked: %s", recorder.Body.String())
	}
}

func TestReadBodyLimit(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("a", maxBodyBytes+1)))
	var fieldErr FieldError
	if _, err := ReadBody(req); !errors.As(err, &fieldErr) {
		t.Fatalf("ReadBody() error = %v, want FieldError", err)
	}
}

func TestFields(t *testing.T) {
	if _, err := RequiredField("  ", "name"); err == nil || err.Error() != "name is required" {
		t.Fatalf("RequiredField() error = %v", err)
	}
	if got := FirstNonEmpty("", "  ", " x "); got != "x" {
		t.Fatalf("FirstNonEmpty() = %q", got)
	}
	for raw, want := range map[string]bool{"true": true, "1": true, "on": true, "no": false, "": false} {
		if got := ParseBool(raw); got != want {
			t.Fatalf("ParseBool(%q) = %v", raw, got)
		}
	}
}
