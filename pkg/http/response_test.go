package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "contour/pkg/errors"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantError  string
	}{
		{
			name:       "not found keeps status",
			err:        apperrors.NotFoundWithID("Booking draft", "abc"),
			wantStatus: http.StatusNotFound,
			wantCode:   apperrors.CodeNotFound,
			wantError:  "Booking draft not found",
		},
		{
			name:       "precondition",
			err:        apperrors.PreconditionFailed("booking is incomplete", nil),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   apperrors.CodePreconditionFailed,
			wantError:  "booking is incomplete",
		},
		{
			name:       "upstream",
			err:        apperrors.BadGateway("Clinic API", errors.New("boom")),
			wantStatus: http.StatusBadGateway,
			wantCode:   apperrors.CodeUpstream,
			wantError:  "Clinic API request failed",
		},
		{
			name:       "plain error is hidden",
			err:        errors.New("secret connection string"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   apperrors.CodeInternal,
			wantError:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			if err := WriteError(rec, tt.err); err != nil {
				t.Fatalf("WriteError() error = %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Code != tt.wantCode || body.Error != tt.wantError {
				t.Errorf("body = %+v, want code %q error %q", body, tt.wantCode, tt.wantError)
			}
		})
	}
}

func TestWriteSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := WriteCreated(rec, map[string]string{"id": "d1"}); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
	if !strings.Contains(rec.Body.String(), `"data":{"id":"d1"}`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Field string `json:"field"`
	}

	tests := []struct {
		name     string
		input    string
		wantCode string
	}{
		{name: "valid", input: `{"field":"email"}`},
		{name: "empty", input: ``, wantCode: apperrors.CodeInvalidInput},
		{name: "unknown field", input: `{"feild":"email"}`, wantCode: apperrors.CodeInvalidInput},
		{name: "trailing object", input: `{"field":"a"}{"field":"b"}`, wantCode: apperrors.CodeInvalidInput},
		{name: "broken", input: `{"field":`, wantCode: apperrors.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.input))
			var dst body
			err := DecodeJSON(r, &dst)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("DecodeJSON() error = %v", err)
				}
				return
			}
			if got := apperrors.AsAppError(err).Code; got != tt.wantCode {
				t.Errorf("code = %q, want %q", got, tt.wantCode)
			}
		})
	}
}

func TestDecodeJSON_TooLarge(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"field":"`+strings.Repeat("x", 100)+`"}`))
	r.Body = http.MaxBytesReader(rec, r.Body, 16)

	var dst map[string]string
	err := DecodeJSON(r, &dst)
	if got := apperrors.AsAppError(err).Code; got != apperrors.CodePayloadTooLarge {
		t.Errorf("code = %q, want %q", got, apperrors.CodePayloadTooLarge)
	}
}

func TestTrustedProxies_ClientIP(t *testing.T) {
	proxies, err := ParseTrustedProxies([]string{"10.0.0.0/8", " 192.0.2.10 ", ""})
	if err != nil {
		t.Fatalf("ParseTrustedProxies() error = %v", err)
	}

	tests := []struct {
		name    string
		proxies TrustedProxies
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "untrusted peer ignores forwarded for", proxies: proxies, headers: map[string]string{"X-Forwarded-For": "203.0.113.7"}, remote: "198.51.100.1:1234", want: "198.51.100.1"},
		{name: "untrusted peer ignores real ip", proxies: proxies, headers: map[string]string{"X-Real-IP": "203.0.113.8"}, remote: "198.51.100.1:1234", want: "198.51.100.1"},
		{name: "no proxies configured", headers: map[string]string{"X-Forwarded-For": "203.0.113.7"}, remote: "10.0.0.2:1234", want: "10.0.0.2"},
		{name: "trusted peer single hop", proxies: proxies, headers: map[string]string{"X-Forwarded-For": "203.0.113.7"}, remote: "10.0.0.2:1234", want: "203.0.113.7"},
		{name: "spoofed left hops are skipped", proxies: proxies, headers: map[string]string{"X-Forwarded-For": "1.2.3.4, 203.0.113.7, 10.1.1.1"}, remote: "10.0.0.2:1234", want: "203.0.113.7"},
		{name: "bare trusted address", proxies: proxies, headers: map[string]string{"X-Forwarded-For": "203.0.113.9"}, remote: "192.0.2.10:80", want: "203.0.113.9"},
		{name: "all hops trusted", proxies: proxies, headers: map[string]string{"X-Forwarded-For": "10.9.9.9, 10.1.1.1"}, remote: "10.0.0.2:1234", want: "10.9.9.9"},
		{name: "malformed hop", proxies: proxies, headers: map[string]string{"X-Forwarded-For": "not-an-ip"}, remote: "10.0.0.2:1234", want: "10.0.0.2"},
		{name: "trusted peer real ip", proxies: proxies, headers: map[string]string{"X-Real-IP": "203.0.113.8"}, remote: "10.0.0.2:1234", want: "203.0.113.8"},
		{name: "remote without port", proxies: proxies, remote: "192.0.2.1", want: "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := tt.proxies.ClientIP(r); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseTrustedProxies_Invalid(t *testing.T) {
	for _, entry := range []string{"10.0.0.0/33", "proxy.internal"} {
		if _, err := ParseTrustedProxies([]string{entry}); err == nil {
			t.Errorf("ParseTrustedProxies(%q) error = nil, want error", entry)
		}
	}
}
