package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"contour/internal/inquiries/service"
	"contour/internal/inquiries/validator"
	"contour/pkg/client"
	"contour/pkg/config"
	"contour/pkg/events"
	"contour/pkg/logger"
	"contour/pkg/metrics"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newStack wires the real service against a fake clinic API.
func newStack(t *testing.T, upstream http.HandlerFunc) *httprouter.Router {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	log := logger.Discard()
	cfg := &config.Config{ClinicTimezone: "UTC", Location: time.UTC, MessageMaxWords: 500, Log: log}
	api := client.NewClinicAPI(srv.URL, time.Second)
	svc := service.NewInquiryService(api.Contact, api.Subscribers, events.NewNopPublisher(log),
		validator.NewInquiryValidator(log), metrics.New("test"), cfg)

	router := httprouter.New()
	NewInquiryHandler(svc, log).RegisterRoutes(router)
	return router
}

func post(router http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestContact(t *testing.T) {
	var forwarded map[string]any
	router := newStack(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, client.PathContact, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&forwarded))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"_id":"msg-1","name":"Dana","email":"dana@example.com","message":"Hello"}}`))
	})

	rec := post(router, "/api/v1/contact", `{"name":"Dana","email":"dana@example.com","message":"Hello"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"_id":"msg-1"`)
	assert.Equal(t, "Hello", forwarded["message"])
	assert.Nil(t, forwarded["phone"], "empty phone is sent as null")
}

func TestContact_Invalid(t *testing.T) {
	router := newStack(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("clinic API must not be called")
	})

	rec := post(router, "/api/v1/contact", `{"name":"","email":"dana@example.com","message":"Hello"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Name is required")

	rec = post(router, "/api/v1/contact", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNewsletter(t *testing.T) {
	tests := []struct {
		name       string
		upstream   int
		wantStatus int
	}{
		{"created", http.StatusCreated, http.StatusCreated},
		{"already subscribed", http.StatusConflict, http.StatusConflict},
		{"clinic api down", http.StatusServiceUnavailable, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newStack(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.upstream)
				_, _ = w.Write([]byte(`{"_id":"sub-1","email":"a@b.co"}`))
			})

			rec := post(router, "/api/v1/newsletter", `{"email":"a@b.co"}`)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
