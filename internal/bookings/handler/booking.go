package handler

import (
	"net/http"

	"contour/internal/bookings/service"
	"contour/internal/bookings/validator"
	httputil "contour/pkg/http"
	"contour/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

const HeaderIdempotencyKey = "Idempotency-Key"

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *BookingHandler) CreateDraft(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	view, err := h.service.CreateDraft(r.Context())
	if err != nil {
		h.writeError(w, "CreateDraft", err)
		return
	}

	if err := httputil.WriteCreated(w, view); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateDraft", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) GetDraft(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	view, err := h.service.GetDraft(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetDraft", err)
		return
	}

	if err := httputil.WriteSuccess(w, view); err != nil {
		h.log.Error("failed to write success response", "handler", "GetDraft", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) UpdateField(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req validator.FieldEditRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "UpdateField", err)
		return
	}

	update, err := h.service.UpdateField(r.Context(), ps.ByName("id"), &req)
	if err != nil {
		h.writeError(w, "UpdateField", err)
		return
	}

	if err := httputil.WriteSuccess(w, update); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateField", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) DraftSlots(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	slots, err := h.service.DraftSlots(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "DraftSlots", err)
		return
	}

	if err := httputil.WriteSuccess(w, slots); err != nil {
		h.log.Error("failed to write success response", "handler", "DraftSlots", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Submit(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	result, err := h.service.Submit(r.Context(), ps.ByName("id"), r.Header.Get(HeaderIdempotencyKey))
	if err != nil {
		h.writeError(w, "Submit", err)
		return
	}

	h.writeSubmitResult(w, "Submit", result)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Cancel(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Cancel", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *BookingHandler) Slots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	slots, err := h.service.Slots(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		h.writeError(w, "Slots", err)
		return
	}

	if err := httputil.WriteSuccess(w, slots); err != nil {
		h.log.Error("failed to write success response", "handler", "Slots", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Validate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req validator.FieldEditRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Validate", err)
		return
	}

	result, err := h.service.Validate(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Validate", err)
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "Validate", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Services(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteSuccess(w, h.service.Services()); err != nil {
		h.log.Error("failed to write success response", "handler", "Services", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) SubmitOnce(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req validator.BookingRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "SubmitOnce", err)
		return
	}

	result, err := h.service.SubmitOnce(r.Context(), &req, r.Header.Get(HeaderIdempotencyKey))
	if err != nil {
		h.writeError(w, "SubmitOnce", err)
		return
	}

	h.writeSubmitResult(w, "SubmitOnce", result)
}

// writeSubmitResult answers 201 for a new booking and 200 for a replay.
func (h *BookingHandler) writeSubmitResult(w http.ResponseWriter, handler string, result *service.SubmitResult) {
	var err error
	if result.Replayed {
		err = httputil.WriteSuccess(w, result)
	} else {
		err = httputil.WriteCreated(w, result)
	}
	if err != nil {
		h.log.Error("failed to write submit response", "handler", handler, "operation", "WriteSubmitResult", "error", err)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/booking-drafts", h.CreateDraft)
	router.GET("/api/v1/booking-drafts/id/:id", h.GetDraft)
	router.PATCH("/api/v1/booking-drafts/id/:id", h.UpdateField)
	router.DELETE("/api/v1/booking-drafts/id/:id", h.Cancel)
	router.GET("/api/v1/booking-drafts/id/:id/slots", h.DraftSlots)
	router.POST("/api/v1/booking-drafts/id/:id/submit", h.Submit)

	router.GET("/api/v1/slots", h.Slots)
	router.POST("/api/v1/validation", h.Validate)
	router.GET("/api/v1/services", h.Services)
	router.POST("/api/v1/bookings", h.SubmitOnce)
}
