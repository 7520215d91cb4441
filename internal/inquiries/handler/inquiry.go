package handler

import (
	"net/http"

	"contour/internal/inquiries/service"
	"contour/internal/inquiries/validator"
	httputil "contour/pkg/http"
	"contour/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type InquiryHandler struct {
	service service.InquiryService
	log     *logger.Logger
}

func NewInquiryHandler(service service.InquiryService, log *logger.Logger) *InquiryHandler {
	return &InquiryHandler{
		service: service,
		log:     log,
	}
}

func (h *InquiryHandler) Contact(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req validator.ContactRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Contact", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	msg, err := h.service.SubmitContact(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Contact", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, msg); err != nil {
		h.log.Error("failed to write created response", "handler", "Contact", "operation", "WriteCreated", "error", err)
	}
}

func (h *InquiryHandler) Newsletter(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req validator.NewsletterRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Newsletter", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	sub, err := h.service.Subscribe(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Newsletter", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, sub); err != nil {
		h.log.Error("failed to write created response", "handler", "Newsletter", "operation", "WriteCreated", "error", err)
	}
}

func (h *InquiryHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/contact", h.Contact)
	router.POST("/api/v1/newsletter", h.Newsletter)
}
