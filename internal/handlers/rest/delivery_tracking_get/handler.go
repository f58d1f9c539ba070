package delivery_tracking_get

import (
	"net/http"

	"github.com/gorilla/mux"
	"waste-service/internal/handlers/rest/presenter"
	"waste-service/internal/pkg/httpresponse"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	return &Handler{
		log:     log.With(),
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	delivery, err := h.service.GetByTrackingNumber(r.Context(), mux.Vars(r)["trackingNumber"])
	if err != nil {
		httpresponse.Error(w, h.log, err)
		return
	}

	httpresponse.Success(w, h.log, http.StatusOK, "Delivery found", presenter.Delivery(*delivery), nil)
}
