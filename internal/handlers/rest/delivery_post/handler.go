package delivery_post

import (
	"net/http"

	"waste-service/internal/entities"
	"waste-service/internal/generated/dto"
	"waste-service/internal/handlers/rest/presenter"
	"waste-service/internal/pkg/httpresponse"
	"waste-service/internal/pkg/middlewares/auth"
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
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		httpresponse.Error(w, h.log, httpresponse.ErrUnauthenticated)
		return
	}

	var body dto.DeliveryCreate
	if err := httpresponse.Decode(r, &body); err != nil {
		httpresponse.Error(w, h.log, err)
		return
	}

	delivery, err := h.service.CreateDelivery(r.Context(), entities.DeliveryCreate{
		BinRequestID:  body.BinRequestId,
		BinID:         body.BinId,
		ScheduledDate: presenter.ToDate(body.ScheduledDate),
		Actor:         actor,
	})
	if err != nil {
		httpresponse.Error(w, h.log, err)
		return
	}

	httpresponse.Success(w, h.log, http.StatusCreated, "Delivery scheduled", presenter.Delivery(*delivery), nil)
}
