package delivery_status_put

import (
	"net/http"

	"github.com/gorilla/mux"
	"waste-service/internal/entities"
	"waste-service/internal/generated/dto"
	"waste-service/internal/handlers/rest/presenter"
	"waste-service/internal/pkg/httpresponse"
	"waste-service/internal/pkg/middlewares/auth"
	"waste-service/pkg/logger"
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

	var body dto.DeliveryStatusUpdate
	if err := httpresponse.Decode(r, &body); err != nil {
		httpresponse.Error(w, h.log, err)
		return
	}

	transition, err := h.service.UpdateStatus(r.Context(), entities.DeliveryStatusUpdate{
		DeliveryID: mux.Vars(r)["id"],
		Status:     entities.DeliveryStatus(body.Status),
		Note:       body.Note,
		Actor:      actor,
	})
	if err != nil {
		httpresponse.Error(w, h.log, err)
		return
	}

	if len(transition.Warnings) > 0 {
		h.log.With(
			logger.NewField("delivery", transition.Delivery.ID),
			logger.NewField("warnings", len(transition.Warnings)),
		).Warn("delivery status updated with warnings")
	}

	httpresponse.Success(w, h.log, http.StatusOK, "Delivery status updated", presenter.DeliveryTransition(*transition), transition.Warnings)
}
