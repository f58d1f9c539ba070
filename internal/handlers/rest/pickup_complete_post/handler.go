package pickup_complete_post

import (
	"net/http"

	"github.com/AlekSi/pointer"
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

	var body dto.PickupComplete
	if err := httpresponse.Decode(r, &body); err != nil {
		httpresponse.Error(w, h.log, err)
		return
	}

	result, err := h.service.CompletePickup(r.Context(), entities.PickupCompletion{
		PickupID:  mux.Vars(r)["id"],
		BinStatus: entities.PickupBinStatus(body.BinStatus),
		Notes:     pointer.GetString(body.Notes),
		Actor:     actor,
	})
	if err != nil {
		httpresponse.Error(w, h.log, err)
		return
	}

	h.log.With(
		logger.NewField("pickup", result.Pickup.ID),
		logger.NewField("bin_status", body.BinStatus),
		logger.NewField("emptied_bins", len(result.EmptiedBins)),
		logger.NewField("notifications", result.Notifications),
	).Info("pickup completed")

	httpresponse.Success(w, h.log, http.StatusOK, "Pickup completed", presenter.PickupCompletionResult(*result), result.Warnings)
}
