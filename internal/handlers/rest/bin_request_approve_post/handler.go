package bin_request_approve_post

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

	var body dto.BinRequestApprove
	if err := httpresponse.Decode(r, &body); err != nil {
		httpresponse.Error(w, h.log, err)
		return
	}

	approval := entities.BinRequestApproval{
		RequestID: mux.Vars(r)["id"],
		BinID:     body.BinId,
		Actor:     actor,
	}
	if body.DeliveryDate != nil {
		approval.DeliveryDate = presenter.ToDate(*body.DeliveryDate)
	}
	if body.BinType != nil {
		binType := entities.BinType(*body.BinType)
		approval.BinType = &binType
	}

	result, err := h.service.ApproveRequest(r.Context(), approval)
	if err != nil {
		httpresponse.Error(w, h.log, err)
		return
	}

	h.log.With(
		logger.NewField("bin_request", result.Request.ID),
		logger.NewField("bin", result.Bin.ID),
		logger.NewField("delivery", result.Delivery.ID),
		logger.NewField("approved_by", actor.ID),
	).Info("bin request approved")

	httpresponse.Success(w, h.log, http.StatusOK, "Bin request approved and delivery scheduled", presenter.ApprovalResult(*result), nil)
}
