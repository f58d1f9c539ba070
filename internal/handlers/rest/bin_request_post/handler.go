package bin_request_post

import (
	"net/http"

	"github.com/AlekSi/pointer"
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

	var body dto.BinRequestCreate
	if err := httpresponse.Decode(r, &body); err != nil {
		httpresponse.Error(w, h.log, err)
		return
	}

	create := entities.BinRequestCreate{
		ResidentID:       actor.ID,
		RequestedBinType: entities.BinType(pointer.GetString(body.BinType)),
		Notes:            pointer.GetString(body.Notes),
		Address:          presenter.ToAddress(body.Address),
		Coordinates:      presenter.ToGeoPoint(body.Coordinates),
	}
	if body.PreferredDeliveryDate != nil {
		create.PreferredDeliveryDate = pointer.ToTime(presenter.ToDate(*body.PreferredDeliveryDate))
	}

	request, err := h.service.CreateRequest(r.Context(), create, actor)
	if err != nil {
		httpresponse.Error(w, h.log, err)
		return
	}

	httpresponse.Success(w, h.log, http.StatusCreated, "Bin request created", presenter.BinRequest(*request), nil)
}
