package bin_request_reject_post

import (
	"net/http"

	"github.com/gorilla/mux"
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

	var body dto.BinRequestReject
	if err := httpresponse.Decode(r, &body); err != nil {
		httpresponse.Error(w, h.log, err)
		return
	}

	request, err := h.service.RejectRequest(r.Context(), mux.Vars(r)["id"], body.Reason, actor)
	if err != nil {
		httpresponse.Error(w, h.log, err)
		return
	}

	httpresponse.Success(w, h.log, http.StatusOK, "Bin request rejected", presenter.BinRequest(*request), nil)
}
