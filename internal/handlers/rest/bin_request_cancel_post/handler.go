package bin_request_cancel_post

import (
	"net/http"

	"github.com/gorilla/mux"
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

	request, err := h.service.CancelRequest(r.Context(), mux.Vars(r)["id"], actor)
	if err != nil {
		httpresponse.Error(w, h.log, err)
		return
	}

	httpresponse.Success(w, h.log, http.StatusOK, "Bin request cancelled", presenter.BinRequest(*request), nil)
}
