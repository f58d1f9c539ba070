package delivery_confirm_post

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

	transition, err := h.service.ConfirmReceipt(r.Context(), mux.Vars(r)["id"], actor)
	if err != nil {
		httpresponse.Error(w, h.log, err)
		return
	}

	message := "Delivery confirmed and bin activated"
	if len(transition.Warnings) > 0 {
		message = "Delivery confirmed"
	}

	httpresponse.Success(w, h.log, http.StatusOK, message, presenter.DeliveryTransition(*transition), transition.Warnings)
}
