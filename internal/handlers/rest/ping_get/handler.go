package ping_get

import (
	"net/http"

	"waste-service/internal/pkg/httpresponse"
)

type Handler struct {
	log handlerLogger
}

func New(log handlerLogger) *Handler {
	return &Handler{
		log: log.With(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	httpresponse.Success(w, h.log, http.StatusOK, "pong", nil, nil)
}
