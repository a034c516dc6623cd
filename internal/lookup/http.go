package lookup

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/anhtran/libris/internal/platform/request"
	"github.com/anhtran/libris/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/", handler.lookup)
	router.Post("/{token}/confirm", handler.confirm)
}

type lookupRequest struct {
	ISBN string `json:"isbn"`
}

// lookup runs the external query. It creates nothing: the response is
// either a resolved proposal (author known or absent) or a pending one
// that requires an explicit confirm call.
func (handler *Handler) lookup(writer http.ResponseWriter, request *http.Request) {
	var input lookupRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	proposal, err := handler.service.Lookup(request.Context(), input.ISBN)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, proposal)
}

func (handler *Handler) confirm(writer http.ResponseWriter, request *http.Request) {
	token := requestutil.Param(request, "token")

	proposal, err := handler.service.Confirm(request.Context(), token)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, proposal)
}
