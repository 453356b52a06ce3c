package person

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/zhouzirui/person-records/backend/internal/model/person"
	personService "github.com/zhouzirui/person-records/backend/internal/service/person"
	"github.com/zhouzirui/person-records/backend/pkg/utils"
)

// Handler person 记录服务的HTTP处理器
type Handler struct {
	svc        *personService.Service
	hub        *personService.Hub
	instanceID string
	upgrader   websocket.Upgrader
}

// New 创建person处理器；hub 为 nil 时变更推送接口返回 503
func New(svc *personService.Service, hub *personService.Hub, instanceID string) *Handler {
	return &Handler{
		svc:        svc,
		hub:        hub,
		instanceID: instanceID,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册person相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/persons", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Get("/count", h.handleCount)
		r.Get("/search", h.handleSearch)
		r.Get("/events", h.handleEvents)
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload person.Fields
	if err := utils.DecodeJSON(w, r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.svc.Create(r.Context(), payload)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := h.svc.List(r.Context(), utils.QueryInt(r, "page"), utils.QueryInt(r, "limit"))
	utils.RespondJSON(w, http.StatusOK, page)
}

func (h *Handler) handleCount(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]int{"count": h.svc.Count(r.Context())})
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	page := h.svc.Search(r.Context(), query, utils.QueryInt(r, "page"), utils.QueryInt(r, "limit"))
	utils.RespondJSON(w, http.StatusOK, page)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, p)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var patch person.Patch
	if err := utils.DecodeJSON(w, r, &patch); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.svc.Update(r.Context(), id, patch)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondMessage(w, http.StatusOK, "person deleted")
}

func parseID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		utils.RespondError(w, http.StatusBadRequest, "invalid person id")
		return 0, false
	}
	return id, true
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, personService.ErrPersonNotFound):
		utils.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, personService.ErrFirstNameRequired),
		errors.Is(err, personService.ErrLastNameRequired):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("[person] unexpected error: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
