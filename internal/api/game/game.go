package game

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	dto "slots_backend/internal/api/dto/game"
	"slots_backend/internal/converter"
	"slots_backend/internal/model"
	"slots_backend/internal/service"
	"slots_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv     service.GameService
	RollCost int
}

type Handler struct {
	serv     service.GameService
	rollCost int
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv, rollCost: deps.RollCost}
}

// CreateSession создает новую сессию со стартовым балансом
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.serv.CreateSession(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, converter.ToSessionResponse(*session))
}

// GetSession возвращает текущее состояние сессии
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	session, err := h.serv.GetSession(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSessionStatusResponse(*session, h.rollCost))
}

// Roll выполняет один ролл слот-машины
func (h *Handler) Roll(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	result, err := h.serv.Roll(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToRollResponse(*result))
}

// CashOut переносит кредиты сессии на аккаунт
func (h *Handler) CashOut(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	result, err := h.serv.CashOut(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToCashOutResponse(*result))
}

// History возвращает журнал роллов сессии
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	rolls, err := h.serv.History(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToHistoryResponse(rolls))
}

// Stats возвращает агрегированное состояние казино
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatsResponse(h.serv.Stats()))
}

// writeError мапит доменные ошибки на HTTP статусы:
// неизвестная сессия - 404, нехватка кредитов и закрытая сессия - 400,
// все остальное - 500
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrSessionNotFound):
		resp.WriteJSONResponse(w, http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, model.ErrInsufficientCredits), errors.Is(err, model.ErrSessionClosed):
		resp.WriteJSONResponse(w, http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	default:
		log.Println("internal error:", err)
		resp.WriteJSONResponse(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
	}
}
