// Package list реализует HTTP-обработчик списка транспортных средств пользователя.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/parking-permits/internal/api/middlewarectx"
	"github.com/magabrotheeeer/parking-permits/internal/api/response"
	"github.com/magabrotheeeer/parking-permits/internal/lib/sl"
	"github.com/magabrotheeeer/parking-permits/internal/models"
)

// Handler обрабатывает HTTP-запросы списка транспортных средств.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс чтения транспортных средств пользователя.
type Service interface {
	List(ctx context.Context, userUID string) ([]*models.Vehicle, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список транспортных средств
// @Description Возвращает транспортные средства текущего пользователя
// @Tags Vehicles
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.OKResponse "Список транспортных средств"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /vehicles [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.vehicle.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user identification missing"))
		return
	}

	vehicles, err := h.service.List(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list vehicles", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list vehicles"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"vehicles": vehicles,
		"count":    len(vehicles),
	}))
}
