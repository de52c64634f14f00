// Package list реализует HTTP-обработчик списка разрешений пользователя.
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

// Handler обрабатывает HTTP-запросы списка разрешений.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс чтения разрешений пользователя.
type Service interface {
	List(ctx context.Context, userUID string) ([]*models.Permit, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список разрешений пользователя
// @Description Возвращает разрешения со статусом, вычисленным на момент запроса
// @Tags Permits
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.OKResponse "Список разрешений"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /permits [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.permit.list"

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

	permits, err := h.service.List(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list permits", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list permits"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"permits": permits,
		"count":   len(permits),
	}))
}
