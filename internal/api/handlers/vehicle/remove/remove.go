// Package remove реализует HTTP-обработчик удаления транспортного средства.
//
// Handler извлекает публичный идентификатор из URL-параметров и удаляет
// только транспортное средство текущего пользователя: чужие идентификаторы
// неотличимы от несуществующих.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/parking-permits/internal/api/middlewarectx"
	"github.com/magabrotheeeer/parking-permits/internal/api/response"
	"github.com/magabrotheeeer/parking-permits/internal/lib/sl"
	vehicleservice "github.com/magabrotheeeer/parking-permits/internal/services/vehicle"
)

// Handler обрабатывает HTTP-запросы удаления транспортного средства.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления транспортного средства.
type Service interface {
	Remove(ctx context.Context, userUID, vehicleUID string) error
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удаление транспортного средства
// @Description Удаляет транспортное средство пользователя по идентификатору
// @Tags Vehicles
// @Produce  json
// @Security BearerAuth
// @Param vehicleId path string true "Идентификатор транспортного средства"
// @Success 200 {object} response.OKResponse "Транспортное средство удалено"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Failure 404 {object} response.ErrorResponse "Транспортное средство не найдено"
// @Failure 500 {object} response.ErrorResponse "Ошибка при удалении"
// @Router /vehicles/{vehicleId} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.vehicle.remove"

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

	vehicleUID := chi.URLParam(r, "vehicleId")
	if vehicleUID == "" {
		log.Error("missing vehicle id")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing vehicle id"))
		return
	}

	if err := h.service.Remove(r.Context(), userUID, vehicleUID); err != nil {
		if errors.Is(err, vehicleservice.ErrVehicleNotFound) {
			log.Error("vehicle not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("vehicle not found"))
			return
		}
		log.Error("failed to remove vehicle", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to remove vehicle"))
		return
	}

	log.Info("vehicle removed", slog.String("vehicle_id", vehicleUID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "vehicle removed successfully",
	}))
}
