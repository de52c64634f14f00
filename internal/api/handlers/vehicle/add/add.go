// Package add реализует HTTP-обработчик регистрации транспортного средства.
package add

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/parking-permits/internal/api/middlewarectx"
	"github.com/magabrotheeeer/parking-permits/internal/api/response"
	"github.com/magabrotheeeer/parking-permits/internal/lib/sl"
	"github.com/magabrotheeeer/parking-permits/internal/models"
	vehicleservice "github.com/magabrotheeeer/parking-permits/internal/services/vehicle"
)

// Handler обрабатывает HTTP-запросы регистрации транспортного средства.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики регистрации транспортного средства.
type Service interface {
	Add(ctx context.Context, userUID string, req models.DummyVehicle) (string, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация транспортного средства
// @Description Добавляет транспортное средство текущему пользователю
// @Tags Vehicles
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyVehicle true "Данные транспортного средства"
// @Success 200 {object} response.OKResponse "Транспортное средство добавлено"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Failure 409 {object} response.ErrorResponse "Номерной знак уже зарегистрирован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации данных"
// @Router /vehicles [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.vehicle.add"

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

	var req models.DummyVehicle
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	vehicleUID, err := h.service.Add(r.Context(), userUID, req)
	if err != nil {
		if errors.Is(err, vehicleservice.ErrDuplicatePlate) {
			log.Error("duplicate license plate", sl.Err(err))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("vehicle with this license plate is already registered"))
			return
		}
		log.Error("failed to add vehicle", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to add vehicle"))
		return
	}

	log.Info("vehicle added", slog.String("vehicle_id", vehicleUID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message":   "vehicle registered successfully",
		"vehicleId": vehicleUID,
	}))
}
