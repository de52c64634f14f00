// Package purchase реализует HTTP-обработчик покупки парковочного разрешения.
//
// Покупка атомарна: транспортное средство, разрешение и платеж создаются
// одной транзакцией бизнес-уровня. В ответе возвращается полная квитанция
// с непрозрачными идентификаторами разрешения и транзакции.
package purchase

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
	permitservice "github.com/magabrotheeeer/parking-permits/internal/services/permit"
)

// Handler обрабатывает HTTP-запросы покупки разрешения.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики покупки разрешения.
type Service interface {
	Purchase(ctx context.Context, userUID string, req models.DummyPurchase) (*models.PurchaseConfirmation, error)
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
// @Summary Покупка парковочного разрешения
// @Description Создает разрешение и платеж одной атомарной операцией, возвращает квитанцию
// @Tags Permits
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyPurchase true "Данные покупки"
// @Success 200 {object} response.OKResponse "Квитанция о покупке"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации данных"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при покупке"
// @Router /permits [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.permit.purchase"

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

	var req models.DummyPurchase
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

	if countDigits(req.CardNumber) != 16 {
		log.Error("card number is not 16 digits")
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("card number must be 16 digits"))
		return
	}

	confirmation, err := h.service.Purchase(r.Context(), userUID, req)
	if err != nil {
		if errors.Is(err, permitservice.ErrInvalidCard) {
			log.Error("invalid card number", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("invalid card number"))
			return
		}
		if errors.Is(err, permitservice.ErrBlankField) {
			log.Error("blank required field", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("required fields must not be blank"))
			return
		}
		log.Error("purchase failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to purchase permit"))
		return
	}

	log.Info("purchase success", slog.String("permit_id", confirmation.PermitID))
	render.JSON(w, r, response.OKWithData(confirmation))
}

// countDigits считает цифры в номере карты, игнорируя пробелы и дефисы.
func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
