package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/parking-permits/internal/models"
)

// CreateVehicle вставляет новое транспортное средство и возвращает его
// публичный UID. Нарушение уникальности (user_uid, license_plate)
// поднимается наверх без изменений — его различает бизнес-логика.
func (s *Storage) CreateVehicle(ctx context.Context, vehicle models.Vehicle) (string, error) {
	const op = "storage.CreateVehicle"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO vehicles (uid, user_uid, make, model, year, color, license_plate)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING uid`
	var newUID string
	err := s.DB.QueryRowContext(ctx, query,
		uuid.NewString(), vehicle.UserUID, vehicle.Make, vehicle.Model,
		vehicle.Year, vehicle.Color, vehicle.LicensePlate).Scan(&newUID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// ListVehicles возвращает список транспортных средств пользователя,
// новые записи первыми.
func (s *Storage) ListVehicles(ctx context.Context, userUID string) ([]*models.Vehicle, error) {
	const op = "storage.ListVehicles"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, uid, user_uid, make, model, year, color, license_plate, registered_date
			  FROM vehicles
			  WHERE user_uid = $1
			  ORDER BY registered_date DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Vehicle
	for rows.Next() {
		var item models.Vehicle
		var model, color sql.NullString
		var year sql.NullInt64
		if err := rows.Scan(&item.ID, &item.UID, &item.UserUID, &item.Make,
			&model, &year, &color, &item.LicensePlate, &item.RegisteredDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		item.Model = model.String
		item.Year = int(year.Int64)
		item.Color = color.String
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RemoveVehicle удаляет транспортное средство пользователя по публичному UID
// и возвращает количество удалённых строк. Чужая строка не удаляется и
// не отличается от несуществующей.
func (s *Storage) RemoveVehicle(ctx context.Context, userUID, vehicleUID string) (int, error) {
	const op = "storage.RemoveVehicle"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM vehicles WHERE uid = $1 AND user_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, vehicleUID, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
