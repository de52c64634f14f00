package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/parking-permits/internal/models"
)

// CreatePermitWithPayment выполняет покупку разрешения как одну атомарную
// единицу работы: get-or-create транспортного средства, вставку разрешения
// и вставку платежа. Любая ошибка откатывает всю транзакцию — частичное
// состояние не сохраняется. Возвращает внутренний ID созданного разрешения.
//
// Get-or-create реализован через INSERT .. ON CONFLICT DO UPDATE:
// форма DO UPDATE (а не DO NOTHING) гарантирует, что RETURNING вернет id
// выжившей строки и проигравшему из двух конкурентных запросов.
func (s *Storage) CreatePermitWithPayment(ctx context.Context, permit models.Permit, payment models.Payment) (int, error) {
	const op = "storage.CreatePermitWithPayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var vehicleID int
	upsertVehicle := `INSERT INTO vehicles (uid, user_uid, make, license_plate)
					  VALUES ($1, $2, $3, $4)
					  ON CONFLICT (user_uid, license_plate)
					  DO UPDATE SET make = EXCLUDED.make
					  RETURNING id`
	if err = tx.QueryRowContext(ctx, upsertVehicle,
		uuid.NewString(), permit.UserUID, permit.VehicleMake,
		permit.LicensePlate).Scan(&vehicleID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var permitID int
	insertPermit := `INSERT INTO permits (permit_uid, user_uid, vehicle_id, full_name,
					     student_id, vehicle_make, license_plate, category, price,
					     purchase_date, expiry_date)
					 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
					 RETURNING id`
	if err = tx.QueryRowContext(ctx, insertPermit,
		permit.PermitUID, permit.UserUID, vehicleID, permit.FullName,
		permit.StudentID, permit.VehicleMake, permit.LicensePlate,
		permit.Category, permit.Price, permit.PurchaseDate,
		permit.ExpiryDate).Scan(&permitID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	insertPayment := `INSERT INTO payments (transaction_uid, user_uid, permit_id,
					      amount, card_last4, payment_date, status)
					  VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err = tx.ExecContext(ctx, insertPayment,
		payment.TransactionUID, permit.UserUID, permitID, payment.Amount,
		payment.CardLast4, payment.PaymentDate, payment.Status); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return permitID, nil
}

// ListPermits возвращает разрешения пользователя, последние покупки первыми.
// Статус здесь не вычисляется — это делает бизнес-логика при каждом чтении.
func (s *Storage) ListPermits(ctx context.Context, userUID string) ([]*models.Permit, error) {
	const op = "storage.ListPermits"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, permit_uid, user_uid, vehicle_id, full_name, student_id,
			      vehicle_make, license_plate, category, price, purchase_date, expiry_date
			  FROM permits
			  WHERE user_uid = $1
			  ORDER BY purchase_date DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Permit
	for rows.Next() {
		var item models.Permit
		var vehicleID sql.NullInt64
		if err := rows.Scan(&item.ID, &item.PermitUID, &item.UserUID, &vehicleID,
			&item.FullName, &item.StudentID, &item.VehicleMake, &item.LicensePlate,
			&item.Category, &item.Price, &item.PurchaseDate, &item.ExpiryDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		item.VehicleID = int(vehicleID.Int64)
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// FindPermitsExpiringTomorrow находит разрешения, истекающие завтра,
// вместе с email владельца для рассылки напоминаний.
func (s *Storage) FindPermitsExpiringTomorrow(ctx context.Context) ([]*models.PermitInfo, error) {
	const op = "storage.FindPermitsExpiringTomorrow"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
			      u.email,
			      p.full_name,
			      p.permit_uid,
			      p.license_plate,
			      p.expiry_date
			  FROM permits p
			  JOIN users u ON p.user_uid = u.uid
			  WHERE p.expiry_date::DATE = CURRENT_DATE + INTERVAL '1 day';`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.PermitInfo
	for rows.Next() {
		var pi models.PermitInfo
		if err = rows.Scan(&pi.Email, &pi.FullName, &pi.PermitUID,
			&pi.LicensePlate, &pi.ExpiryDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &pi)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
