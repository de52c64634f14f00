package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/parking-permits/internal/models"
)

// ListPayments возвращает историю платежей пользователя, новые записи первыми.
func (s *Storage) ListPayments(ctx context.Context, userUID string) ([]*models.Payment, error) {
	const op = "storage.ListPayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, transaction_uid, user_uid, permit_id, amount,
			      card_last4, payment_date, status
			  FROM payments
			  WHERE user_uid = $1
			  ORDER BY payment_date DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Payment
	for rows.Next() {
		var item models.Payment
		if err := rows.Scan(&item.ID, &item.TransactionUID, &item.UserUID,
			&item.PermitID, &item.Amount, &item.CardLast4,
			&item.PaymentDate, &item.Status); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
