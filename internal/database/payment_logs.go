package database

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

const createPaymentLog = `
INSERT INTO payment_logs (id, payment_intent_id, status, metadata, amount)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, payment_intent_id, status, metadata, amount, created_at
`

type CreatePaymentLogParams struct {
	ID              uuid.UUID
	PaymentIntentID string
	Status          string
	Metadata        json.RawMessage
	Amount          string
}

func (q *Queries) CreatePaymentLog(ctx context.Context, arg CreatePaymentLogParams) (PaymentLog, error) {
	row := q.db.QueryRowContext(ctx, createPaymentLog,
		arg.ID, arg.PaymentIntentID, arg.Status, arg.Metadata, arg.Amount,
	)

	var paymentLog PaymentLog
	err := row.Scan(
		&paymentLog.ID, &paymentLog.PaymentIntentID, &paymentLog.Status,
		&paymentLog.Metadata, &paymentLog.Amount, &paymentLog.CreatedAt,
	)

	return paymentLog, err
}
