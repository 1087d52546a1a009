package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

const validateDiscountCode = `SELECT * FROM validate_discount_code($1, $2, $3)`

type ValidateDiscountCodeParams struct {
	Code        string
	CampSlug    sql.NullString
	OrderAmount string
}

type ValidateDiscountCodeRow struct {
	IsValid            bool
	DiscountID         uuid.NullUUID
	DiscountType       sql.NullString
	DiscountValue      sql.NullString
	CalculatedDiscount sql.NullString
	ErrorMessage       sql.NullString
}

// validate_discount_code owns the validity window, usage-limit and
// applicability rules; this layer only relays its verdict.
func (q *Queries) ValidateDiscountCode(ctx context.Context, arg ValidateDiscountCodeParams) (ValidateDiscountCodeRow, error) {
	row := q.db.QueryRowContext(ctx, validateDiscountCode, arg.Code, arg.CampSlug, arg.OrderAmount)

	var i ValidateDiscountCodeRow
	err := row.Scan(
		&i.IsValid, &i.DiscountID, &i.DiscountType, &i.DiscountValue,
		&i.CalculatedDiscount, &i.ErrorMessage,
	)

	return i, err
}
