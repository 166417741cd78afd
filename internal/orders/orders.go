package orders

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

type Conf struct {
	db *sql.DB
}

func NewConf(db *sql.DB) (*Conf, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	return &Conf{db: db}, nil
}

func (c *Conf) CreateOrder(ctx context.Context, o Order) error {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}
	addressJSON, err := json.Marshal(o.DeliveryAddress)
	if err != nil {
		return fmt.Errorf("failed to marshal delivery address: %w", err)
	}

	query := `
		INSERT INTO orders
			(id, user_id, items, amount, currency, delivery_address, phone_number, status, created_at, updated_at)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err = c.db.ExecContext(ctx, query,
		o.ID, o.UserID, itemsJSON, o.Amount, o.Currency, addressJSON, o.PhoneNumber, StatusPending)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (c *Conf) SetRazorpayOrderID(ctx context.Context, orderID, razorpayOrderID string) error {
	query := `
		UPDATE orders
		SET razorpay_order_id = $1, updated_at = NOW()
		WHERE id = $2
	`
	res, err := c.db.ExecContext(ctx, query, razorpayOrderID, orderID)
	if err != nil {
		return fmt.Errorf("failed to set gateway order id: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (c *Conf) GetOrderByID(ctx context.Context, orderID string) (Order, error) {
	query := `
		SELECT id, user_id, items, amount, currency, delivery_address, phone_number,
		       status, COALESCE(razorpay_order_id, ''), COALESCE(payment_id, ''),
		       COALESCE(failure_reason, ''), payment_details,
		       created_at, updated_at, paid_at, failed_at
		FROM orders
		WHERE id = $1
	`
	o, err := scanOrder(c.db.QueryRowContext(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Order{}, ErrOrderNotFound
		}
		return Order{}, fmt.Errorf("failed to query order: %w", err)
	}
	return o, nil
}

func (c *Conf) ListOrdersByUser(ctx context.Context, userID string) ([]Order, error) {
	query := `
		SELECT id, user_id, items, amount, currency, delivery_address, phone_number,
		       status, COALESCE(razorpay_order_id, ''), COALESCE(payment_id, ''),
		       COALESCE(failure_reason, ''), payment_details,
		       created_at, updated_at, paid_at, failed_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := c.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user orders: %w", err)
	}
	defer rows.Close()

	var list []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		list = append(list, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}
	return list, nil
}

// MarkPaid guards the pending -> paid transition with a conditional update:
// a concurrent verify or failure report that already closed the order makes
// this a no-op and surfaces ErrOrderClosed.
func (c *Conf) MarkPaid(ctx context.Context, orderID, paymentID string, details PaymentDetails) error {
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to marshal payment details: %w", err)
	}

	return c.withTx(ctx, func(tx *sql.Tx) error {
		query := `
			UPDATE orders
			SET status = $1, payment_id = $2, payment_details = $3,
			    paid_at = NOW(), updated_at = NOW()
			WHERE id = $4 AND status = $5
		`
		res, err := tx.ExecContext(ctx, query, StatusPaid, paymentID, detailsJSON, orderID, StatusPending)
		if err != nil {
			return fmt.Errorf("failed to mark order paid: %w", err)
		}
		return checkTransition(ctx, tx, res, orderID)
	})
}

// MarkFailed guards pending -> failed the same way MarkPaid guards
// pending -> paid.
func (c *Conf) MarkFailed(ctx context.Context, orderID, reason string) error {
	return c.withTx(ctx, func(tx *sql.Tx) error {
		query := `
			UPDATE orders
			SET status = $1, failure_reason = $2, failed_at = NOW(), updated_at = NOW()
			WHERE id = $3 AND status = $4
		`
		res, err := tx.ExecContext(ctx, query, StatusFailed, reason, orderID, StatusPending)
		if err != nil {
			return fmt.Errorf("failed to mark order failed: %w", err)
		}
		return checkTransition(ctx, tx, res, orderID)
	})
}

// checkTransition distinguishes "no such order" from "order already closed"
// when the conditional update matched nothing.
func checkTransition(ctx context.Context, tx *sql.Tx, res sql.Result, orderID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n > 0 {
		return nil
	}
	var status string
	err = tx.QueryRowContext(ctx, `SELECT status FROM orders WHERE id = $1`, orderID).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to query order status: %w", err)
	}
	return ErrOrderClosed
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (Order, error) {
	var (
		o           Order
		itemsJSON   []byte
		addressJSON []byte
		detailsJSON []byte
		paidAt      sql.NullTime
		failedAt    sql.NullTime
	)
	err := row.Scan(&o.ID, &o.UserID, &itemsJSON, &o.Amount, &o.Currency, &addressJSON,
		&o.PhoneNumber, &o.Status, &o.RazorpayOrderID, &o.PaymentID, &o.FailureReason,
		&detailsJSON, &o.CreatedAt, &o.UpdatedAt, &paidAt, &failedAt)
	if err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return Order{}, fmt.Errorf("failed to unmarshal order items: %w", err)
	}
	if err := json.Unmarshal(addressJSON, &o.DeliveryAddress); err != nil {
		return Order{}, fmt.Errorf("failed to unmarshal delivery address: %w", err)
	}
	if len(detailsJSON) > 0 {
		var details PaymentDetails
		if err := json.Unmarshal(detailsJSON, &details); err != nil {
			return Order{}, fmt.Errorf("failed to unmarshal payment details: %w", err)
		}
		o.PaymentDetails = &details
	}
	if paidAt.Valid {
		o.PaidAt = &paidAt.Time
	}
	if failedAt.Valid {
		o.FailedAt = &failedAt.Time
	}
	return o, nil
}

func (c *Conf) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		er := tx.Rollback()
		if er != nil && !errors.Is(er, sql.ErrTxDone) {
			return fmt.Errorf("failed to rollback withTx: %w", err)
		}
		return err
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("failed to commit withTx: %w", err)
	}
	return nil
}
