package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"evercraft/internal/analytics"
	"evercraft/internal/models"

	"github.com/google/uuid"
)

// LedgerStore owns payments, donations, balances, and payouts. It is the
// concrete implementation of the analytics read interface; the aggregation
// happens in SQL so only reduced rows cross the wire.
type LedgerStore struct {
	db *sql.DB
}

func NewLedgerStore(db *sql.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

// RecordPayment writes a payment, its donation row, and the balance credit
// in one transaction. The split amounts are computed by the caller.
func (s *LedgerStore) RecordPayment(ctx context.Context, payment *models.Payment, nonprofitID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin payment: %w", err)
	}
	defer tx.Rollback()

	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	payment.CreatedAt = now

	_, err = tx.ExecContext(ctx, `
		INSERT INTO payments (
			id, order_id, shop_id, buyer_id, gross_cents,
			platform_fee_cents, donation_cents, net_cents, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		payment.ID, payment.OrderID, payment.ShopID, payment.BuyerID,
		payment.GrossCents, payment.PlatformFeeCents, payment.DonationCents,
		payment.NetCents, payment.Status, now,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}

	if payment.DonationCents > 0 && nonprofitID != "" {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO donations (id, payment_id, nonprofit_id, amount_cents, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			uuid.New().String(), payment.ID, nonprofitID, payment.DonationCents, now)
		if err != nil {
			return fmt.Errorf("insert donation: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO seller_balances (shop_id, pending_cents, paid_cents, updated_at)
		VALUES ($1, $2, 0, $3)
		ON CONFLICT (shop_id) DO UPDATE SET
			pending_cents = seller_balances.pending_cents + EXCLUDED.pending_cents,
			updated_at = EXCLUDED.updated_at`,
		payment.ShopID, payment.NetCents, now)
	if err != nil {
		return fmt.Errorf("credit balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit payment: %w", err)
	}
	return nil
}

// --- analytics.Store ---

func (s *LedgerStore) MonthlyRevenue(ctx context.Context, shopID string, months int) ([]analytics.MonthlyRevenue, error) {
	query := `
		SELECT date_trunc('month', created_at) AS month,
		       COALESCE(SUM(gross_cents), 0)
		FROM payments
		WHERE status = 'PAID'
		  AND created_at >= date_trunc('month', now()) - ($1 || ' months')::interval`
	args := []interface{}{months}
	if shopID != "" {
		query += ` AND shop_id = $2`
		args = append(args, shopID)
	}
	query += `
		GROUP BY 1
		ORDER BY 1 ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("monthly revenue: %w", err)
	}
	defer rows.Close()

	var result []analytics.MonthlyRevenue
	for rows.Next() {
		var m analytics.MonthlyRevenue
		if err := rows.Scan(&m.Month, &m.RevenueCents); err != nil {
			return nil, fmt.Errorf("scan monthly revenue: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

func (s *LedgerStore) PlatformTotals(ctx context.Context, from, to time.Time) (analytics.LedgerTotals, error) {
	return s.totals(ctx, "", from, to)
}

func (s *LedgerStore) ShopTotals(ctx context.Context, shopID string, from, to time.Time) (analytics.LedgerTotals, error) {
	return s.totals(ctx, shopID, from, to)
}

func (s *LedgerStore) totals(ctx context.Context, shopID string, from, to time.Time) (analytics.LedgerTotals, error) {
	query := `
		SELECT COALESCE(SUM(gross_cents), 0),
		       COALESCE(SUM(platform_fee_cents), 0),
		       COALESCE(SUM(donation_cents), 0),
		       COALESCE(SUM(net_cents), 0),
		       COUNT(*)
		FROM payments
		WHERE status = 'PAID' AND created_at >= $1 AND created_at < $2`
	args := []interface{}{from, to}
	if shopID != "" {
		query += ` AND shop_id = $3`
		args = append(args, shopID)
	}

	var t analytics.LedgerTotals
	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&t.GrossCents, &t.FeeCents, &t.DonationCents, &t.NetCents, &t.OrderCount,
	)
	if err != nil {
		return analytics.LedgerTotals{}, fmt.Errorf("ledger totals: %w", err)
	}
	return t, nil
}

func (s *LedgerStore) ShopRevenues(ctx context.Context, from, to time.Time) ([]analytics.ShopRevenue, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.shop_id, s.name,
		       COALESCE(SUM(p.gross_cents), 0), COUNT(*)
		FROM payments p
		JOIN shops s ON s.id = p.shop_id
		WHERE p.status = 'PAID' AND p.created_at >= $1 AND p.created_at < $2
		GROUP BY p.shop_id, s.name`, from, to)
	if err != nil {
		return nil, fmt.Errorf("shop revenues: %w", err)
	}
	defer rows.Close()

	var result []analytics.ShopRevenue
	for rows.Next() {
		var r analytics.ShopRevenue
		if err := rows.Scan(&r.ShopID, &r.ShopName, &r.RevenueCents, &r.OrderCount); err != nil {
			return nil, fmt.Errorf("scan shop revenue: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

func (s *LedgerStore) ProductSales(ctx context.Context, shopID string, from, to time.Time) ([]analytics.ProductSales, error) {
	query := `
		SELECT oi.product_id, pr.name,
		       COALESCE(SUM(oi.quantity), 0),
		       COALESCE(SUM(oi.quantity * oi.unit_price_cents), 0)
		FROM order_items oi
		JOIN payments p ON p.order_id = oi.order_id
		JOIN products pr ON pr.id = oi.product_id
		WHERE p.status = 'PAID' AND p.created_at >= $1 AND p.created_at < $2`
	args := []interface{}{from, to}
	if shopID != "" {
		query += ` AND p.shop_id = $3`
		args = append(args, shopID)
	}
	query += `
		GROUP BY oi.product_id, pr.name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("product sales: %w", err)
	}
	defer rows.Close()

	var result []analytics.ProductSales
	for rows.Next() {
		var r analytics.ProductSales
		if err := rows.Scan(&r.ProductID, &r.ProductName, &r.UnitsSold, &r.RevenueCents); err != nil {
			return nil, fmt.Errorf("scan product sales: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

func (s *LedgerStore) CohortMembers(ctx context.Context, since time.Time) ([]analytics.CohortMember, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id, date_trunc('month', u.created_at),
		       COUNT(p.id) FILTER (WHERE p.status = 'PAID')
		FROM users u
		LEFT JOIN payments p ON p.buyer_id = u.id
		WHERE u.created_at >= $1
		GROUP BY u.id, 2`, since)
	if err != nil {
		return nil, fmt.Errorf("cohort members: %w", err)
	}
	defer rows.Close()

	var result []analytics.CohortMember
	for rows.Next() {
		var m analytics.CohortMember
		if err := rows.Scan(&m.UserID, &m.SignupMonth, &m.PaidOrders); err != nil {
			return nil, fmt.Errorf("scan cohort member: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

func (s *LedgerStore) SignupCounts(ctx context.Context, thisMonth, lastMonth time.Time) (int, int, error) {
	var current, previous int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FILTER (WHERE created_at >= $1),
		       COUNT(*) FILTER (WHERE created_at >= $2 AND created_at < $1)
		FROM users
		WHERE created_at >= $2`, thisMonth, lastMonth).Scan(&current, &previous)
	if err != nil {
		return 0, 0, fmt.Errorf("signup counts: %w", err)
	}
	return current, previous, nil
}

func (s *LedgerStore) DonationTotals(ctx context.Context, from, to time.Time) ([]analytics.NonprofitDonation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.nonprofit_id, n.name, COALESCE(SUM(d.amount_cents), 0)
		FROM donations d
		JOIN nonprofits n ON n.id = d.nonprofit_id
		WHERE d.created_at >= $1 AND d.created_at < $2
		GROUP BY d.nonprofit_id, n.name
		ORDER BY 3 DESC`, from, to)
	if err != nil {
		return nil, fmt.Errorf("donation totals: %w", err)
	}
	defer rows.Close()

	var result []analytics.NonprofitDonation
	for rows.Next() {
		var d analytics.NonprofitDonation
		if err := rows.Scan(&d.NonprofitID, &d.NonprofitName, &d.AmountCents); err != nil {
			return nil, fmt.Errorf("scan donation total: %w", err)
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

func (s *LedgerStore) PendingBalance(ctx context.Context, shopID string) (int64, error) {
	var pending int64
	err := s.db.QueryRowContext(ctx, `
		SELECT pending_cents FROM seller_balances WHERE shop_id = $1`,
		shopID).Scan(&pending)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("pending balance: %w", err)
	}
	return pending, nil
}

// --- payouts ---

// ShopsWithPendingBalance lists shops whose pending balance meets the
// minimum payout amount.
func (s *LedgerStore) ShopsWithPendingBalance(ctx context.Context, minCents int64) ([]models.SellerBalance, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT shop_id, pending_cents, paid_cents, updated_at
		FROM seller_balances
		WHERE pending_cents >= $1
		ORDER BY pending_cents DESC`, minCents)
	if err != nil {
		return nil, fmt.Errorf("pending balances: %w", err)
	}
	defer rows.Close()

	var balances []models.SellerBalance
	for rows.Next() {
		var b models.SellerBalance
		if err := rows.Scan(&b.ShopID, &b.PendingCents, &b.PaidCents, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}

// CreatePayout moves a shop's pending balance into a scheduled payout row
// atomically. The balance is re-read inside the transaction so a concurrent
// payment landing between the list and the schedule is not lost.
func (s *LedgerStore) CreatePayout(ctx context.Context, shopID string, periodStart, periodEnd time.Time) (*models.SellerPayout, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin payout: %w", err)
	}
	defer tx.Rollback()

	var pending int64
	err = tx.QueryRowContext(ctx, `
		SELECT pending_cents FROM seller_balances
		WHERE shop_id = $1
		FOR UPDATE`, shopID).Scan(&pending)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock balance: %w", err)
	}
	if pending <= 0 {
		return nil, ErrNotFound
	}

	now := time.Now().UTC()
	payout := &models.SellerPayout{
		ID:          uuid.New().String(),
		ShopID:      shopID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		AmountCents: pending,
		Status:      models.PayoutStatusScheduled,
		CreatedAt:   now,
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO seller_payouts (
			id, shop_id, period_start, period_end, amount_cents, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		payout.ID, payout.ShopID, payout.PeriodStart, payout.PeriodEnd,
		payout.AmountCents, payout.Status, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert payout: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE seller_balances
		SET pending_cents = 0, paid_cents = paid_cents + $2, updated_at = $3
		WHERE shop_id = $1`,
		shopID, pending, now)
	if err != nil {
		return nil, fmt.Errorf("settle balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit payout: %w", err)
	}
	return payout, nil
}

func (s *LedgerStore) ListPayouts(ctx context.Context, shopID string, limit, offset int) ([]models.SellerPayout, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, shop_id, period_start, period_end, amount_cents,
		       status, created_at, completed_at
		FROM seller_payouts
		WHERE shop_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, shopID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list payouts: %w", err)
	}
	defer rows.Close()

	var payouts []models.SellerPayout
	for rows.Next() {
		var (
			p           models.SellerPayout
			completedAt sql.NullTime
		)
		if err := rows.Scan(
			&p.ID, &p.ShopID, &p.PeriodStart, &p.PeriodEnd, &p.AmountCents,
			&p.Status, &p.CreatedAt, &completedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payout: %w", err)
		}
		if completedAt.Valid {
			p.CompletedAt = &completedAt.Time
		}
		payouts = append(payouts, p)
	}
	return payouts, rows.Err()
}

// MarkPayoutCompleted transitions a scheduled payout to COMPLETED.
func (s *LedgerStore) MarkPayoutCompleted(ctx context.Context, payoutID string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE seller_payouts
		SET status = $2, completed_at = $3
		WHERE id = $1 AND status = $4`,
		payoutID, models.PayoutStatusCompleted, time.Now().UTC(), models.PayoutStatusScheduled)
	if err != nil {
		return fmt.Errorf("complete payout: %w", err)
	}
	return requireAffected(res)
}

func (s *LedgerStore) ListNonprofits(ctx context.Context) ([]models.Nonprofit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name FROM nonprofits ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list nonprofits: %w", err)
	}
	defer rows.Close()

	var nonprofits []models.Nonprofit
	for rows.Next() {
		var n models.Nonprofit
		if err := rows.Scan(&n.ID, &n.Name); err != nil {
			return nil, fmt.Errorf("scan nonprofit: %w", err)
		}
		nonprofits = append(nonprofits, n)
	}
	return nonprofits, rows.Err()
}
