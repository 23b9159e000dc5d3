package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/trendwear/storefront/internal/storage"
	"github.com/trendwear/storefront/internal/types/order"
	"github.com/trendwear/storefront/internal/types/payment"
	"github.com/trendwear/storefront/internal/types/product"
	"github.com/trendwear/storefront/internal/types/user"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const pgUniqueViolation = "23505"

type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(dsn string) (*PostgresStorage, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	s := &PostgresStorage{db: db}

	if err := s.db.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStorage) initSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id UUID PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT UNIQUE NOT NULL,
            created_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id UUID PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            category TEXT NOT NULL DEFAULT '',
            sub_category TEXT NOT NULL DEFAULT '',
            image TEXT NOT NULL DEFAULT '',
            price NUMERIC(12,2) NOT NULL,
            sizes JSONB NOT NULL DEFAULT '[]'
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id UUID PRIMARY KEY,
            user_id UUID NOT NULL,
            address JSONB NOT NULL,
            amount NUMERIC(12,2) NOT NULL,
            payment_method TEXT NOT NULL,
            payment BOOLEAN NOT NULL DEFAULT FALSE,
            status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id SERIAL PRIMARY KEY,
            order_id UUID NOT NULL REFERENCES orders(id),
            product_id UUID NOT NULL,
            name TEXT NOT NULL,
            image TEXT NOT NULL DEFAULT '',
            size TEXT NOT NULL,
            quantity BIGINT NOT NULL,
            price NUMERIC(12,2) NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS payments (
            id UUID PRIMARY KEY,
            order_id UUID UNIQUE NOT NULL REFERENCES orders(id),
            user_id UUID NOT NULL,
            gateway_order_id TEXT NOT NULL,
            gateway_payment_id TEXT UNIQUE NOT NULL,
            gateway_signature TEXT NOT NULL,
            amount_paid NUMERIC(12,2) NOT NULL,
            currency TEXT NOT NULL,
            status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS cart_items (
            user_id UUID NOT NULL,
            product_id UUID NOT NULL,
            size TEXT NOT NULL,
            quantity BIGINT NOT NULL,
            PRIMARY KEY (user_id, product_id, size)
        )`,
	}
	for _, q := range stmts {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

func (s *PostgresStorage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func (s *PostgresStorage) CreateOrder(ctx context.Context, o *order.Order) error {
	addr, err := json.Marshal(o.Address)
	if err != nil {
		return fmt.Errorf("marshal address: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	q := `
        INSERT INTO orders (id, user_id, address, amount, payment_method, payment, status, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	if _, err := tx.ExecContext(ctx, q,
		o.ID, o.UserID, addr, o.Amount, o.PaymentMethod, o.Payment, o.Status, o.CreatedAt,
	); err != nil {
		return err
	}

	const qi = `
        INSERT INTO order_items (order_id, product_id, name, image, size, quantity, price)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`
	for _, it := range o.Items {
		if _, err := tx.ExecContext(ctx, qi,
			o.ID, it.ProductID, it.Name, it.Image, it.Size, it.Quantity, it.Price,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *PostgresStorage) FindOrderByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	const q = `
        SELECT id, user_id, address, amount, payment_method, payment, status, created_at
        FROM orders WHERE id = $1`
	var o order.Order
	var addr []byte
	err := s.db.QueryRowContext(ctx, q, id).
		Scan(&o.ID, &o.UserID, &addr, &o.Amount, &o.PaymentMethod, &o.Payment, &o.Status, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(addr, &o.Address); err != nil {
		return nil, fmt.Errorf("unmarshal address: %w", err)
	}
	items, err := s.loadItems(ctx, []uuid.UUID{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return &o, nil
}

func (s *PostgresStorage) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]order.Order, error) {
	const q = `
        SELECT id, user_id, address, amount, payment_method, payment, status, created_at
        FROM orders
        WHERE user_id = $1
        ORDER BY created_at DESC`
	rows, err := s.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return s.collectOrders(ctx, rows)
}

func (s *PostgresStorage) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status order.OrderStatus) error {
	res, err := s.db.ExecContext(ctx, `UPDATE orders SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// filterClause builds the WHERE clause shared by CountOrders and ListOrders.
func filterClause(f order.Filter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.UserID != nil {
		add("user_id = $%d", *f.UserID)
	}
	if f.Status != nil {
		add("status = $%d", *f.Status)
	}
	if f.From != nil {
		add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("created_at <= $%d", *f.To)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (s *PostgresStorage) CountOrders(ctx context.Context, f order.Filter) (int64, error) {
	where, args := filterClause(f)
	var total int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total)
	return total, err
}

func (s *PostgresStorage) ListOrders(ctx context.Context, f order.Filter) ([]order.Order, error) {
	where, args := filterClause(f)
	q := `
        SELECT id, user_id, address, amount, payment_method, payment, status, created_at
        FROM orders` + where + fmt.Sprintf(`
        ORDER BY created_at DESC
        LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, f.Limit, (f.Page-1)*f.Limit)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return s.collectOrders(ctx, rows)
}

func (s *PostgresStorage) collectOrders(ctx context.Context, rows *sql.Rows) ([]order.Order, error) {
	var out []order.Order
	var ids []uuid.UUID
	for rows.Next() {
		var o order.Order
		var addr []byte
		if err := rows.Scan(&o.ID, &o.UserID, &addr, &o.Amount, &o.PaymentMethod, &o.Payment, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(addr, &o.Address); err != nil {
			return nil, fmt.Errorf("unmarshal address: %w", err)
		}
		out = append(out, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	items, err := s.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Items = items[out[i].ID]
	}
	return out, nil
}

// loadItems fetches line items for a set of orders in one query instead of
// a per-order round trip.
func (s *PostgresStorage) loadItems(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]order.LineItem, error) {
	out := make(map[uuid.UUID][]order.LineItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return out, nil
	}
	ph := make([]string, len(orderIDs))
	args := make([]any, len(orderIDs))
	for i, id := range orderIDs {
		ph[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	q := `
        SELECT order_id, product_id, name, image, size, quantity, price
        FROM order_items
        WHERE order_id IN (` + strings.Join(ph, ",") + `)
        ORDER BY id`
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var oid uuid.UUID
		var it order.LineItem
		if err := rows.Scan(&oid, &it.ProductID, &it.Name, &it.Image, &it.Size, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		out[oid] = append(out[oid], it)
	}
	return out, rows.Err()
}

// RecordPayment inserts the audit record and confirms the order inside one
// transaction. The payment insert happens first so a unique-constraint hit
// leaves the order untouched.
func (s *PostgresStorage) RecordPayment(ctx context.Context, p *payment.Payment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const q = `
        INSERT INTO payments (id, order_id, user_id, gateway_order_id, gateway_payment_id,
            gateway_signature, amount_paid, currency, status, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
	if _, err := tx.ExecContext(ctx, q,
		p.ID, p.OrderID, p.UserID, p.GatewayOrderID, p.GatewayPaymentID,
		p.GatewaySignature, p.AmountPaid, p.Currency, p.Status, p.CreatedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return storage.ErrDuplicatePayment
		}
		return err
	}

	res, err := tx.ExecContext(ctx, `UPDATE orders SET payment=TRUE WHERE id=$1`, p.OrderID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}

	return tx.Commit()
}

func (s *PostgresStorage) FindPaymentByOrderID(ctx context.Context, orderID uuid.UUID) (*payment.Payment, error) {
	const q = `
        SELECT id, order_id, user_id, gateway_order_id, gateway_payment_id,
            gateway_signature, amount_paid, currency, status, created_at
        FROM payments WHERE order_id = $1`
	var p payment.Payment
	err := s.db.QueryRowContext(ctx, q, orderID).
		Scan(&p.ID, &p.OrderID, &p.UserID, &p.GatewayOrderID, &p.GatewayPaymentID,
			&p.GatewaySignature, &p.AmountPaid, &p.Currency, &p.Status, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PostgresStorage) FindProductsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]product.Product, error) {
	out := make(map[uuid.UUID]product.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	ph := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		ph[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	q := `
        SELECT id, name, description, category, sub_category, image, price, sizes
        FROM products
        WHERE id IN (` + strings.Join(ph, ",") + `)`
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p product.Product
		var sizes []byte
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.SubCategory, &p.Image, &p.Price, &sizes); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(sizes, &p.Sizes); err != nil {
			return nil, fmt.Errorf("unmarshal sizes: %w", err)
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

func (s *PostgresStorage) FindUsersByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]user.User, error) {
	out := make(map[uuid.UUID]user.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	ph := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		ph[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	q := `SELECT id, name, email FROM users WHERE id IN (` + strings.Join(ph, ",") + `)`
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var u user.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, err
		}
		out[u.ID] = u
	}
	return out, rows.Err()
}

func (s *PostgresStorage) GetCart(ctx context.Context, userID uuid.UUID) (user.Cart, error) {
	const q = `SELECT product_id, size, quantity FROM cart_items WHERE user_id = $1`
	rows, err := s.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cart := user.Cart{}
	for rows.Next() {
		var productID uuid.UUID
		var size string
		var qty int64
		if err := rows.Scan(&productID, &size, &qty); err != nil {
			return nil, err
		}
		key := productID.String()
		if cart[key] == nil {
			cart[key] = map[string]int64{}
		}
		cart[key][size] = qty
	}
	return cart, rows.Err()
}

func (s *PostgresStorage) AddCartItem(ctx context.Context, userID, productID uuid.UUID, size string) error {
	const q = `
        INSERT INTO cart_items (user_id, product_id, size, quantity)
        VALUES ($1,$2,$3,1)
        ON CONFLICT (user_id, product_id, size)
        DO UPDATE SET quantity = cart_items.quantity + 1`
	_, err := s.db.ExecContext(ctx, q, userID, productID, size)
	return err
}

func (s *PostgresStorage) SetCartQuantity(ctx context.Context, userID, productID uuid.UUID, size string, quantity int64) error {
	if quantity <= 0 {
		_, err := s.db.ExecContext(ctx,
			`DELETE FROM cart_items WHERE user_id=$1 AND product_id=$2 AND size=$3`,
			userID, productID, size)
		return err
	}
	const q = `
        INSERT INTO cart_items (user_id, product_id, size, quantity)
        VALUES ($1,$2,$3,$4)
        ON CONFLICT (user_id, product_id, size)
        DO UPDATE SET quantity = EXCLUDED.quantity`
	_, err := s.db.ExecContext(ctx, q, userID, productID, size, quantity)
	return err
}

func (s *PostgresStorage) ClearCart(ctx context.Context, userID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id=$1`, userID)
	return err
}
