package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/quickbite/order-service/internal/entities"
	"github.com/quickbite/order-service/pkg/trm"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type postgresRepo struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

func NewPostgresRepo(db *sqlx.DB) *postgresRepo {
	return &postgresRepo{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *postgresRepo) SaveOrder(ctx context.Context, o entities.Order) error {
	query, args := r.qb.Insert("orders").
		Columns("id", "owner_id", "status", "created_at").
		Values(o.ID, o.OwnerID, string(o.Status), o.CreatedAt).
		MustSql()

	_, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

func (r *postgresRepo) SaveItems(ctx context.Context, orderID string, items []entities.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	q := r.qb.Insert("order_items").
		Columns("order_id", "pos", "name", "quantity", "unit_price")

	for i, it := range items {
		q = q.Values(orderID, i, it.Name, it.Quantity, it.UnitPrice)
	}

	query, args := q.MustSql()
	_, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to save items: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetOrderByID(ctx context.Context, orderID string) (entities.Order, error) {
	query, args := r.qb.Select("id", "owner_id", "status", "created_at").
		From("orders").
		Where(sq.Eq{"id": orderID}).
		MustSql()

	var order Order
	err := r.getContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	query, args = r.qb.Select("order_id", "pos", "name", "quantity", "unit_price").
		From("order_items").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("pos ASC").
		MustSql()

	var items []OrderItem
	if err := r.selectContext(ctx, &items, query, args...); err != nil {
		return entities.Order{}, fmt.Errorf("failed to get items: %w", err)
	}

	return OrderToEntity(order, items), nil
}

func (r *postgresRepo) ListOrdersByOwner(ctx context.Context, ownerID string) ([]entities.Order, error) {
	query, args := r.qb.Select("id", "owner_id", "status", "created_at").
		From("orders").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC").
		MustSql()

	var orders []Order
	if err := r.selectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select orders: %w", err)
	}

	if len(orders) == 0 {
		return []entities.Order{}, nil
	}

	ids := make([]string, len(orders))
	for i, order := range orders {
		ids[i] = order.ID
	}

	query, args = r.qb.Select("order_id", "pos", "name", "quantity", "unit_price").
		From("order_items").
		Where(sq.Eq{"order_id": ids}).
		OrderBy("pos ASC").
		MustSql()

	var items []OrderItem
	if err := r.selectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select items: %w", err)
	}
	itemsMap := make(map[string][]OrderItem, len(ids))
	for _, item := range items {
		itemsMap[item.OrderID] = append(itemsMap[item.OrderID], item)
	}

	result := make([]entities.Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, OrderToEntity(order, itemsMap[order.ID]))
	}
	return result, nil
}

// UpdateStatus advances the status only if the order is still in the expected
// state. Returns false when the guarded write matched no row.
func (r *postgresRepo) UpdateStatus(ctx context.Context, orderID string, from, to entities.Status) (bool, error) {
	query, args := r.qb.Update("orders").
		Set("status", string(to)).
		Where(sq.Eq{"id": orderID, "status": string(from)}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected == 1, nil
}

// DeleteIfCancellable removes the order only while every cancellation
// precondition still holds, in one statement, so a concurrent status advance
// cannot interleave with a successful cancel.
func (r *postgresRepo) DeleteIfCancellable(ctx context.Context, orderID, ownerID string, cutoff time.Time) (bool, error) {
	query, args := r.qb.Delete("orders").
		Where(sq.Eq{"id": orderID, "owner_id": ownerID, "status": string(entities.StatusPlaced)}).
		Where(sq.GtOrEq{"created_at": cutoff}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to delete order: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected == 1, nil
}

// MarkCancelled is the retention-policy variant of DeleteIfCancellable: same
// guard, but the record stays with a terminal cancelled status.
func (r *postgresRepo) MarkCancelled(ctx context.Context, orderID, ownerID string, cutoff time.Time) (bool, error) {
	query, args := r.qb.Update("orders").
		Set("status", string(entities.StatusCancelled)).
		Where(sq.Eq{"id": orderID, "owner_id": ownerID, "status": string(entities.StatusPlaced)}).
		Where(sq.GtOrEq{"created_at": cutoff}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to mark order cancelled: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected == 1, nil
}

func (r *postgresRepo) execContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.ExecContext(ctx, query, args...)
	}
	return r.db.ExecContext(ctx, query, args...)
}

func (r *postgresRepo) getContext(ctx context.Context, dest any, query string, args ...any) error {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.GetContext(ctx, dest, query, args...)
	}
	return r.db.GetContext(ctx, dest, query, args...)
}

func (r *postgresRepo) selectContext(ctx context.Context, dest any, query string, args ...any) error {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.SelectContext(ctx, dest, query, args...)
	}
	return r.db.SelectContext(ctx, dest, query, args...)
}
