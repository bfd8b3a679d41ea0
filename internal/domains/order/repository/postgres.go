package repository

import (
	"context"
	"errors"
	"fmt"

	"biteclub-backend/internal/domains/order/model"
	promomodel "biteclub-backend/internal/domains/promotion/model"
	"biteclub-backend/internal/infrastructure/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================
type postgresOrderRepository struct {
	db *database.PostgresDB
}

func NewPostgresOrderRepository(db *database.PostgresDB) OrderRepository {
	return &postgresOrderRepository{db: db}
}

func (r *postgresOrderRepository) Create(ctx context.Context, order *model.Order) error {
	query := `
		INSERT INTO orders (
			id, student_id, restaurant_id, total_amount, discount_amount, final_amount,
			promotion_applied, status, special_instructions, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	err := r.db.Querier(ctx).QueryRow(ctx, query,
		order.ID,
		order.StudentID,
		order.RestaurantID,
		order.TotalAmount,
		order.DiscountAmount,
		order.FinalAmount,
		order.PromotionApplied,
		order.Status,
		order.SpecialInstructions,
		order.Version,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

func (r *postgresOrderRepository) CreateItems(ctx context.Context, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(
			`INSERT INTO order_items (id, order_id, menu_item_id, name, quantity, unit_price, modifiers, total_price)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			item.ID, item.OrderID, item.MenuItemID, item.Name, item.Quantity, item.UnitPrice, item.Modifiers, item.TotalPrice,
		)
	}

	results := r.db.Querier(ctx).SendBatch(ctx, batch)
	defer results.Close()

	for range items {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert order items: %w", err)
		}
	}

	return nil
}

func (r *postgresOrderRepository) GetByID(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	query := `
		SELECT id, student_id, restaurant_id, total_amount, discount_amount, final_amount,
		       promotion_applied, status, special_instructions, version, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var order model.Order
	err := r.db.Querier(ctx).QueryRow(ctx, query, orderID).Scan(
		&order.ID,
		&order.StudentID,
		&order.RestaurantID,
		&order.TotalAmount,
		&order.DiscountAmount,
		&order.FinalAmount,
		&order.PromotionApplied,
		&order.Status,
		&order.SpecialInstructions,
		&order.Version,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := r.loadItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

func (r *postgresOrderRepository) loadItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	query := `
		SELECT id, order_id, menu_item_id, name, quantity, unit_price, modifiers, total_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY name ASC
	`

	rows, err := r.db.Querier(ctx).Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.MenuItemID,
			&item.Name,
			&item.Quantity,
			&item.UnitPrice,
			&item.Modifiers,
			&item.TotalPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating order items: %w", rows.Err())
	}

	return items, nil
}

func (r *postgresOrderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, version int, newStatus string) error {
	query := `
		UPDATE orders
		SET status = $3, version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $2
	`

	result, err := r.db.Querier(ctx).Exec(ctx, query, orderID, version, newStatus)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if result.RowsAffected() == 0 {
		var exists bool
		if err := r.db.Querier(ctx).QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)`, orderID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check order: %w", err)
		}
		if !exists {
			return model.ErrOrderNotFound
		}
		return model.ErrVersionMismatch
	}

	return nil
}

func (r *postgresOrderRepository) AddStatusHistory(ctx context.Context, entry *model.StatusHistory) error {
	query := `
		INSERT INTO order_status_history (id, order_id, from_status, to_status, changed_by, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.db.Querier(ctx).QueryRow(ctx, query,
		entry.ID,
		entry.OrderID,
		entry.FromStatus,
		entry.ToStatus,
		entry.ChangedBy,
		entry.Note,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert status history: %w", err)
	}

	return nil
}

func (r *postgresOrderRepository) GetStatusHistory(ctx context.Context, orderID uuid.UUID) ([]model.StatusHistory, error) {
	query := `
		SELECT id, order_id, from_status, to_status, changed_by, note, created_at
		FROM order_status_history
		WHERE order_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.Querier(ctx).Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query status history: %w", err)
	}
	defer rows.Close()

	var entries []model.StatusHistory
	for rows.Next() {
		var entry model.StatusHistory
		err := rows.Scan(
			&entry.ID,
			&entry.OrderID,
			&entry.FromStatus,
			&entry.ToStatus,
			&entry.ChangedBy,
			&entry.Note,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan status history: %w", err)
		}
		entries = append(entries, entry)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating status history: %w", rows.Err())
	}

	return entries, nil
}

func (r *postgresOrderRepository) GetPromotionHistory(ctx context.Context, studentID, restaurantID uuid.UUID) (promomodel.History, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(final_amount), 0)
		FROM orders
		WHERE student_id = $1 AND restaurant_id = $2 AND status = $3
	`

	var history promomodel.History
	err := r.db.Querier(ctx).QueryRow(ctx, query, studentID, restaurantID, model.StatusCompleted).Scan(
		&history.CompletedOrders,
		&history.CompletedSpend,
	)
	if err != nil {
		return promomodel.History{}, fmt.Errorf("failed to get promotion history: %w", err)
	}

	return history, nil
}

func (r *postgresOrderRepository) ListByStudent(ctx context.Context, studentID uuid.UUID, page, limit int) ([]model.Order, int, error) {
	return r.list(ctx, `student_id = $1`, []interface{}{studentID}, page, limit)
}

func (r *postgresOrderRepository) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, status string, page, limit int) ([]model.Order, int, error) {
	filter := `restaurant_id = $1`
	args := []interface{}{restaurantID}
	if status != "" {
		filter += ` AND status = $2`
		args = append(args, status)
	}
	return r.list(ctx, filter, args, page, limit)
}

func (r *postgresOrderRepository) list(ctx context.Context, filter string, args []interface{}, page, limit int) ([]model.Order, int, error) {
	offset := (page - 1) * limit

	var total int
	countQuery := `SELECT COUNT(*) FROM orders WHERE ` + filter
	if err := r.db.Querier(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, student_id, restaurant_id, total_amount, discount_amount, final_amount,
		       promotion_applied, status, special_instructions, version, created_at, updated_at
		FROM orders
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, filter, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Querier(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var order model.Order
		err := rows.Scan(
			&order.ID,
			&order.StudentID,
			&order.RestaurantID,
			&order.TotalAmount,
			&order.DiscountAmount,
			&order.FinalAmount,
			&order.PromotionApplied,
			&order.Status,
			&order.SpecialInstructions,
			&order.Version,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("error iterating orders: %w", rows.Err())
	}

	return orders, total, nil
}
