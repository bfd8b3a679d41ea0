package repository

import (
	"context"
	"fmt"

	"biteclub-backend/internal/domains/menu/model"
	"biteclub-backend/internal/infrastructure/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================
type postgresMenuRepository struct {
	db *database.PostgresDB
}

func NewPostgresMenuRepository(db *database.PostgresDB) MenuRepository {
	return &postgresMenuRepository{db: db}
}

func (r *postgresMenuRepository) CreateItem(ctx context.Context, item *model.MenuItem) error {
	query := `
		INSERT INTO menu_items (id, restaurant_id, name, description, price, available)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := r.db.Querier(ctx).QueryRow(ctx, query,
		item.ID,
		item.RestaurantID,
		item.Name,
		item.Description,
		item.Price,
		item.Available,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}

	return r.insertModifierGroups(ctx, item)
}

func (r *postgresMenuRepository) ReplaceItem(ctx context.Context, item *model.MenuItem) error {
	query := `
		UPDATE menu_items
		SET name = $2, description = $3, price = $4, available = $5, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Querier(ctx).Exec(ctx, query,
		item.ID,
		item.Name,
		item.Description,
		item.Price,
		item.Available,
	)
	if err != nil {
		return fmt.Errorf("failed to update menu item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrItemNotFound
	}

	// Modifiers cascade from groups.
	if _, err := r.db.Querier(ctx).Exec(ctx, `DELETE FROM modifier_groups WHERE menu_item_id = $1`, item.ID); err != nil {
		return fmt.Errorf("failed to clear modifier groups: %w", err)
	}

	return r.insertModifierGroups(ctx, item)
}

func (r *postgresMenuRepository) insertModifierGroups(ctx context.Context, item *model.MenuItem) error {
	if len(item.ModifierGroups) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for gi := range item.ModifierGroups {
		group := &item.ModifierGroups[gi]
		group.ID = uuid.New()
		group.MenuItemID = item.ID
		batch.Queue(
			`INSERT INTO modifier_groups (id, menu_item_id, name, min_select, max_select) VALUES ($1, $2, $3, $4, $5)`,
			group.ID, group.MenuItemID, group.Name, group.MinSelect, group.MaxSelect,
		)
		for mi := range group.Modifiers {
			mod := &group.Modifiers[mi]
			mod.ID = uuid.New()
			mod.GroupID = group.ID
			batch.Queue(
				`INSERT INTO modifiers (id, group_id, name, price, available) VALUES ($1, $2, $3, $4, $5)`,
				mod.ID, mod.GroupID, mod.Name, mod.Price, mod.Available,
			)
		}
	}

	results := r.db.Querier(ctx).SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert modifier groups: %w", err)
		}
	}

	return nil
}

func (r *postgresMenuRepository) GetItem(ctx context.Context, itemID uuid.UUID) (*model.MenuItem, error) {
	items, err := r.loadItems(ctx, `WHERE mi.id = $1`, itemID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, model.ErrItemNotFound
	}
	return &items[0], nil
}

func (r *postgresMenuRepository) GetItemsForCheckout(ctx context.Context, restaurantID uuid.UUID, itemIDs []uuid.UUID) (map[uuid.UUID]*model.MenuItem, error) {
	items, err := r.loadItems(ctx, `WHERE mi.restaurant_id = $1 AND mi.id = ANY($2)`, restaurantID, itemIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*model.MenuItem, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}
	return byID, nil
}

func (r *postgresMenuRepository) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]model.MenuItem, error) {
	return r.loadItems(ctx, `WHERE mi.restaurant_id = $1 ORDER BY mi.name ASC`, restaurantID)
}

// loadItems fetches items matching the filter, then their modifier
// groups and modifiers in two follow-up queries keyed by item IDs.
func (r *postgresMenuRepository) loadItems(ctx context.Context, filter string, args ...interface{}) ([]model.MenuItem, error) {
	query := `
		SELECT mi.id, mi.restaurant_id, mi.name, mi.description, mi.price, mi.available, mi.created_at, mi.updated_at
		FROM menu_items mi ` + filter

	rows, err := r.db.Querier(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	var items []model.MenuItem
	itemIDs := []uuid.UUID{}
	for rows.Next() {
		var item model.MenuItem
		err := rows.Scan(
			&item.ID,
			&item.RestaurantID,
			&item.Name,
			&item.Description,
			&item.Price,
			&item.Available,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, item)
		itemIDs = append(itemIDs, item.ID)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating menu items: %w", rows.Err())
	}
	rows.Close()

	if len(items) == 0 {
		return items, nil
	}

	groups, err := r.loadGroups(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].ModifierGroups = groups[items[i].ID]
	}

	return items, nil
}

func (r *postgresMenuRepository) loadGroups(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID][]model.ModifierGroup, error) {
	groupQuery := `
		SELECT id, menu_item_id, name, min_select, max_select
		FROM modifier_groups
		WHERE menu_item_id = ANY($1)
		ORDER BY name ASC
	`

	rows, err := r.db.Querier(ctx).Query(ctx, groupQuery, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query modifier groups: %w", err)
	}
	defer rows.Close()

	byItem := make(map[uuid.UUID][]model.ModifierGroup)
	groupIndex := make(map[uuid.UUID]*model.ModifierGroup)
	groupIDs := []uuid.UUID{}
	for rows.Next() {
		var group model.ModifierGroup
		if err := rows.Scan(&group.ID, &group.MenuItemID, &group.Name, &group.MinSelect, &group.MaxSelect); err != nil {
			return nil, fmt.Errorf("failed to scan modifier group: %w", err)
		}
		byItem[group.MenuItemID] = append(byItem[group.MenuItemID], group)
		groupIDs = append(groupIDs, group.ID)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating modifier groups: %w", rows.Err())
	}
	rows.Close()

	for itemID := range byItem {
		groups := byItem[itemID]
		for i := range groups {
			groupIndex[groups[i].ID] = &groups[i]
		}
	}

	if len(groupIDs) == 0 {
		return byItem, nil
	}

	modQuery := `
		SELECT id, group_id, name, price, available
		FROM modifiers
		WHERE group_id = ANY($1)
		ORDER BY name ASC
	`

	modRows, err := r.db.Querier(ctx).Query(ctx, modQuery, groupIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query modifiers: %w", err)
	}
	defer modRows.Close()

	for modRows.Next() {
		var mod model.Modifier
		if err := modRows.Scan(&mod.ID, &mod.GroupID, &mod.Name, &mod.Price, &mod.Available); err != nil {
			return nil, fmt.Errorf("failed to scan modifier: %w", err)
		}
		if group, ok := groupIndex[mod.GroupID]; ok {
			group.Modifiers = append(group.Modifiers, mod)
		}
	}
	if modRows.Err() != nil {
		return nil, fmt.Errorf("error iterating modifiers: %w", modRows.Err())
	}

	return byItem, nil
}

func (r *postgresMenuRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	result, err := r.db.Querier(ctx).Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrItemNotFound
	}
	return nil
}

func (r *postgresMenuRepository) SetAvailability(ctx context.Context, itemID uuid.UUID, available bool) error {
	query := `UPDATE menu_items SET available = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Querier(ctx).Exec(ctx, query, itemID, available)
	if err != nil {
		return fmt.Errorf("failed to update availability: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrItemNotFound
	}
	return nil
}
