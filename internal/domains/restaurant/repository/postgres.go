package repository

import (
	"context"
	"errors"
	"fmt"

	promomodel "biteclub-backend/internal/domains/promotion/model"
	"biteclub-backend/internal/domains/restaurant/model"
	"biteclub-backend/internal/infrastructure/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================
type postgresRestaurantRepository struct {
	db *database.PostgresDB
}

func NewPostgresRestaurantRepository(db *database.PostgresDB) RestaurantRepository {
	return &postgresRestaurantRepository{db: db}
}

const restaurantColumns = `
	id, email, password_hash, name, school, phone, open_hours, active,
	first_time_enabled, first_time_percent,
	loyalty_enabled, loyalty_spend_threshold, loyalty_reward_amount,
	call_phone_number, call_max_retries, call_timeout_seconds,
	created_at, updated_at
`

func scanRestaurant(row pgx.Row) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	err := row.Scan(
		&restaurant.ID,
		&restaurant.Email,
		&restaurant.PasswordHash,
		&restaurant.Name,
		&restaurant.School,
		&restaurant.Phone,
		&restaurant.OpenHours,
		&restaurant.Active,
		&restaurant.Promotion.FirstTimeEnabled,
		&restaurant.Promotion.FirstTimePercent,
		&restaurant.Promotion.LoyaltyEnabled,
		&restaurant.Promotion.LoyaltySpendThreshold,
		&restaurant.Promotion.LoyaltyRewardAmount,
		&restaurant.CallDispatch.PhoneNumber,
		&restaurant.CallDispatch.MaxRetries,
		&restaurant.CallDispatch.TimeoutSeconds,
		&restaurant.CreatedAt,
		&restaurant.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *postgresRestaurantRepository) Create(ctx context.Context, restaurant *model.Restaurant) error {
	query := `
		INSERT INTO restaurants (
			id, email, password_hash, name, school, phone, open_hours, active,
			first_time_enabled, first_time_percent,
			loyalty_enabled, loyalty_spend_threshold, loyalty_reward_amount,
			call_phone_number, call_max_retries, call_timeout_seconds
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING created_at, updated_at
	`

	err := r.db.Querier(ctx).QueryRow(ctx, query,
		restaurant.ID,
		restaurant.Email,
		restaurant.PasswordHash,
		restaurant.Name,
		restaurant.School,
		restaurant.Phone,
		restaurant.OpenHours,
		restaurant.Active,
		restaurant.Promotion.FirstTimeEnabled,
		restaurant.Promotion.FirstTimePercent,
		restaurant.Promotion.LoyaltyEnabled,
		restaurant.Promotion.LoyaltySpendThreshold,
		restaurant.Promotion.LoyaltyRewardAmount,
		restaurant.CallDispatch.PhoneNumber,
		restaurant.CallDispatch.MaxRetries,
		restaurant.CallDispatch.TimeoutSeconds,
	).Scan(&restaurant.CreatedAt, &restaurant.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to create restaurant: %w", err)
	}

	return nil
}

func (r *postgresRestaurantRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = $1`

	restaurant, err := scanRestaurant(r.db.Querier(ctx).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("failed to get restaurant by id: %w", err)
	}

	return restaurant, nil
}

func (r *postgresRestaurantRepository) GetByEmail(ctx context.Context, email string) (*model.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE email = $1`

	restaurant, err := scanRestaurant(r.db.Querier(ctx).QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("failed to get restaurant by email: %w", err)
	}

	return restaurant, nil
}

func (r *postgresRestaurantRepository) List(ctx context.Context, school string, activeOnly bool, page, limit int) ([]model.Restaurant, int, error) {
	offset := (page - 1) * limit

	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM restaurants WHERE 1=1`
	args := []interface{}{}
	countArgs := []interface{}{}

	if school != "" {
		query += fmt.Sprintf(` AND school = $%d`, len(args)+1)
		countQuery += fmt.Sprintf(` AND school = $%d`, len(countArgs)+1)
		args = append(args, school)
		countArgs = append(countArgs, school)
	}
	if activeOnly {
		query += ` AND active = TRUE`
		countQuery += ` AND active = TRUE`
	}

	query += fmt.Sprintf(` ORDER BY name ASC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := r.db.Querier(ctx).QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count restaurants: %w", err)
	}

	rows, err := r.db.Querier(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list restaurants: %w", err)
	}
	defer rows.Close()

	var restaurants []model.Restaurant
	for rows.Next() {
		restaurant, err := scanRestaurant(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan restaurant: %w", err)
		}
		restaurants = append(restaurants, *restaurant)
	}

	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("error iterating restaurants: %w", rows.Err())
	}

	return restaurants, total, nil
}

func (r *postgresRestaurantRepository) UpdateProfile(ctx context.Context, restaurant *model.Restaurant) error {
	query := `
		UPDATE restaurants
		SET name = $2, phone = $3, open_hours = $4, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Querier(ctx).Exec(ctx, query,
		restaurant.ID,
		restaurant.Name,
		restaurant.Phone,
		restaurant.OpenHours,
	)
	if err != nil {
		return fmt.Errorf("failed to update restaurant profile: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrRestaurantNotFound
	}

	return nil
}

func (r *postgresRestaurantRepository) UpdatePromotion(ctx context.Context, id uuid.UUID, cfg promomodel.Config) error {
	query := `
		UPDATE restaurants
		SET first_time_enabled = $2, first_time_percent = $3,
		    loyalty_enabled = $4, loyalty_spend_threshold = $5, loyalty_reward_amount = $6,
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Querier(ctx).Exec(ctx, query,
		id,
		cfg.FirstTimeEnabled,
		cfg.FirstTimePercent,
		cfg.LoyaltyEnabled,
		cfg.LoyaltySpendThreshold,
		cfg.LoyaltyRewardAmount,
	)
	if err != nil {
		return fmt.Errorf("failed to update promotion config: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrRestaurantNotFound
	}

	return nil
}

func (r *postgresRestaurantRepository) UpdateCallDispatch(ctx context.Context, id uuid.UUID, cfg model.CallDispatchConfig) error {
	query := `
		UPDATE restaurants
		SET call_phone_number = $2, call_max_retries = $3, call_timeout_seconds = $4,
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Querier(ctx).Exec(ctx, query,
		id,
		cfg.PhoneNumber,
		cfg.MaxRetries,
		cfg.TimeoutSeconds,
	)
	if err != nil {
		return fmt.Errorf("failed to update call dispatch config: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrRestaurantNotFound
	}

	return nil
}

func (r *postgresRestaurantRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE restaurants
		SET active = FALSE, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Querier(ctx).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate restaurant: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrRestaurantNotFound
	}

	return nil
}
