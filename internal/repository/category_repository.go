package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// CategoryRepository serves the ticket classification lookups.
type CategoryRepository interface {
	ListCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error)
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	CreateCategory(ctx context.Context, category *domain.Category) error
	UpdateCategory(ctx context.Context, category *domain.Category) error

	ListInternalSystems(ctx context.Context, activeOnly bool) ([]domain.InternalSystem, error)
	GetInternalSystem(ctx context.Context, id string) (*domain.InternalSystem, error)
	CreateInternalSystem(ctx context.Context, system *domain.InternalSystem) error
	UpdateInternalSystem(ctx context.Context, system *domain.InternalSystem) error
}

type categoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository instantiates repository.
func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &categoryRepository{pool: pool}
}

func (r *categoryRepository) ListCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	query := `SELECT id, name, is_active FROM categories`
	if activeOnly {
		query += ` WHERE is_active=TRUE`
	}
	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.IsActive); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *categoryRepository) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	var c domain.Category
	err := r.pool.QueryRow(ctx, `SELECT id, name, is_active FROM categories WHERE id=$1`, id).
		Scan(&c.ID, &c.Name, &c.IsActive)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) CreateCategory(ctx context.Context, category *domain.Category) error {
	const query = `INSERT INTO categories (name, is_active) VALUES ($1,$2) RETURNING id`
	return r.pool.QueryRow(ctx, query, category.Name, category.IsActive).Scan(&category.ID)
}

func (r *categoryRepository) UpdateCategory(ctx context.Context, category *domain.Category) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE categories SET name=$1, is_active=$2 WHERE id=$3`,
		category.Name, category.IsActive, category.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepository) ListInternalSystems(ctx context.Context, activeOnly bool) ([]domain.InternalSystem, error) {
	query := `SELECT id, name, is_active FROM internal_systems`
	if activeOnly {
		query += ` WHERE is_active=TRUE`
	}
	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.InternalSystem
	for rows.Next() {
		var s domain.InternalSystem
		if err := rows.Scan(&s.ID, &s.Name, &s.IsActive); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func (r *categoryRepository) GetInternalSystem(ctx context.Context, id string) (*domain.InternalSystem, error) {
	var s domain.InternalSystem
	err := r.pool.QueryRow(ctx, `SELECT id, name, is_active FROM internal_systems WHERE id=$1`, id).
		Scan(&s.ID, &s.Name, &s.IsActive)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *categoryRepository) CreateInternalSystem(ctx context.Context, system *domain.InternalSystem) error {
	const query = `INSERT INTO internal_systems (name, is_active) VALUES ($1,$2) RETURNING id`
	return r.pool.QueryRow(ctx, query, system.Name, system.IsActive).Scan(&system.ID)
}

func (r *categoryRepository) UpdateInternalSystem(ctx context.Context, system *domain.InternalSystem) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE internal_systems SET name=$1, is_active=$2 WHERE id=$3`,
		system.Name, system.IsActive, system.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
