package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tijara-app/tijara-api/internal/domain"
	"github.com/tijara-app/tijara-api/internal/domain/entity"
	"github.com/tijara-app/tijara-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implements CategoryRepository over PostgreSQL (pool or tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository builds the adapter. Pass a pool or a tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	var parent *string
	if err := row.Scan(&c.ID, &parent, &c.Name, &c.IsDefault, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.ParentID = derefOrEmpty(parent)
	return &c, nil
}

// Create persists a new category. ParentID is stored as NULL for roots so the
// self-referencing foreign key holds.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	query := `
		INSERT INTO categories (id, parent_id, name, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		c.ID, nullIfEmpty(c.ParentID), c.Name, c.IsDefault, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID returns a category by ID, or nil when missing.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	query := `SELECT id, parent_id, name, is_default, created_at, updated_at FROM categories WHERE id = $1`
	c, err := scanCategory(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// List returns all categories ordered by name; callers assemble the tree.
func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	query := `SELECT id, parent_id, name, is_default, created_at, updated_at FROM categories ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update updates a category.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	query := `
		UPDATE categories SET parent_id = $2, name = $3, is_default = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		c.ID, nullIfEmpty(c.ParentID), c.Name, c.IsDefault, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete removes a category. The products FK is RESTRICT, so a referenced
// category fails with ErrConflict instead of orphaning products.
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// ClearDefault unsets the default flag everywhere.
func (r *CategoryRepo) ClearDefault(ctx context.Context) error {
	_, err := r.q.Exec(ctx, `UPDATE categories SET is_default = false WHERE is_default`)
	if err != nil {
		return fmt.Errorf("clear default category: %w", err)
	}
	return nil
}

// GetDefault returns the flagged default category, or nil when none is set.
func (r *CategoryRepo) GetDefault(ctx context.Context) (*entity.Category, error) {
	query := `SELECT id, parent_id, name, is_default, created_at, updated_at FROM categories WHERE is_default LIMIT 1`
	c, err := scanCategory(r.q.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get default category: %w", err)
	}
	return c, nil
}

// CountChildren counts direct children of a category.
func (r *CategoryRepo) CountChildren(ctx context.Context, parentID string) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM categories WHERE parent_id = $1`, parentID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count child categories: %w", err)
	}
	return n, nil
}
