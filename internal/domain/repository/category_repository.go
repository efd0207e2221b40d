package repository

import (
	"context"

	"github.com/tijara-app/tijara-api/internal/domain/entity"
)

// CategoryRepository is the persistence port for Category.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id string) error
	// ClearDefault unsets the default flag on every category; called before
	// flagging a new default so at most one row carries it.
	ClearDefault(ctx context.Context) error
	GetDefault(ctx context.Context) (*entity.Category, error)
	// CountChildren counts direct children of a category.
	CountChildren(ctx context.Context, parentID string) (int64, error)
}
