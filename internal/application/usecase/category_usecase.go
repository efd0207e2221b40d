package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tijara-app/tijara-api/internal/application/dto"
	"github.com/tijara-app/tijara-api/internal/domain"
	"github.com/tijara-app/tijara-api/internal/domain/entity"
	"github.com/tijara-app/tijara-api/internal/domain/repository"
)

// CategoryUseCase covers the category tree. At most one category is default.
type CategoryUseCase struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
}

func NewCategoryUseCase(categories repository.CategoryRepository, products repository.ProductRepository) *CategoryUseCase {
	return &CategoryUseCase{categories: categories, products: products}
}

func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.ParentID != "" {
		if _, err := uc.categories.GetByID(ctx, in.ParentID); err != nil {
			return nil, fmt.Errorf("parent: %w", err)
		}
	}
	if in.IsDefault {
		if err := uc.categories.ClearDefault(ctx); err != nil {
			return nil, err
		}
	}
	now := time.Now().UTC()
	category := &entity.Category{
		ID:        uuid.New().String(),
		ParentID:  in.ParentID,
		Name:      in.Name,
		IsDefault: in.IsDefault,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return dto.ToCategoryResponse(category), nil
}

func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *dto.ToCategoryResponse(c))
	}
	return out, nil
}

func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.ParentID != nil {
		if *in.ParentID == id {
			return nil, fmt.Errorf("category cannot be its own parent: %w", domain.ErrInvalidInput)
		}
		if *in.ParentID != "" {
			if _, err := uc.categories.GetByID(ctx, *in.ParentID); err != nil {
				return nil, fmt.Errorf("parent: %w", err)
			}
		}
		category.ParentID = *in.ParentID
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		category.Name = name
	}
	if in.IsDefault != nil && *in.IsDefault != category.IsDefault {
		if *in.IsDefault {
			if err := uc.categories.ClearDefault(ctx); err != nil {
				return nil, err
			}
		}
		category.IsDefault = *in.IsDefault
	}
	category.UpdatedAt = time.Now().UTC()
	if err := uc.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return dto.ToCategoryResponse(category), nil
}

// Delete refuses to remove a category that still has products or child
// categories.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.categories.GetByID(ctx, id); err != nil {
		return err
	}
	count, err := uc.products.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("category has %d products: %w", count, domain.ErrConflict)
	}
	children, err := uc.categories.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return fmt.Errorf("category has %d children: %w", children, domain.ErrConflict)
	}
	return uc.categories.Delete(ctx, id)
}
