package dto

import (
	"time"

	"github.com/tijara-app/tijara-api/internal/domain/entity"
)

// CreateCategoryRequest is the input for creating a category.
type CreateCategoryRequest struct {
	ParentID  string `json:"parentId"`
	Name      string `json:"name" validate:"required,min=1,max=200"`
	IsDefault bool   `json:"isDefault"`
}

// UpdateCategoryRequest is the input for a partial category update.
type UpdateCategoryRequest struct {
	ParentID  *string `json:"parentId"`
	Name      *string `json:"name" validate:"omitempty,min=1,max=200"`
	IsDefault *bool   `json:"isDefault"`
}

// CategoryResponse is the category output shape.
type CategoryResponse struct {
	ID        string    `json:"id"`
	ParentID  string    `json:"parentId,omitempty"`
	Name      string    `json:"name"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToCategoryResponse(c *entity.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:        c.ID,
		ParentID:  c.ParentID,
		Name:      c.Name,
		IsDefault: c.IsDefault,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
