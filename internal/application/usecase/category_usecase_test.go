package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tijara-app/tijara-api/internal/application/dto"
	"github.com/tijara-app/tijara-api/internal/domain"
	"github.com/tijara-app/tijara-api/internal/domain/entity"
)

func newCategoryUseCase(s *memStore) *CategoryUseCase {
	return NewCategoryUseCase(&memCategories{s}, &memProducts{s})
}

func TestCategoryDeleteRefusedWithProducts(t *testing.T) {
	s := newMemStore()
	s.categories["c1"] = &entity.Category{ID: "c1", Name: "مواد غذائية"}
	s.products["p1"] = &entity.Product{ID: "p1", CategoryID: "c1", SKU: "SKU-1", Name: "زيت زيتون"}
	uc := newCategoryUseCase(s)

	err := uc.Delete(context.Background(), "c1")
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, ok := s.categories["c1"]
	assert.True(t, ok, "category must survive the refused delete")
}

func TestCategoryDeleteRefusedWithChildren(t *testing.T) {
	s := newMemStore()
	s.categories["c1"] = &entity.Category{ID: "c1", Name: "مشروبات"}
	s.categories["c2"] = &entity.Category{ID: "c2", ParentID: "c1", Name: "عصائر"}
	uc := newCategoryUseCase(s)

	err := uc.Delete(context.Background(), "c1")
	assert.ErrorIs(t, err, domain.ErrConflict)

	// The child itself has neither products nor children, so it deletes fine.
	require.NoError(t, uc.Delete(context.Background(), "c2"))
	require.NoError(t, uc.Delete(context.Background(), "c1"))
	assert.Empty(t, s.categories)
}

func TestCategoryDeleteUnknown(t *testing.T) {
	s := newMemStore()
	uc := newCategoryUseCase(s)

	err := uc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryCreateDefaultClearsPrevious(t *testing.T) {
	s := newMemStore()
	s.categories["c1"] = &entity.Category{ID: "c1", Name: "عام", IsDefault: true}
	uc := newCategoryUseCase(s)

	resp, err := uc.Create(context.Background(), dto.CreateCategoryRequest{Name: "مواد تنظيف", IsDefault: true})
	require.NoError(t, err)
	assert.True(t, resp.IsDefault)
	assert.False(t, s.categories["c1"].IsDefault, "old default must be cleared")
}
