package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

type mockCategoryStore struct {
	mock.Mock
}

func (m *mockCategoryStore) ListCategories(ctx context.Context) ([]sqlcgen.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]sqlcgen.Category), args.Error(1)
}

func (m *mockCategoryStore) GetCategory(ctx context.Context, id int32) (sqlcgen.Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(sqlcgen.Category), args.Error(1)
}

func TestCategoryRepository_ListAndGet(t *testing.T) {
	store := new(mockCategoryStore)
	repo := NewCategoryRepository(store)

	all := []sqlcgen.Category{{ID: 1, Type: "Science"}, {ID: 2, Type: "Art"}}
	store.On("ListCategories", mock.Anything).Return(all, nil)
	store.On("GetCategory", mock.Anything, int32(2)).Return(all[1], nil)

	got, err := repo.List(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, all, got)

	one, err := repo.Get(context.Background(), 2)
	assert.NoError(t, err)
	assert.Equal(t, "Art", one.Type)
	store.AssertExpectations(t)
}
