package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rogenecarl/inventory-pos/internal/apperr"
	"github.com/rogenecarl/inventory-pos/internal/model"
	"github.com/rogenecarl/inventory-pos/internal/tenant"
)

// --- Mock category store ---

type mockCategoryStore struct {
	categories []model.Category
	created    *model.Category
	listErr    error
	createErr  error
	deleteErr  error
	lastTenant tenant.Context
	lastName   string
}

func (m *mockCategoryStore) List(tc tenant.Context) ([]model.Category, error) {
	m.lastTenant = tc
	return m.categories, m.listErr
}

func (m *mockCategoryStore) Create(tc tenant.Context, name string) (*model.Category, error) {
	m.lastTenant = tc
	m.lastName = name
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.created = &model.Category{ID: 1, StoreID: *tc.StoreID, Name: name}
	return m.created, nil
}

func (m *mockCategoryStore) Update(tc tenant.Context, id uint, name string) (*model.Category, error) {
	m.lastTenant = tc
	return &model.Category{ID: id, StoreID: *tc.StoreID, Name: name}, nil
}

func (m *mockCategoryStore) Delete(tc tenant.Context, id uint) error {
	m.lastTenant = tc
	return m.deleteErr
}

func TestListCategories(t *testing.T) {
	t.Run("returns the store's categories", func(t *testing.T) {
		store := &mockCategoryStore{categories: []model.Category{
			{ID: 1, StoreID: 7, Name: "Drinks"},
			{ID: 2, StoreID: 7, Name: "Snacks"},
		}}
		h := NewCategoryHandler(store)

		c, rec := newTestContext(http.MethodGet, "/categories", "")
		withTenant(c, 7)

		assert.NoError(t, h.ListCategories(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp []model.Category
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Len(t, resp, 2)
		assert.Equal(t, "Drinks", resp[0].Name)
		assert.Equal(t, uint(7), *store.lastTenant.StoreID)
	})

	t.Run("rejects a request without tenant context", func(t *testing.T) {
		h := NewCategoryHandler(&mockCategoryStore{})

		c, rec := newTestContext(http.MethodGet, "/categories", "")

		assert.NoError(t, h.ListCategories(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("maps store errors to 500", func(t *testing.T) {
		h := NewCategoryHandler(&mockCategoryStore{listErr: errors.New("db down")})

		c, rec := newTestContext(http.MethodGet, "/categories", "")
		withTenant(c, 7)

		assert.NoError(t, h.ListCategories(c))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestCreateCategory(t *testing.T) {
	t.Run("creates within the acting store", func(t *testing.T) {
		store := &mockCategoryStore{}
		h := NewCategoryHandler(store)

		c, rec := newTestContext(http.MethodPost, "/categories", `{"name":"Drinks"}`)
		withTenant(c, 7)

		assert.NoError(t, h.CreateCategory(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "Drinks", store.lastName)
		assert.Equal(t, uint(7), store.created.StoreID)
	})

	t.Run("surfaces field validation errors", func(t *testing.T) {
		store := &mockCategoryStore{
			createErr: apperr.Validation(map[string]string{"name": "Category name is required."}),
		}
		h := NewCategoryHandler(store)

		c, rec := newTestContext(http.MethodPost, "/categories", `{"name":""}`)
		withTenant(c, 7)

		assert.NoError(t, h.CreateCategory(c))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var resp map[string]map[string]string
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Contains(t, resp["errors"], "name")
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("treats a foreign category as absent", func(t *testing.T) {
		store := &mockCategoryStore{deleteErr: apperr.NotFound("category", 9)}
		h := NewCategoryHandler(store)

		c, rec := newTestContext(http.MethodDelete, "/categories/9", "")
		c.SetParamNames("id")
		c.SetParamValues("9")
		withTenant(c, 7)

		assert.NoError(t, h.DeleteCategory(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("deletes an owned category", func(t *testing.T) {
		store := &mockCategoryStore{}
		h := NewCategoryHandler(store)

		c, rec := newTestContext(http.MethodDelete, "/categories/3", "")
		c.SetParamNames("id")
		c.SetParamValues("3")
		withTenant(c, 7)

		assert.NoError(t, h.DeleteCategory(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
