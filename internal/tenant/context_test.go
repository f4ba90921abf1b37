package tenant

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rogenecarl/inventory-pos/internal/apperr"
)

func TestRequireStore(t *testing.T) {
	storeID := uint(7)

	t.Run("returns the store for a scoped context", func(t *testing.T) {
		tc := Context{UserID: 1, StoreID: &storeID, Role: "owner"}

		got, err := tc.RequireStore()
		assert.NoError(t, err)
		assert.Equal(t, storeID, got)
	})

	t.Run("denies a context without a store", func(t *testing.T) {
		tc := Context{UserID: 1}

		_, err := tc.RequireStore()
		assert.ErrorIs(t, err, apperr.ErrNoStoreContext)
	})
}

func TestOwns(t *testing.T) {
	storeID := uint(7)

	testCases := []struct {
		name    string
		ctx     Context
		storeID uint
		want    bool
	}{
		{"own store", Context{StoreID: &storeID}, 7, true},
		{"foreign store", Context{StoreID: &storeID}, 8, false},
		{"no store context", Context{}, 7, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.ctx.Owns(tc.storeID))
		})
	}
}
