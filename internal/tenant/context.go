// Package tenant implements the scope guard: every repository operation
// on store-owned data takes an explicit Context and derives the owning
// store from it. Callers never pass store IDs themselves, and a context
// without a store is rejected rather than treated as unscoped.
package tenant

import (
	"gorm.io/gorm"

	"github.com/rogenecarl/inventory-pos/internal/apperr"
)

// Context identifies the acting user for a single request. It is built
// once by the auth middleware from validated JWT claims and passed down
// explicitly; nothing in the data layer reads ambient session state.
type Context struct {
	UserID  uint
	StoreID *uint
	Role    string
}

// RequireStore returns the acting user's store ID, or ErrNoStoreContext
// when the identity carries none.
func (c Context) RequireStore() (uint, error) {
	if c.StoreID == nil {
		return 0, apperr.ErrNoStoreContext
	}
	return *c.StoreID, nil
}

// Owns reports whether the given store is the context's own store.
func (c Context) Owns(storeID uint) bool {
	return c.StoreID != nil && *c.StoreID == storeID
}

// Scoped restricts a query to rows owned by the context's store. It is
// the single place the store_id predicate is attached, so a repository
// built on it cannot forget to scope.
func Scoped(db *gorm.DB, tc Context) (*gorm.DB, error) {
	storeID, err := tc.RequireStore()
	if err != nil {
		return nil, err
	}
	return db.Where("store_id = ?", storeID), nil
}
