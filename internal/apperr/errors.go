// Package apperr defines the domain error taxonomy shared by the tenant
// scope guard, the catalog, the inventory ledger and the sale recorder.
// Handlers translate these into HTTP responses; none are fatal.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNoStoreContext is returned when an operation on tenant-owned data is
// attempted with an acting identity that carries no store. Scoping is
// deny-by-default: there is no unscoped administrative fallback.
var ErrNoStoreContext = errors.New("acting user has no store context")

// NotFoundError reports an entity that is absent or belongs to another
// store. Cross-tenant reads are deliberately indistinguishable from
// missing rows.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// NotFound builds a NotFoundError for the given entity.
func NotFound(entity string, id uint) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// CrossTenantReferenceError reports a foreign key that points at a row
// owned by a different store, e.g. assigning a product to another
// store's category. The database FK alone cannot catch this.
type CrossTenantReferenceError struct {
	Field  string
	Entity string
	ID     uint
}

func (e *CrossTenantReferenceError) Error() string {
	return fmt.Sprintf("%s refers to %s %d in another store", e.Field, e.Entity, e.ID)
}

// InvalidAdjustmentError reports a stock adjustment that would drive
// stock_quantity below zero. The product is left untouched.
type InvalidAdjustmentError struct {
	ProductID uint
	Delta     int
}

func (e *InvalidAdjustmentError) Error() string {
	return fmt.Sprintf("adjustment %d on product %d would make stock negative", e.Delta, e.ProductID)
}

// ValidationError carries field-scoped messages surfaced to the caller.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validation builds a ValidationError from field/message pairs.
func Validation(fields map[string]string) error {
	return &ValidationError{Fields: fields}
}
