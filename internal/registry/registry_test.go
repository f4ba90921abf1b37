package registry

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rogenecarl/inventory-pos/internal/apperr"
	"github.com/rogenecarl/inventory-pos/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Store{},
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Sale{},
		&model.SaleItem{},
	))
	return db
}

func TestSlugify(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{"simple name", "Foo", "foo"},
		{"spaces become hyphens", "Acme Store", "acme-store"},
		{"punctuation collapses", "Bob's Shop & Deli!", "bob-s-shop-deli"},
		{"leading and trailing noise trimmed", "  --Corner Store--  ", "corner-store"},
		{"digits survive", "Store 24", "store-24"},
		{"already a slug", "my-store", "my-store"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.in))
		})
	}
}

func TestUniqueSlug(t *testing.T) {
	takenFrom := func(slugs ...string) func(string) (bool, error) {
		set := map[string]bool{}
		for _, s := range slugs {
			set[s] = true
		}
		return func(s string) (bool, error) { return set[s], nil }
	}

	t.Run("free base is used directly", func(t *testing.T) {
		slug, err := uniqueSlug(takenFrom(), "Foo")
		require.NoError(t, err)
		assert.Equal(t, "foo", slug)
	})

	t.Run("collisions append an incrementing suffix", func(t *testing.T) {
		slug, err := uniqueSlug(takenFrom("foo"), "Foo")
		require.NoError(t, err)
		assert.Equal(t, "foo-1", slug)

		slug, err = uniqueSlug(takenFrom("foo", "foo-1"), "Foo")
		require.NoError(t, err)
		assert.Equal(t, "foo-2", slug)
	})

	t.Run("name without alphanumerics falls back to a default base", func(t *testing.T) {
		slug, err := uniqueSlug(takenFrom(), "!!!")
		require.NoError(t, err)
		assert.Equal(t, "store", slug)

		slug, err = uniqueSlug(takenFrom("store"), "???")
		require.NoError(t, err)
		assert.Equal(t, "store-1", slug)
	})
}

func TestRegister(t *testing.T) {
	db := newTestDB(t)
	r := New(db)

	first, err := r.Register(RegisterInput{
		Name:      "Alice",
		Email:     "alice@example.com",
		Password:  "password123",
		StoreName: "Acme",
	})
	require.NoError(t, err)
	assert.Equal(t, "owner", first.Role)
	require.NotNil(t, first.Store)
	assert.Equal(t, "Acme", first.Store.Name)
	assert.Equal(t, "acme", first.Store.Slug)

	second, err := r.Register(RegisterInput{
		Name:      "Bob",
		Email:     "bob@example.com",
		Password:  "password123",
		StoreName: "Acme",
	})
	require.NoError(t, err)
	assert.Equal(t, "acme-1", second.Store.Slug)

	third, err := r.Register(RegisterInput{
		Name:      "Carol",
		Email:     "carol@example.com",
		Password:  "password123",
		StoreName: "Acme",
	})
	require.NoError(t, err)
	assert.Equal(t, "acme-2", third.Store.Slug)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	r := New(db)

	_, err := r.Register(RegisterInput{
		Name:      "Alice",
		Email:     "alice@example.com",
		Password:  "password123",
		StoreName: "Acme",
	})
	require.NoError(t, err)

	_, err = r.Register(RegisterInput{
		Name:      "Alice Again",
		Email:     "alice@example.com",
		Password:  "password123",
		StoreName: "Other Shop",
	})

	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "email")

	// The rejected signup must leave no store behind.
	var count int64
	require.NoError(t, db.Model(&model.Store{}).Where("slug = ?", "other-shop").Count(&count).Error)
	assert.Zero(t, count)
}

func TestRegisterValidation(t *testing.T) {
	// Invalid input is rejected before any database work, so a nil DB
	// is safe here.
	r := New(nil)

	testCases := []struct {
		name  string
		input RegisterInput
		field string
	}{
		{
			name:  "missing name",
			input: RegisterInput{Email: "alice@example.com", Password: "password123", StoreName: "Acme"},
			field: "name",
		},
		{
			name:  "invalid email",
			input: RegisterInput{Name: "Alice", Email: "not-an-email", Password: "password123", StoreName: "Acme"},
			field: "email",
		},
		{
			name:  "short password",
			input: RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "short", StoreName: "Acme"},
			field: "password",
		},
		{
			name:  "missing store name",
			input: RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "password123"},
			field: "store_name",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.Register(tc.input)

			var ve *apperr.ValidationError
			assert.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, tc.field)
		})
	}
}
