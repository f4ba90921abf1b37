// Package registry owns store registration: creating the tenant root
// together with its owner user in a single transaction, including
// unique slug derivation.
package registry

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rogenecarl/inventory-pos/internal/apperr"
	"github.com/rogenecarl/inventory-pos/internal/model"
)

// slugRetries bounds how many times a registration is replayed when two
// concurrent signups race to the same slug and hit the unique index.
const slugRetries = 3

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Registry creates stores and their owner users.
type Registry struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Registry {
	return &Registry{db: db}
}

// RegisterInput is the signup payload: the owner's identity plus the
// name of the store to create.
type RegisterInput struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	StoreName string `json:"store_name"`
}

func (in RegisterInput) validate() error {
	fields := map[string]string{}
	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "Name is required."
	}
	if strings.TrimSpace(in.Email) == "" || !strings.Contains(in.Email, "@") {
		fields["email"] = "A valid email address is required."
	}
	if len(in.Password) < 8 {
		fields["password"] = "Password must be at least 8 characters."
	}
	if strings.TrimSpace(in.StoreName) == "" {
		fields["store_name"] = "Store name is required."
	}
	if len(fields) > 0 {
		return apperr.Validation(fields)
	}
	return nil
}

// Slugify lowercases a name and collapses every run of non-alphanumeric
// characters into a single hyphen.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// Register creates the store and its owner user in one transaction. The
// slug probe runs inside that transaction; if a concurrent registration
// still wins the race the unique index rejects the commit and the whole
// registration is replayed with a fresh probe.
func (r *Registry) Register(in RegisterInput) (*model.User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var user *model.User
	for attempt := 0; ; attempt++ {
		user, err = r.register(in, string(hash))
		if err == nil {
			return user, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) && attempt < slugRetries {
			continue
		}
		return nil, err
	}
}

func (r *Registry) register(in RegisterInput, passwordHash string) (*model.User, error) {
	var user *model.User
	err := r.db.Transaction(func(tx *gorm.DB) error {
		store, err := createStore(tx, in.StoreName)
		if err != nil {
			return err
		}

		user = &model.User{
			Name:     in.Name,
			Email:    in.Email,
			Password: passwordHash,
			Role:     "owner",
			StoreID:  &store.ID,
		}
		if err := tx.Create(user).Error; err != nil {
			// The only unique index on users is email, so a duplicate
			// key here is a taken address, not a slug collision.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Validation(map[string]string{
					"email": "The email has already been taken.",
				})
			}
			return err
		}
		user.Store = store
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// uniqueSlug derives a slug from name and probes taken sequentially
// (foo, foo-1, foo-2, ...) until it finds a free one. A name with no
// alphanumeric characters falls back to "store" as the base. The probe
// is not race-free on its own; the unique index on slug is the
// backstop.
func uniqueSlug(taken func(string) (bool, error), name string) (string, error) {
	base := Slugify(name)
	if base == "" {
		base = "store"
	}
	slug := base
	for i := 1; ; i++ {
		used, err := taken(slug)
		if err != nil {
			return "", err
		}
		if !used {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func createStore(tx *gorm.DB, name string) (*model.Store, error) {
	slug, err := uniqueSlug(func(s string) (bool, error) {
		var count int64
		err := tx.Model(&model.Store{}).Where("slug = ?", s).Count(&count).Error
		return count > 0, err
	}, name)
	if err != nil {
		return nil, err
	}

	store := &model.Store{
		Name:     name,
		Slug:     slug,
		Currency: "USD",
	}
	if err := tx.Create(store).Error; err != nil {
		return nil, err
	}
	return store, nil
}
