package model

import "time"

// User represents an account within a store. StoreID is nullable so a
// token without tenant context can be represented, but the scope guard
// rejects such a context before any tenant-owned data is touched.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Email     string    `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"`
	Role      string    `json:"role" gorm:"type:varchar(50);not null;default:'owner'"`
	StoreID   *uint     `json:"store_id,omitempty" gorm:"index"`
	Store     *Store    `json:"store,omitempty" gorm:"foreignKey:StoreID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
