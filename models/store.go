package models

import (
	"github.com/google/uuid"
)

// Store is the tenant context for a signed-in manager. Reference data only;
// nothing in the order flow mutates it.
type Store struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name    string    `gorm:"not null" json:"name"`
	Code    string    `gorm:"uniqueIndex;not null" json:"code"`
	Zone    string    `json:"zone"`
	Address string    `json:"address"`
	Phone   string    `json:"phone"`

	Users  []User  `gorm:"foreignKey:StoreID" json:"-"`
	Orders []Order `gorm:"foreignKey:StoreID" json:"-"`
}
