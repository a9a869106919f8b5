package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PickupRequest is a collection request dispatched by HQ. It is not billable
// until the store converts it into an order with a challan number.
type PickupRequest struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StoreID uuid.UUID `gorm:"type:uuid;index;not null" json:"storeId"`

	CustomerName    string `gorm:"not null" json:"customerName"`
	CustomerPhone   string `gorm:"not null" json:"customerPhone"`
	CustomerAddress string `json:"customerAddress,omitempty"`

	ServiceType ServiceType `gorm:"type:varchar(20);not null" json:"serviceType"`
	PickupAt    *time.Time  `json:"pickupAt,omitempty"`
	Notes       string      `json:"notes,omitempty"`

	// Set once the pickup has been converted into a walk-in order.
	ConvertedOrderID *uuid.UUID `gorm:"type:uuid" json:"convertedOrderId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *PickupRequest) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
