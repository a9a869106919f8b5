package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationLog struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StoreID uuid.UUID `gorm:"type:uuid;index;not null" json:"storeId"`
	OrderID uuid.UUID `gorm:"type:uuid;index;not null" json:"orderId"`

	Type         string    `gorm:"type:varchar(20)" json:"type"` // order_ready, challan_digest
	Message      string    `gorm:"type:text" json:"message"`
	Status       string    `gorm:"type:varchar(20)" json:"status"` // sent, failed
	ErrorMessage string    `gorm:"type:text" json:"errorMessage,omitempty"`
	Channel      string    `gorm:"type:varchar(20)" json:"channel"` // whatsapp, sms
	SentAt       time.Time `json:"sentAt"`

	CreatedAt time.Time `json:"createdAt"`
}

func (n *NotificationLog) BeforeCreate(tx *gorm.DB) (err error) {
	n.ID = uuid.New()
	return
}
