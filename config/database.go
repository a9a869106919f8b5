package config

import (
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	dsn := os.Getenv("DB_URL")

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("Failed to connect database")
	}

	DB = db
}

// StrictStatusFlow reports whether status updates must follow the canonical
// pending -> pickup_assigned -> ... -> delivered chain. Off by default so
// managers can jump or rewind stages from the dashboard.
func StrictStatusFlow() bool {
	return os.Getenv("STRICT_STATUS_FLOW") == "true"
}
