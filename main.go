package main

import (
	"fmt"
	"log"
	"os"

	"mycleaners-backend/config"
	"mycleaners-backend/controllers"
	"mycleaners-backend/models"
	"mycleaners-backend/routes"
	"mycleaners-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Store{},
		&models.User{},
		&models.Order{},
		&models.OrderItem{},
		&models.StatusEvent{},
		&models.Payment{},
		&models.PickupRequest{},
		&models.Invoice{},
		&models.NotificationLog{},
	)
}

func main() {
	notifier := services.NewNotifyService(config.DB)
	notifier.StartScheduler()
	controllers.SetNotifier(notifier)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
