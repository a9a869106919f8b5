package controllers

import (
	"net/http"

	"mycleaners-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetDashboardOverview returns the KPI cards plus today's pickup and
// delivery queues for the signed-in store.
func GetDashboardOverview(c *gin.Context) {
	storeID, exists := c.Get("storeId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Store ID not found in context")
		return
	}
	storeUUID, err := uuid.Parse(storeID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid store ID format")
		return
	}

	svc := orderService()

	stats, err := svc.Stats(storeUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute dashboard stats")
		return
	}

	todayPickups, err := svc.TodayPickups(storeUUID, 5)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch today's pickups")
		return
	}

	todayDeliveries, err := svc.TodayDeliveries(storeUUID, 5)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch today's deliveries")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":           stats,
		"todayPickups":    todayPickups,
		"todayDeliveries": todayDeliveries,
	})
}
