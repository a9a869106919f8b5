package controllers

import (
	"net/http"

	"mycleaners-backend/config"
	"mycleaners-backend/models"
	"mycleaners-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetCurrentStore resolves the tenant context for the signed-in manager.
func GetCurrentStore(c *gin.Context) {
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

	var store models.Store
	if err := config.DB.First(&store, "id = ?", storeUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Store not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"store": store})
}

// GetCatalog returns the fixed price lists shown on the create-order form.
func GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"dryclean":     models.DrycleanCatalog,
		"homeCleaning": models.HomeCleaningCatalog,
		"laundryRate":  models.LaundryRatePerKg,
	})
}
