package controllers

import (
	"net/http"

	"mycleaners-backend/config"
	"mycleaners-backend/models"
	"mycleaners-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ConvertPickupInput struct {
	ChallanNo string `json:"challanNo"`
}

// GetPickups lists HQ pickup requests not yet converted into orders
func GetPickups(c *gin.Context) {
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

	var pickups []models.PickupRequest
	if err := config.DB.
		Where("store_id = ? AND converted_order_id IS NULL", storeUUID).
		Order("pickup_at ASC").
		Find(&pickups).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve pickups")
		return
	}

	c.JSON(http.StatusOK, gin.H{"pickups": pickups})
}

// ConvertPickup turns a pickup request into a walk-in order
func ConvertPickup(c *gin.Context) {
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

	pickupUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid pickup ID format")
		return
	}

	var input ConvertPickupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	order, err := orderService().ConvertPickup(storeUUID, pickupUUID, input.ChallanNo)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Pickup converted to order",
		"order":   order,
	})
}
