package handlers

import (
	"net/http"

	devicetokenRepo "inkwell/database/repository/devicetoken"
	"inkwell/models"
	"inkwell/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DeviceHandler exposes push registration endpoints.
type DeviceHandler struct {
	Repo devicetokenRepo.DeviceTokenRepository
}

func NewDeviceHandler(repo devicetokenRepo.DeviceTokenRepository) *DeviceHandler {
	return &DeviceHandler{Repo: repo}
}

type registerDeviceRequest struct {
	DeviceID    string `json:"deviceId" binding:"required"`
	DeviceToken string `json:"deviceToken" binding:"required"`
	DeviceType  string `json:"deviceType"`
}

// RegisterDeviceHandler upserts the caller's push registration for one device.
func (h *DeviceHandler) RegisterDeviceHandler(c *gin.Context) {
	logger := getLogger(c)

	memberID, exists := c.Get("memberID")
	if !exists {
		logger.Error("Member ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req registerDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid device registration request", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	token := &models.DeviceToken{
		MemberID:    memberID.(string),
		DeviceID:    req.DeviceID,
		DeviceToken: req.DeviceToken,
		DeviceType:  req.DeviceType,
		IsActive:    true,
	}
	if err := h.Repo.Register(token); err != nil {
		logger.Error("Failed to register device", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to register device", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Device registered successfully"})
}

// UnregisterDeviceHandler deactivates the caller's registration for one device.
func (h *DeviceHandler) UnregisterDeviceHandler(c *gin.Context) {
	logger := getLogger(c)

	memberID, exists := c.Get("memberID")
	if !exists {
		logger.Error("Member ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	deviceID := c.Param("deviceId")
	if deviceID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "deviceId is required")
		return
	}

	if err := h.Repo.Unregister(memberID.(string), deviceID); err != nil {
		logger.Error("Failed to unregister device", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to unregister device", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Device unregistered successfully"})
}
