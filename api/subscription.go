package api

import (
	"errors"

	"oshilog/database"
	"oshilog/middleware"
	"oshilog/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SubscriptionHandler 订阅计划处理器
type SubscriptionHandler struct{}

// NewSubscriptionHandler 创建订阅计划处理器
func NewSubscriptionHandler() *SubscriptionHandler {
	return &SubscriptionHandler{}
}

// Get 获取当前订阅计划
// @Summary 获取当前订阅计划
// @Description 查询当前账号的订阅计划，无记录时自动创建 free 计划
// @Tags 订阅
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.Subscription} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/subscription [get]
func (h *SubscriptionHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var subscription models.Subscription
	err := database.DB.Where("user_id = ?", userID).First(&subscription).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		subscription = models.Subscription{
			UserID: userID,
			Plan:   models.PlanFree,
			Status: "active",
		}
		if err := database.DB.Create(&subscription).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "创建订阅记录失败"))
			return
		}
		Success(c, subscription)
		return
	}
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, subscription)
}
