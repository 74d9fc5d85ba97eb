package api

import (
	"oshilog/database"
	"oshilog/middleware"
	"oshilog/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ScheduledHandler 预定收支处理器
type ScheduledHandler struct{}

// NewScheduledHandler 创建预定收支处理器
func NewScheduledHandler() *ScheduledHandler {
	return &ScheduledHandler{}
}

// ScheduledRequest 创建预定收支请求
type ScheduledRequest struct {
	Type            string `json:"type" binding:"required" example:"expense"`
	IsOshiRelated   bool   `json:"is_oshi_related"`
	OshiID          *uint  `json:"oshi_id"`
	EstimatedAmount int64  `json:"estimated_amount" binding:"required,gt=0" example:"15000"`
	Category        string `json:"category" binding:"required" example:"イベント"`
	Memo            string `json:"memo" example:"ライブチケット"`
	ScheduledDate   string `json:"scheduled_date" binding:"required" example:"2025-04-12"`
}

// UpdateScheduledRequest 更新预定收支请求（仅限未进入终态的行）
type UpdateScheduledRequest struct {
	EstimatedAmount *int64 `json:"estimated_amount" binding:"omitempty,gt=0"`
	Category        string `json:"category"`
	Memo            *string `json:"memo"`
	ScheduledDate   string `json:"scheduled_date"`
}

// ConfirmRequest 确认实际金额请求
type ConfirmRequest struct {
	ActualAmount int64 `json:"actual_amount" binding:"required,gt=0" example:"14800"`
}

// List 获取预定收支列表
// @Summary 获取预定收支列表
// @Tags 预定收支
// @Produce json
// @Security BearerAuth
// @Param status query string false "状态筛选 scheduled/confirmed/completed/cancelled"
// @Success 200 {object} Response{data=[]models.ScheduledTransaction} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/scheduled [get]
func (h *ScheduledHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	query := database.DB.Where("user_id = ?", userID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var list []models.ScheduledTransaction
	if err := query.Order("scheduled_date, id").Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, list)
}

// Create 创建预定收支
// @Summary 创建预定收支
// @Description 登记一笔未来的待确认支付，初始状态为 scheduled
// @Tags 预定收支
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ScheduledRequest true "预定信息"
// @Success 200 {object} Response{data=models.ScheduledTransaction} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/scheduled [post]
func (h *ScheduledHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req ScheduledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	if !checkEntryCommon(c, userID, req.Type, req.IsOshiRelated, req.OshiID, req.EstimatedAmount) {
		return
	}

	scheduledDate, ok := parseDateParam(req.ScheduledDate)
	if !ok {
		BadRequest(c, "scheduled_date 格式错误，应为: 2006-01-02")
		return
	}

	scheduled := models.ScheduledTransaction{
		UserID:          userID,
		Type:            req.Type,
		IsOshiRelated:   req.IsOshiRelated,
		OshiID:          req.OshiID,
		EstimatedAmount: req.EstimatedAmount,
		Category:        req.Category,
		Memo:            req.Memo,
		ScheduledDate:   scheduledDate,
		Status:          models.ScheduledStatusScheduled,
	}
	if err := database.DB.Create(&scheduled).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建失败"))
		return
	}
	SuccessWithMessage(c, "创建成功", scheduled)
}

// Update 更新预定收支
// @Summary 更新预定收支
// @Description 更新预估金额、类别、备注或预定日期。终态（completed/cancelled）不可修改
// @Tags 预定收支
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "预定ID"
// @Param request body UpdateScheduledRequest true "更新内容"
// @Success 200 {object} Response{data=models.ScheduledTransaction} "更新成功"
// @Failure 404 {object} Response "预定不存在"
// @Failure 409 {object} Response "终态不可修改"
// @Router /api/v1/scheduled/{id} [put]
func (h *ScheduledHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var req UpdateScheduledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	var scheduled models.ScheduledTransaction
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&scheduled).Error; err != nil {
		NotFound(c, "预定不存在")
		return
	}

	if scheduled.Status == models.ScheduledStatusCompleted || scheduled.Status == models.ScheduledStatusCancelled {
		Conflict(c, "已完成或已取消的预定不可修改")
		return
	}

	if req.EstimatedAmount != nil {
		scheduled.EstimatedAmount = *req.EstimatedAmount
	}
	if req.Category != "" {
		scheduled.Category = req.Category
	}
	if req.Memo != nil {
		scheduled.Memo = *req.Memo
	}
	if req.ScheduledDate != "" {
		d, ok := parseDateParam(req.ScheduledDate)
		if !ok {
			BadRequest(c, "scheduled_date 格式错误，应为: 2006-01-02")
			return
		}
		scheduled.ScheduledDate = d
	}

	if err := database.DB.Save(&scheduled).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}
	SuccessWithMessage(c, "更新成功", scheduled)
}

// Confirm 确认实际金额
// @Summary 确认实际金额
// @Description 状态迁移 scheduled → confirmed，记录实际金额
// @Tags 预定收支
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "预定ID"
// @Param request body ConfirmRequest true "实际金额"
// @Success 200 {object} Response{data=models.ScheduledTransaction} "确认成功"
// @Failure 404 {object} Response "预定不存在"
// @Failure 409 {object} Response "非法的状态迁移"
// @Router /api/v1/scheduled/{id}/confirm [post]
func (h *ScheduledHandler) Confirm(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	var scheduled models.ScheduledTransaction
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&scheduled).Error; err != nil {
		NotFound(c, "预定不存在")
		return
	}

	if !scheduled.CanTransitionTo(models.ScheduledStatusConfirmed) {
		Conflict(c, "当前状态 "+scheduled.Status+" 不能确认金额")
		return
	}

	scheduled.Status = models.ScheduledStatusConfirmed
	scheduled.ActualAmount = &req.ActualAmount
	if err := database.DB.Save(&scheduled).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "确认失败"))
		return
	}
	SuccessWithMessage(c, "确认成功", scheduled)
}

// Complete 完成预定收支
// @Summary 完成预定收支
// @Description 状态迁移 confirmed → completed：在同一事务内生成实收支记录并回填关联。
// @Tags 预定收支
// @Produce json
// @Security BearerAuth
// @Param id path int true "预定ID"
// @Success 200 {object} Response{data=models.ScheduledTransaction} "完成成功"
// @Failure 404 {object} Response "预定不存在"
// @Failure 409 {object} Response "非法的状态迁移"
// @Router /api/v1/scheduled/{id}/complete [post]
func (h *ScheduledHandler) Complete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var scheduled models.ScheduledTransaction
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&scheduled).Error; err != nil {
		NotFound(c, "预定不存在")
		return
	}

	if !scheduled.CanTransitionTo(models.ScheduledStatusCompleted) {
		Conflict(c, "当前状态 "+scheduled.Status+" 不能完成，需先确认金额")
		return
	}

	// 实记录与状态迁移必须同一事务，崩溃时不会出现只写了一半的状态
	transaction := models.Transaction{
		UserID:        userID,
		Type:          scheduled.Type,
		IsOshiRelated: scheduled.IsOshiRelated,
		OshiID:        scheduled.OshiID,
		Amount:        scheduled.EffectiveAmount(),
		Category:      scheduled.Category,
		Memo:          scheduled.Memo,
		Date:          scheduled.ScheduledDate,
	}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&transaction).Error; err != nil {
			return err
		}
		scheduled.Status = models.ScheduledStatusCompleted
		scheduled.CompletedTransactionID = &transaction.ID
		return tx.Save(&scheduled).Error
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "完成失败"))
		return
	}
	SuccessWithMessage(c, "完成成功", scheduled)
}

// Cancel 取消预定收支
// @Summary 取消预定收支
// @Description 状态迁移 scheduled/confirmed → cancelled（终态）
// @Tags 预定收支
// @Produce json
// @Security BearerAuth
// @Param id path int true "预定ID"
// @Success 200 {object} Response{data=models.ScheduledTransaction} "取消成功"
// @Failure 404 {object} Response "预定不存在"
// @Failure 409 {object} Response "非法的状态迁移"
// @Router /api/v1/scheduled/{id}/cancel [post]
func (h *ScheduledHandler) Cancel(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var scheduled models.ScheduledTransaction
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&scheduled).Error; err != nil {
		NotFound(c, "预定不存在")
		return
	}

	if !scheduled.CanTransitionTo(models.ScheduledStatusCancelled) {
		Conflict(c, "当前状态 "+scheduled.Status+" 不能取消")
		return
	}

	scheduled.Status = models.ScheduledStatusCancelled
	if err := database.DB.Save(&scheduled).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "取消失败"))
		return
	}
	SuccessWithMessage(c, "取消成功", scheduled)
}
