package api

import (
	"errors"

	"oshilog/database"
	"oshilog/middleware"
	"oshilog/models"
	"oshilog/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RecurringHandler 定期收支规则处理器
type RecurringHandler struct{}

// NewRecurringHandler 创建定期收支规则处理器
func NewRecurringHandler() *RecurringHandler {
	return &RecurringHandler{}
}

// RecurringRequest 创建/更新定期规则请求
type RecurringRequest struct {
	Type          string `json:"type" binding:"required" example:"expense"`
	IsOshiRelated bool   `json:"is_oshi_related"`
	OshiID        *uint  `json:"oshi_id"`
	Amount        int64  `json:"amount" binding:"required,gt=0" example:"1000"`
	Category      string `json:"category" binding:"required" example:"通信費"`
	Memo          string `json:"memo"`
	Frequency     string `json:"frequency" binding:"required" example:"monthly"` // monthly/yearly
	DayOfMonth    *int   `json:"day_of_month" example:"27"`
	Month         *int   `json:"month"`
	DayOfYear     *int   `json:"day_of_year"`
	StartDate     string `json:"start_date" binding:"required" example:"2025-01-01"`
	EndDate       string `json:"end_date"`
	TagIDs        []uint `json:"tag_ids"`
}

// MaterializeRequest 兑现一次定期发生的请求
type MaterializeRequest struct {
	Date   string `json:"date" binding:"required" example:"2025-03-27"` // 发生日期
	Amount *int64 `json:"amount" binding:"omitempty,gt=0"`              // 实际金额，缺省用规则金额
	Memo   string `json:"memo"`
}

// buildRule 组装并校验规则，失败时已写出响应
func (h *RecurringHandler) buildRule(c *gin.Context, userID uint, req RecurringRequest, rule *models.RecurringTransaction) bool {
	if !checkEntryCommon(c, userID, req.Type, req.IsOshiRelated, req.OshiID, req.Amount) {
		return false
	}

	startDate, ok := parseDateParam(req.StartDate)
	if !ok {
		BadRequest(c, "start_date 格式错误，应为: 2006-01-02")
		return false
	}

	rule.UserID = userID
	rule.Type = req.Type
	rule.IsOshiRelated = req.IsOshiRelated
	rule.OshiID = req.OshiID
	rule.Amount = req.Amount
	rule.Category = req.Category
	rule.Memo = req.Memo
	rule.Frequency = req.Frequency
	rule.DayOfMonth = req.DayOfMonth
	rule.Month = req.Month
	rule.DayOfYear = req.DayOfYear
	rule.StartDate = startDate
	rule.EndDate = nil
	if req.EndDate != "" {
		endDate, ok := parseDateParam(req.EndDate)
		if !ok {
			BadRequest(c, "end_date 格式错误，应为: 2006-01-02")
			return false
		}
		rule.EndDate = &endDate
	}

	if err := rule.Validate(); err != nil {
		BadRequest(c, err.Error())
		return false
	}
	return true
}

// replaceRecurringTags 在事务内整体替换规则的标签
func replaceRecurringTags(tx *gorm.DB, userID, ruleID uint, tagIDs []uint) error {
	if err := tx.Where("recurring_transaction_id = ?", ruleID).Delete(&models.RecurringTransactionTag{}).Error; err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}
	var tags []models.Tag
	if err := tx.Where("id IN ? AND user_id = ?", tagIDs, userID).Find(&tags).Error; err != nil {
		return err
	}
	links := make([]models.RecurringTransactionTag, 0, len(tags))
	for _, tag := range tags {
		links = append(links, models.RecurringTransactionTag{RecurringTransactionID: ruleID, TagID: tag.ID})
	}
	if len(links) == 0 {
		return nil
	}
	return tx.Create(&links).Error
}

// List 获取定期规则列表
// @Summary 获取定期规则列表
// @Tags 定期收支
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.RecurringTransaction} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/recurring [get]
func (h *RecurringHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var rules []models.RecurringTransaction
	if err := database.DB.Where("user_id = ?", userID).Order("id").Find(&rules).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, rules)
}

// Create 创建定期规则
// @Summary 创建定期规则
// @Description 创建每月或每年重复的收支规则。规则本身不生成记录，发生日期按需推导
// @Tags 定期收支
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RecurringRequest true "规则信息"
// @Success 200 {object} Response{data=models.RecurringTransaction} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/recurring [post]
func (h *RecurringHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req RecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	var rule models.RecurringTransaction
	if !h.buildRule(c, userID, req, &rule) {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rule).Error; err != nil {
			return err
		}
		return replaceRecurringTags(tx, userID, rule.ID, req.TagIDs)
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "创建失败"))
		return
	}
	SuccessWithMessage(c, "创建成功", rule)
}

// Update 更新定期规则
// @Summary 更新定期规则
// @Description 更新规则。已兑现的历史记录不受影响；通过设置 end_date 可停用规则
// @Tags 定期收支
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "规则ID"
// @Param request body RecurringRequest true "规则信息"
// @Success 200 {object} Response{data=models.RecurringTransaction} "更新成功"
// @Failure 404 {object} Response "规则不存在"
// @Router /api/v1/recurring/{id} [put]
func (h *RecurringHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var req RecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	var rule models.RecurringTransaction
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&rule).Error; err != nil {
		NotFound(c, "规则不存在")
		return
	}

	if !h.buildRule(c, userID, req, &rule) {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&rule).Error; err != nil {
			return err
		}
		return replaceRecurringTags(tx, userID, rule.ID, req.TagIDs)
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}
	SuccessWithMessage(c, "更新成功", rule)
}

// Delete 删除定期规则
// @Summary 删除定期规则
// @Description 删除规则。历史不可变：已兑现的收支记录保留，仅解除关联
// @Tags 定期收支
// @Produce json
// @Security BearerAuth
// @Param id path int true "规则ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "规则不存在"
// @Router /api/v1/recurring/{id} [delete]
func (h *RecurringHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var rule models.RecurringTransaction
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&rule).Error; err != nil {
		NotFound(c, "规则不存在")
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// 历史记录保留，解除回链
		if err := tx.Model(&models.Transaction{}).
			Where("recurring_override_id = ?", rule.ID).
			Update("recurring_override_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("recurring_transaction_id = ?", rule.ID).Delete(&models.RecurringTransactionTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&rule).Error
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}

// Materialize 兑现一次定期发生
// @Summary 兑现一次定期发生
// @Description 把规则在指定日期的发生落地为一条实收支记录。同一 (规则, 日期) 只能兑现一次
// @Tags 定期收支
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "规则ID"
// @Param request body MaterializeRequest true "兑现信息"
// @Success 200 {object} Response{data=models.Transaction} "兑现成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "规则不存在"
// @Failure 409 {object} Response "该发生已兑现"
// @Router /api/v1/recurring/{id}/materialize [post]
func (h *RecurringHandler) Materialize(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var req MaterializeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	var rule models.RecurringTransaction
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&rule).Error; err != nil {
		NotFound(c, "规则不存在")
		return
	}

	date, ok := parseDateParam(req.Date)
	if !ok {
		BadRequest(c, "日期格式错误，应为: 2006-01-02")
		return
	}

	// 日期必须是规则推导出的发生日
	occurrences, err := service.Expand(rule, date, date)
	if err != nil {
		ServiceError(c, err, "规则展开失败")
		return
	}
	if len(occurrences) == 0 {
		BadRequest(c, "该日期不是此规则的发生日")
		return
	}

	amount := rule.Amount
	if req.Amount != nil {
		amount = *req.Amount
	}
	memo := rule.Memo
	if req.Memo != "" {
		memo = req.Memo
	}

	transaction := models.Transaction{
		UserID:              userID,
		Type:                rule.Type,
		IsOshiRelated:       rule.IsOshiRelated,
		OshiID:              rule.OshiID,
		Amount:              amount,
		Category:            rule.Category,
		Memo:                memo,
		Date:                date,
		RecurringOverrideID: &rule.ID,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		// 同一 (规则, 发生日期) 至多兑现一次
		var count int64
		if err := tx.Model(&models.Transaction{}).
			Where("recurring_override_id = ? AND date = ?", rule.ID, date).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errDuplicateMaterialization
		}
		return tx.Create(&transaction).Error
	})
	if err != nil {
		if errors.Is(err, errDuplicateMaterialization) {
			Conflict(c, "该发生已兑现过")
			return
		}
		InternalError(c, SafeErrorMessage(err, "兑现失败"))
		return
	}

	SuccessWithMessage(c, "兑现成功", transaction)
}

var errDuplicateMaterialization = errors.New("该发生已兑现")
