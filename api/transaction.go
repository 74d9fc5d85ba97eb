package api

import (
	"oshilog/database"
	"oshilog/middleware"
	"oshilog/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TransactionHandler 收支记录处理器
type TransactionHandler struct{}

// NewTransactionHandler 创建收支记录处理器
func NewTransactionHandler() *TransactionHandler {
	return &TransactionHandler{}
}

// CreateTransactionRequest 创建收支记录请求
type CreateTransactionRequest struct {
	Type          string `json:"type" binding:"required" example:"expense"`
	IsOshiRelated bool   `json:"is_oshi_related" example:"true"`
	OshiID        *uint  `json:"oshi_id" example:"1"`
	Amount        int64  `json:"amount" binding:"required,gt=0" example:"5000"`
	Category      string `json:"category" binding:"required" example:"グッズ"`
	Memo          string `json:"memo" example:"アクスタ"`
	Date          string `json:"date" binding:"required" example:"2025-03-01"`
	TagIDs        []uint `json:"tag_ids"`
}

// UpdateTransactionRequest 更新收支记录请求
type UpdateTransactionRequest struct {
	Type          string  `json:"type" example:"expense"`
	IsOshiRelated *bool   `json:"is_oshi_related"`
	OshiID        *uint   `json:"oshi_id"`
	Amount        *int64  `json:"amount" binding:"omitempty,gt=0"`
	Category      string  `json:"category"`
	Memo          *string `json:"memo"`
	Date          string  `json:"date"`
	TagIDs        *[]uint `json:"tag_ids"` // 传入时整体替换标签
}

// TransactionListRequest 收支记录列表请求
type TransactionListRequest struct {
	Page     int    `form:"page" example:"1"`
	PageSize int    `form:"page_size" example:"10"`
	Type     string `form:"type" example:"expense"`
	Category string `form:"category" example:"食費"`
	OshiID   uint   `form:"oshi_id"`
	Start    string `form:"start" example:"2025-03-01"`
	End      string `form:"end" example:"2025-03-31"`
}

// replaceTransactionTags 在事务内整体替换记录的标签（先删后插，保证原子性，
// 中途失败不会留下半套标签）
func replaceTransactionTags(tx *gorm.DB, userID, transactionID uint, tagIDs []uint) error {
	if err := tx.Where("transaction_id = ?", transactionID).Delete(&models.TransactionTag{}).Error; err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}
	// 只接受属于当前用户的标签
	var tags []models.Tag
	if err := tx.Where("id IN ? AND user_id = ?", tagIDs, userID).Find(&tags).Error; err != nil {
		return err
	}
	links := make([]models.TransactionTag, 0, len(tags))
	for _, tag := range tags {
		links = append(links, models.TransactionTag{TransactionID: transactionID, TagID: tag.ID})
	}
	if len(links) == 0 {
		return nil
	}
	return tx.Create(&links).Error
}

// Create 创建收支记录
// @Summary 创建收支记录
// @Description 创建一条新的支出或收入记录，可同时关联推し和标签
// @Tags 收支记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTransactionRequest true "收支记录信息"
// @Success 200 {object} Response{data=models.Transaction} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	if !checkEntryCommon(c, userID, req.Type, req.IsOshiRelated, req.OshiID, req.Amount) {
		return
	}

	date, ok := parseDateParam(req.Date)
	if !ok {
		BadRequest(c, "日期格式错误，应为: 2006-01-02")
		return
	}

	transaction := models.Transaction{
		UserID:        userID,
		Type:          req.Type,
		IsOshiRelated: req.IsOshiRelated,
		OshiID:        req.OshiID,
		Amount:        req.Amount,
		Category:      req.Category,
		Memo:          req.Memo,
		Date:          date,
	}

	// 记录与标签关联写入同一事务
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&transaction).Error; err != nil {
			return err
		}
		return replaceTransactionTags(tx, userID, transaction.ID, req.TagIDs)
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "创建收支记录失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", transaction)
}

// List 获取收支记录列表
// @Summary 获取收支记录列表
// @Description 获取当前用户的收支记录，支持分页和按类型/类别/推し/时间筛选
// @Tags 收支记录
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Param type query string false "expense/income"
// @Param category query string false "类别筛选"
// @Param oshi_id query int false "推し筛选"
// @Param start query string false "开始日期 (2025-03-01)"
// @Param end query string false "结束日期 (2025-03-31)"
// @Success 200 {object} Response{data=PageResponse{list=[]models.Transaction}} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req TransactionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	// 默认分页参数
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	query := database.DB.Model(&models.Transaction{}).Where("user_id = ?", userID)

	if req.Type != "" {
		query = query.Where("type = ?", req.Type)
	}
	if req.Category != "" {
		query = query.Where("category = ?", req.Category)
	}
	if req.OshiID != 0 {
		query = query.Where("oshi_id = ?", req.OshiID)
	}
	if req.Start != "" {
		if t, ok := parseDateParam(req.Start); ok {
			query = query.Where("date >= ?", t)
		}
	}
	if req.End != "" {
		if t, ok := parseDateParam(req.End); ok {
			query = query.Where("date <= ?", t)
		}
	}

	// 获取总数
	var total int64
	query.Count(&total)

	// 获取列表
	var transactions []models.Transaction
	offset := (req.Page - 1) * req.PageSize
	if err := query.Order("date DESC, id DESC").Offset(offset).Limit(req.PageSize).Find(&transactions).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, PageResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		List:     transactions,
	})
}

// Update 更新收支记录
// @Summary 更新收支记录
// @Description 更新当前用户的一条收支记录，tag_ids 传入时整体替换标签
// @Tags 收支记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "记录ID"
// @Param request body UpdateTransactionRequest true "更新内容"
// @Success 200 {object} Response{data=models.Transaction} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/transactions/{id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	var transaction models.Transaction
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&transaction).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}

	if req.Type != "" {
		transaction.Type = req.Type
	}
	if req.IsOshiRelated != nil {
		transaction.IsOshiRelated = *req.IsOshiRelated
	}
	if req.OshiID != nil {
		transaction.OshiID = req.OshiID
	}
	if !transaction.IsOshiRelated {
		transaction.OshiID = nil
	}
	if req.Amount != nil {
		transaction.Amount = *req.Amount
	}
	if req.Category != "" {
		transaction.Category = req.Category
	}
	if req.Memo != nil {
		transaction.Memo = *req.Memo
	}
	if req.Date != "" {
		date, ok := parseDateParam(req.Date)
		if !ok {
			BadRequest(c, "日期格式错误，应为: 2006-01-02")
			return
		}
		transaction.Date = date
	}

	if !checkEntryCommon(c, userID, transaction.Type, transaction.IsOshiRelated, transaction.OshiID, transaction.Amount) {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&transaction).Error; err != nil {
			return err
		}
		if req.TagIDs != nil {
			return replaceTransactionTags(tx, userID, transaction.ID, *req.TagIDs)
		}
		return nil
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}

	SuccessWithMessage(c, "更新成功", transaction)
}

// Delete 删除收支记录
// @Summary 删除收支记录
// @Description 删除当前用户的一条收支记录，关联的标签链接级联清理
// @Tags 收支记录
// @Produce json
// @Security BearerAuth
// @Param id path int true "记录ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var transaction models.Transaction
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&transaction).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("transaction_id = ?", transaction.ID).Delete(&models.TransactionTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&transaction).Error
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}
