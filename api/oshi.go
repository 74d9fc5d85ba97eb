package api

import (
	"oshilog/database"
	"oshilog/middleware"
	"oshilog/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// OshiHandler 推し管理处理器
type OshiHandler struct{}

// NewOshiHandler 创建推し管理处理器
func NewOshiHandler() *OshiHandler {
	return &OshiHandler{}
}

// OshiRequest 创建/更新推し请求
type OshiRequest struct {
	Name  string `json:"name" binding:"required,max=100" example:"白咲しおん"`
	Color string `json:"color" binding:"omitempty,max=20" example:"#ec4899"`
}

// List 获取推し列表
// @Summary 获取推し列表
// @Tags 推し
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Oshi} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/oshi [get]
func (h *OshiHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var list []models.Oshi
	if err := database.DB.Where("user_id = ?", userID).Order("id").Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, list)
}

// Create 创建推し
// @Summary 创建推し
// @Tags 推し
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body OshiRequest true "推し信息"
// @Success 200 {object} Response{data=models.Oshi} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/oshi [post]
func (h *OshiHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req OshiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	oshi := models.Oshi{
		UserID: userID,
		Name:   req.Name,
		Color:  req.Color,
	}
	if err := database.DB.Create(&oshi).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建失败"))
		return
	}
	SuccessWithMessage(c, "创建成功", oshi)
}

// Update 更新推し
// @Summary 更新推し
// @Tags 推し
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "推しID"
// @Param request body OshiRequest true "推し信息"
// @Success 200 {object} Response{data=models.Oshi} "更新成功"
// @Failure 404 {object} Response "推し不存在"
// @Router /api/v1/oshi/{id} [put]
func (h *OshiHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var req OshiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	var oshi models.Oshi
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&oshi).Error; err != nil {
		NotFound(c, "推し不存在")
		return
	}

	oshi.Name = req.Name
	oshi.Color = req.Color
	if err := database.DB.Save(&oshi).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}
	SuccessWithMessage(c, "更新成功", oshi)
}

// Delete 删除推し
// @Summary 删除推し
// @Description 删除一个推し。过去的收支记录不会被删除，只是解除与该推し的关联
// @Tags 推し
// @Produce json
// @Security BearerAuth
// @Param id path int true "推しID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "推し不存在"
// @Router /api/v1/oshi/{id} [delete]
func (h *OshiHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var oshi models.Oshi
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&oshi).Error; err != nil {
		NotFound(c, "推し不存在")
		return
	}

	// 删除推し只解除关联，历史记录不可变：各表置空引用并清掉推し标记
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"oshi_id": nil, "is_oshi_related": false}
		if err := tx.Model(&models.Transaction{}).Where("oshi_id = ?", oshi.ID).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.RecurringTransaction{}).Where("oshi_id = ?", oshi.ID).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.ScheduledTransaction{}).Where("oshi_id = ?", oshi.ID).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Delete(&oshi).Error
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}
