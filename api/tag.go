package api

import (
	"oshilog/database"
	"oshilog/middleware"
	"oshilog/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TagHandler 标签管理处理器
type TagHandler struct{}

// NewTagHandler 创建标签管理处理器
func NewTagHandler() *TagHandler {
	return &TagHandler{}
}

// TagRequest 创建/更新标签请求
type TagRequest struct {
	Name  string `json:"name" binding:"required,max=50" example:"ライブ"`
	Color string `json:"color" binding:"omitempty,max=20" example:"#8b5cf6"`
}

// List 获取标签列表
// @Summary 获取标签列表
// @Tags 标签
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Tag} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/tags [get]
func (h *TagHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var list []models.Tag
	if err := database.DB.Where("user_id = ?", userID).Order("id").Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, list)
}

// Create 创建标签
// @Summary 创建标签
// @Tags 标签
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TagRequest true "标签信息"
// @Success 200 {object} Response{data=models.Tag} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/tags [post]
func (h *TagHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	tag := models.Tag{
		UserID: userID,
		Name:   req.Name,
		Color:  req.Color,
	}
	if err := database.DB.Create(&tag).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建失败"))
		return
	}
	SuccessWithMessage(c, "创建成功", tag)
}

// Update 更新标签
// @Summary 更新标签
// @Tags 标签
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "标签ID"
// @Param request body TagRequest true "标签信息"
// @Success 200 {object} Response{data=models.Tag} "更新成功"
// @Failure 404 {object} Response "标签不存在"
// @Router /api/v1/tags/{id} [put]
func (h *TagHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	var tag models.Tag
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&tag).Error; err != nil {
		NotFound(c, "标签不存在")
		return
	}

	tag.Name = req.Name
	tag.Color = req.Color
	if err := database.DB.Save(&tag).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}
	SuccessWithMessage(c, "更新成功", tag)
}

// Delete 删除标签
// @Summary 删除标签
// @Description 删除标签并级联清理其与收支记录、定期规则的关联
// @Tags 标签
// @Produce json
// @Security BearerAuth
// @Param id path int true "标签ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "标签不存在"
// @Router /api/v1/tags/{id} [delete]
func (h *TagHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id := c.Param("id")

	var tag models.Tag
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&tag).Error; err != nil {
		NotFound(c, "标签不存在")
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", tag.ID).Delete(&models.TransactionTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tag_id = ?", tag.ID).Delete(&models.RecurringTransactionTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}
