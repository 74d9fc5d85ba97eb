package api

import (
	"oshilog/models"

	"github.com/gin-gonic/gin"
)

// CategoryHandler 类别处理器
type CategoryHandler struct{}

// NewCategoryHandler 创建类别处理器
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// CategoryGroup 一组类别及其展示颜色
type CategoryGroup struct {
	Name       string            `json:"name"`
	Categories []string          `json:"categories"`
	Colors     map[string]string `json:"colors"`
}

func colorsFor(categories []string) map[string]string {
	colors := make(map[string]string, len(categories))
	for _, category := range categories {
		colors[category] = models.GetCategoryColor(category)
	}
	return colors
}

// List 获取类别词表
// @Summary 获取类别词表
// @Description 返回固定的推し活支出/生活支出/收入三组类别及展示颜色
// @Tags 类别
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]CategoryGroup} "获取成功"
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	groups := []CategoryGroup{
		{
			Name:       "oshi_expense",
			Categories: models.GetOshiExpenseCategories(),
			Colors:     colorsFor(models.GetOshiExpenseCategories()),
		},
		{
			Name:       "life_expense",
			Categories: models.GetLifeExpenseCategories(),
			Colors:     colorsFor(models.GetLifeExpenseCategories()),
		},
		{
			Name:       "income",
			Categories: models.GetIncomeCategories(),
			Colors:     colorsFor(models.GetIncomeCategories()),
		},
	}
	Success(c, groups)
}
