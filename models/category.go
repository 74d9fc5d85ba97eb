package models

// 类别为封闭枚举（按收支类型/是否推し相关分组），但所有读取方对
// 未知类别一律按“有效但无样式”处理，保证向前兼容

// 推し活支出类别
const (
	CategoryGoods     = "グッズ"
	CategoryEvent     = "イベント"
	CategoryStreaming = "配信"
	CategoryTour      = "遠征"
	CategoryOshiOther = "その他推し活"
)

// 生活支出类别
const (
	CategoryFood          = "食費"
	CategoryRent          = "家賃"
	CategoryUtilities     = "光熱費"
	CategoryTransport     = "交通費"
	CategoryCommunication = "通信費"
	CategoryEntertainment = "娯楽"
	CategoryLifeOther     = "その他生活費"
)

// 收入类别
const (
	CategorySalary      = "給与"
	CategorySideJob     = "副業"
	CategoryIncomeOther = "その他収入"
)

// GetOshiExpenseCategories 获取推し活支出类别
func GetOshiExpenseCategories() []string {
	return []string{
		CategoryGoods,
		CategoryEvent,
		CategoryStreaming,
		CategoryTour,
		CategoryOshiOther,
	}
}

// GetLifeExpenseCategories 获取生活支出类别
func GetLifeExpenseCategories() []string {
	return []string{
		CategoryFood,
		CategoryRent,
		CategoryUtilities,
		CategoryTransport,
		CategoryCommunication,
		CategoryEntertainment,
		CategoryLifeOther,
	}
}

// GetIncomeCategories 获取收入类别
func GetIncomeCategories() []string {
	return []string{
		CategorySalary,
		CategorySideJob,
		CategoryIncomeOther,
	}
}

// CategoryColors 类别对应的颜色（与前端 CSS 保持一致）
var CategoryColors = map[string]string{
	CategoryGoods:         "#f59e0b",
	CategoryEvent:         "#8b5cf6",
	CategoryStreaming:     "#ec4899",
	CategoryTour:          "#0ea5e9",
	CategoryOshiOther:     "#d946ef",
	CategoryFood:          "#f97316",
	CategoryRent:          "#3b82f6",
	CategoryUtilities:     "#eab308",
	CategoryTransport:     "#22c55e",
	CategoryCommunication: "#6366f1",
	CategoryEntertainment: "#a855f7",
	CategoryLifeOther:     "#64748b",
	CategorySalary:        "#10b981",
	CategorySideJob:       "#14b8a6",
	CategoryIncomeOther:   "#06b6d4",
}

// GetCategoryColor 获取类别颜色，未知类别返回默认灰色
func GetCategoryColor(category string) string {
	if color, ok := CategoryColors[category]; ok {
		return color
	}
	return "#64748b"
}
