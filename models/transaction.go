package models

import (
	"time"
)

const (
	// TypeExpense 支出
	TypeExpense = "expense"
	// TypeIncome 收入
	TypeIncome = "income"
)

// Transaction 收支记录模型（已确定发生的实记录）
// 金额统一用最小货币单位的整数（日元按 1 円计），避免浮点累加误差
type Transaction struct {
	ID                  uint      `json:"id" gorm:"primaryKey"`
	UserID              uint      `json:"user_id" gorm:"index;not null"`
	Type                string    `json:"type" gorm:"size:10;not null;index"` // expense/income
	IsOshiRelated       bool      `json:"is_oshi_related" gorm:"default:false"`
	OshiID              *uint     `json:"oshi_id" gorm:"index"`
	Amount              int64     `json:"amount" gorm:"not null"`
	Category            string    `json:"category" gorm:"size:50;not null"`
	Memo                string    `json:"memo" gorm:"size:255"`
	Date                time.Time `json:"date" gorm:"type:date;not null;index"`
	CreatedAt           time.Time `json:"created_at"`
	RecurringOverrideID *uint     `json:"recurring_override_id" gorm:"index"` // 指向其兑现的定期规则
	User                User      `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Transaction) TableName() string {
	return "transactions"
}
