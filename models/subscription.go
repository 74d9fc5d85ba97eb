package models

import (
	"time"
)

const (
	// PlanFree 免费版
	PlanFree = "free"
	// PlanPremium 高级版
	PlanPremium = "premium"
	// PlanPremiumPlus 高级版 Plus
	PlanPremiumPlus = "premium_plus"
)

// Subscription 应用自身的订阅计划（计费元数据，不是用户的消费记录）
type Subscription struct {
	ID                   uint       `json:"id" gorm:"primaryKey"`
	UserID               uint       `json:"user_id" gorm:"uniqueIndex;not null"`
	StripeCustomerID     string     `json:"stripe_customer_id" gorm:"size:64"`
	StripeSubscriptionID string     `json:"stripe_subscription_id" gorm:"size:64"`
	Plan                 string     `json:"plan" gorm:"size:20;not null;default:free"` // free/premium/premium_plus
	Status               string     `json:"status" gorm:"size:20"`
	CurrentPeriodEnd     *time.Time `json:"current_period_end"`
	CreatedAt            time.Time  `json:"created_at"`
	User                 User       `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Subscription) TableName() string {
	return "subscriptions"
}
