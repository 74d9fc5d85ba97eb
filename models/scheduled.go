package models

import (
	"time"
)

const (
	// ScheduledStatusScheduled 已排期，金额未确认
	ScheduledStatusScheduled = "scheduled"
	// ScheduledStatusConfirmed 金额已确认，尚未入账
	ScheduledStatusConfirmed = "confirmed"
	// ScheduledStatusCompleted 已入账，关联实记录（终态）
	ScheduledStatusCompleted = "completed"
	// ScheduledStatusCancelled 已取消（终态）
	ScheduledStatusCancelled = "cancelled"
)

// ScheduledTransaction 预定收支模型（未来的待确认支付）
type ScheduledTransaction struct {
	ID                     uint      `json:"id" gorm:"primaryKey"`
	UserID                 uint      `json:"user_id" gorm:"index;not null"`
	Type                   string    `json:"type" gorm:"size:10;not null"` // expense/income
	IsOshiRelated          bool      `json:"is_oshi_related" gorm:"default:false"`
	OshiID                 *uint     `json:"oshi_id" gorm:"index"`
	EstimatedAmount        int64     `json:"estimated_amount" gorm:"not null"`
	ActualAmount           *int64    `json:"actual_amount"` // 仅 confirmed/completed 状态有值
	Category               string    `json:"category" gorm:"size:50;not null"`
	Memo                   string    `json:"memo" gorm:"size:255"`
	ScheduledDate          time.Time `json:"scheduled_date" gorm:"type:date;not null;index"`
	Status                 string    `json:"status" gorm:"size:20;not null;index"`
	CompletedTransactionID *uint     `json:"completed_transaction_id"` // 仅 completed 状态有值
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
	User                   User      `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (ScheduledTransaction) TableName() string {
	return "scheduled_transactions"
}

// 状态机：scheduled → confirmed → completed，scheduled/confirmed 可取消，
// completed 和 cancelled 为终态
var scheduledTransitions = map[string][]string{
	ScheduledStatusScheduled: {ScheduledStatusConfirmed, ScheduledStatusCancelled},
	ScheduledStatusConfirmed: {ScheduledStatusCompleted, ScheduledStatusCancelled},
	ScheduledStatusCompleted: {},
	ScheduledStatusCancelled: {},
}

// CanTransitionTo 判断能否从当前状态迁移到目标状态
func (s *ScheduledTransaction) CanTransitionTo(next string) bool {
	for _, allowed := range scheduledTransitions[s.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// EffectiveAmount 预定项参与统计的金额：已确认用实际金额，否则用预估金额
func (s *ScheduledTransaction) EffectiveAmount() int64 {
	if s.ActualAmount != nil {
		return *s.ActualAmount
	}
	return s.EstimatedAmount
}
