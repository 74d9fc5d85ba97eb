package models

import (
	"time"
)

// Tag 标签模型
type Tag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Name      string    `json:"name" gorm:"size:50;not null"`
	Color     string    `json:"color" gorm:"size:20"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Tag) TableName() string {
	return "tags"
}

// TransactionTag 收支记录与标签的关联（联合主键，随任一侧删除级联清理）
type TransactionTag struct {
	TransactionID uint `json:"transaction_id" gorm:"primaryKey"`
	TagID         uint `json:"tag_id" gorm:"primaryKey"`
	Tag           Tag  `json:"-" gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE"`
}

func (TransactionTag) TableName() string {
	return "transaction_tags"
}

// RecurringTransactionTag 定期规则与标签的关联
type RecurringTransactionTag struct {
	RecurringTransactionID uint `json:"recurring_transaction_id" gorm:"primaryKey"`
	TagID                  uint `json:"tag_id" gorm:"primaryKey"`
	Tag                    Tag  `json:"-" gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE"`
}

func (RecurringTransactionTag) TableName() string {
	return "recurring_transaction_tags"
}
