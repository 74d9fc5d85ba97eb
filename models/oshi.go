package models

import (
	"time"
)

// Oshi 推し（应援对象）模型，支出可以关联到某个推し上做按对象统计
type Oshi struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Color     string    `json:"color" gorm:"size:20"` // 颜色代码，如 #ec4899
	CreatedAt time.Time `json:"created_at"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Oshi) TableName() string {
	return "oshi"
}
