package models

import (
	"errors"
	"time"
)

const (
	// FrequencyMonthly 每月
	FrequencyMonthly = "monthly"
	// FrequencyYearly 每年
	FrequencyYearly = "yearly"
)

// RecurringTransaction 定期收支规则模型
// 规则本身不落地逐次记录，具体发生日期由展开逻辑按需推导
type RecurringTransaction struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	UserID        uint       `json:"user_id" gorm:"index;not null"`
	Type          string     `json:"type" gorm:"size:10;not null"` // expense/income
	IsOshiRelated bool       `json:"is_oshi_related" gorm:"default:false"`
	OshiID        *uint      `json:"oshi_id" gorm:"index"`
	Amount        int64      `json:"amount" gorm:"not null"`
	Category      string     `json:"category" gorm:"size:50;not null"`
	Memo          string     `json:"memo" gorm:"size:255"`
	Frequency     string     `json:"frequency" gorm:"size:10;not null"` // monthly/yearly
	DayOfMonth    *int       `json:"day_of_month"`                      // monthly: 每月第几天 1-31
	Month         *int       `json:"month"`                             // yearly: 月份 1-12
	DayOfYear     *int       `json:"day_of_year"`                       // yearly: 该月第几天 1-31
	StartDate     time.Time  `json:"start_date" gorm:"type:date;not null"`
	EndDate       *time.Time `json:"end_date" gorm:"type:date"`
	CreatedAt     time.Time  `json:"created_at"`
	User          User       `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (RecurringTransaction) TableName() string {
	return "recurring_transactions"
}

// RecurrenceSchedule 校验通过后的规则视图，展开逻辑只消费这个结构，
// 不再逐处判断可空字段
type RecurrenceSchedule struct {
	Frequency string
	Day       int // monthly: 每月第几天；yearly: 该月第几天
	Month     int // yearly 有效，1-12
}

// Validate 校验频率相关字段的互斥约束
func (r *RecurringTransaction) Validate() error {
	switch r.Frequency {
	case FrequencyMonthly:
		if r.DayOfMonth == nil {
			return errors.New("monthly 规则必须设置 day_of_month")
		}
		if *r.DayOfMonth < 1 || *r.DayOfMonth > 31 {
			return errors.New("day_of_month 必须在 1-31 之间")
		}
		if r.Month != nil || r.DayOfYear != nil {
			return errors.New("monthly 规则不能设置 month/day_of_year")
		}
	case FrequencyYearly:
		if r.Month == nil || r.DayOfYear == nil {
			return errors.New("yearly 规则必须设置 month 和 day_of_year")
		}
		if *r.Month < 1 || *r.Month > 12 {
			return errors.New("month 必须在 1-12 之间")
		}
		if *r.DayOfYear < 1 || *r.DayOfYear > 31 {
			return errors.New("day_of_year 必须在 1-31 之间")
		}
		if r.DayOfMonth != nil {
			return errors.New("yearly 规则不能设置 day_of_month")
		}
	default:
		return errors.New("无效的 frequency，应为 monthly 或 yearly")
	}
	if r.EndDate != nil && r.EndDate.Before(r.StartDate) {
		return errors.New("end_date 不能早于 start_date")
	}
	return nil
}

// Schedule 返回校验后的规则视图，规则非法时返回错误
func (r *RecurringTransaction) Schedule() (RecurrenceSchedule, error) {
	if err := r.Validate(); err != nil {
		return RecurrenceSchedule{}, err
	}
	if r.Frequency == FrequencyMonthly {
		return RecurrenceSchedule{Frequency: FrequencyMonthly, Day: *r.DayOfMonth}, nil
	}
	return RecurrenceSchedule{Frequency: FrequencyYearly, Day: *r.DayOfYear, Month: *r.Month}, nil
}
