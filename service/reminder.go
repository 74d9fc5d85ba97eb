package service

import (
	"sort"
	"time"
)

// 紧迫度标签，按剩余天数分桶
const (
	// UrgencyDueToday 今天到期
	UrgencyDueToday = "due_today"
	// UrgencyThisWeek 7 天内到期
	UrgencyThisWeek = "this_week"
	// UrgencyLater 更晚
	UrgencyLater = "later"
)

// ReminderItem 即将到期的支付提醒
type ReminderItem struct {
	Source      string    `json:"source"` // scheduled/projected
	ScheduledID uint      `json:"scheduled_id,omitempty"`
	RecurringID uint      `json:"recurring_id,omitempty"`
	Type        string    `json:"type"`
	Amount      int64     `json:"amount"`
	Category    string    `json:"category"`
	Memo        string    `json:"memo,omitempty"`
	DueDate     time.Time `json:"due_date"`
	DaysLeft    int       `json:"days_left"`
	Urgency     string    `json:"urgency"`
}

// SelectReminders 从合并视图中筛出 [asOf, asOf+lookaheadDays] 内的
// 预定收支与未兑现的定期发生，按剩余天数升序、同天按金额降序排列。
// 无状态，每次调用重新计算；“已处理”由调用方通过状态迁移或兑现表达。
func SelectReminders(views []TransactionView, asOf time.Time, lookaheadDays int) []ReminderItem {
	asOf = dateOnly(asOf)
	deadline := asOf.AddDate(0, 0, lookaheadDays)

	items := make([]ReminderItem, 0)
	for _, v := range views {
		if v.Provenance != ProvenanceScheduled && v.Provenance != ProvenanceProjected {
			continue
		}
		if v.Date.Before(asOf) || v.Date.After(deadline) {
			continue
		}
		daysLeft := int(v.Date.Sub(asOf).Hours() / 24)
		items = append(items, ReminderItem{
			Source:      v.Provenance,
			ScheduledID: v.ScheduledID,
			RecurringID: v.RecurringID,
			Type:        v.Type,
			Amount:      v.Amount,
			Category:    v.Category,
			Memo:        v.Memo,
			DueDate:     v.Date,
			DaysLeft:    daysLeft,
			Urgency:     urgencyOf(daysLeft),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].DaysLeft != items[j].DaysLeft {
			return items[i].DaysLeft < items[j].DaysLeft
		}
		return items[i].Amount > items[j].Amount
	})
	return items
}

func urgencyOf(daysLeft int) string {
	switch {
	case daysLeft == 0:
		return UrgencyDueToday
	case daysLeft <= 7:
		return UrgencyThisWeek
	default:
		return UrgencyLater
	}
}
