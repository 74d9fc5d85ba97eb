package service

import (
	"fmt"
	"time"

	"oshilog/models"
)

// lastDayOfMonth 返回指定年月的最后一天
func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// clampedDate 构造指定年月的日期，日超出当月天数时收敛到月末
// （如 day=31 在 4 月返回 4 月 30 日，这是约定行为，不是错误）
func clampedDate(year int, month time.Month, day int) time.Time {
	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// dateOnly 截断到日期（本地时区零点）
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// Expand 展开定期规则在窗口内的全部发生日期，严格升序、无重复。
// 返回的日期一定落在 [windowStart, windowEnd] 与 [start_date, end_date] 的交集内。
// 纯函数，不触碰存储。
func Expand(rule models.RecurringTransaction, windowStart, windowEnd time.Time) ([]time.Time, error) {
	if windowEnd.Before(windowStart) {
		return nil, fmt.Errorf("%w: 窗口结束早于开始", ErrValidation)
	}
	schedule, err := rule.Schedule()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}

	windowStart = dateOnly(windowStart)
	windowEnd = dateOnly(windowEnd)

	// 下界取窗口开始与规则生效日的较晚者，上界取窗口结束与规则截止日的较早者
	lower := windowStart
	if start := dateOnly(rule.StartDate); start.After(lower) {
		lower = start
	}
	upper := windowEnd
	if rule.EndDate != nil {
		if end := dateOnly(*rule.EndDate); end.Before(upper) {
			upper = end
		}
	}
	if upper.Before(lower) {
		return nil, nil
	}

	var dates []time.Time
	switch schedule.Frequency {
	case models.FrequencyMonthly:
		year, month := lower.Year(), lower.Month()
		for {
			occ := clampedDate(year, month, schedule.Day)
			if occ.After(upper) {
				break
			}
			if !occ.Before(lower) {
				dates = append(dates, occ)
			}
			month++
			if month > time.December {
				month = time.January
				year++
			}
		}
	case models.FrequencyYearly:
		for year := lower.Year(); ; year++ {
			occ := clampedDate(year, time.Month(schedule.Month), schedule.Day)
			if occ.After(upper) {
				break
			}
			if !occ.Before(lower) {
				dates = append(dates, occ)
			}
		}
	}
	return dates, nil
}
