package service

import (
	"sort"
	"time"

	"oshilog/models"
)

// CategoryTotal 按类别汇总的支出
type CategoryTotal struct {
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
}

// OshiTotal 按推し汇总的支出
type OshiTotal struct {
	OshiID uint  `json:"oshi_id"`
	Amount int64 `json:"amount"`
}

// BudgetSummary 一个统计窗口的汇总结果。
// 金额全程整数累加；MoMChangePercent 仅用于展示，上月无数据时
// 固定为 0 且 HasBaseline=false，调用方据此区分真实的 0% 变化。
type BudgetSummary struct {
	TotalExpense     int64           `json:"total_expense"`
	TotalIncome      int64           `json:"total_income"`
	Balance          int64           `json:"balance"` // 收入 - 支出
	CategoryTotals   []CategoryTotal `json:"category_totals"`
	OshiTotals       []OshiTotal     `json:"oshi_totals"`
	MoMChangePercent float64         `json:"mom_change_percent"` // 支出环比变化百分比
	HasBaseline      bool            `json:"has_baseline"`
}

// inWindow 判断日期是否落在 [start, end] 内（含两端）
func inWindow(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

// countsToward 视图是否参与统计：realized 和 scheduled 恒参与，
// projected 仅在 includeProjected 时参与（对应“含未确认”开关）
func countsToward(v TransactionView, includeProjected bool) bool {
	switch v.Provenance {
	case ProvenanceRealized, ProvenanceScheduled:
		return true
	case ProvenanceProjected:
		return includeProjected
	}
	return false
}

// Aggregate 对合并视图做窗口统计：收支总额、类别/推し支出分布、
// 支出环比。计算环比时传入的视图需同时覆盖当前窗口和上一个窗口。
// 纯函数，无副作用。
func Aggregate(views []TransactionView, windowStart, windowEnd time.Time, includeProjected bool) BudgetSummary {
	windowStart = dateOnly(windowStart)
	windowEnd = dateOnly(windowEnd)
	// 上一个统计窗口：从窗口开始回退一个自然月，到窗口开始前一天，
	// 窗口是自然月时即完整的上个月（2025-03 → 2025-02-01..2025-02-28）
	prevStart := windowStart.AddDate(0, -1, 0)
	prevEnd := windowStart.AddDate(0, 0, -1)

	summary := BudgetSummary{}
	categoryTotals := make(map[string]int64)
	oshiTotals := make(map[uint]int64)
	var prevExpense int64

	for _, v := range views {
		if !countsToward(v, includeProjected) {
			continue
		}

		if v.Type == models.TypeExpense && inWindow(v.Date, prevStart, prevEnd) {
			prevExpense += v.Amount
		}

		if !inWindow(v.Date, windowStart, windowEnd) {
			continue
		}
		switch v.Type {
		case models.TypeExpense:
			summary.TotalExpense += v.Amount
			categoryTotals[v.Category] += v.Amount
			if v.IsOshiRelated && v.OshiID != nil {
				oshiTotals[*v.OshiID] += v.Amount
			}
		case models.TypeIncome:
			summary.TotalIncome += v.Amount
		}
	}
	summary.Balance = summary.TotalIncome - summary.TotalExpense

	for category, amount := range categoryTotals {
		summary.CategoryTotals = append(summary.CategoryTotals, CategoryTotal{Category: category, Amount: amount})
	}
	sort.Slice(summary.CategoryTotals, func(i, j int) bool {
		a, b := summary.CategoryTotals[i], summary.CategoryTotals[j]
		if a.Amount != b.Amount {
			return a.Amount > b.Amount
		}
		return a.Category < b.Category
	})

	for oshiID, amount := range oshiTotals {
		summary.OshiTotals = append(summary.OshiTotals, OshiTotal{OshiID: oshiID, Amount: amount})
	}
	sort.Slice(summary.OshiTotals, func(i, j int) bool {
		a, b := summary.OshiTotals[i], summary.OshiTotals[j]
		if a.Amount != b.Amount {
			return a.Amount > b.Amount
		}
		return a.OshiID < b.OshiID
	})

	// 环比：上月支出为 0 时百分比固定为 0，绝不产生 NaN/Inf
	if prevExpense > 0 {
		summary.HasBaseline = true
		summary.MoMChangePercent = float64(summary.TotalExpense-prevExpense) / float64(prevExpense) * 100
	}

	return summary
}
