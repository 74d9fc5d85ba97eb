package service

import (
	"fmt"
	"log"
	"sort"
	"time"

	"oshilog/models"
)

// 合并视图的来源标记
const (
	// ProvenanceRealized 已入账的实记录
	ProvenanceRealized = "realized"
	// ProvenanceScheduled 预定收支（scheduled/confirmed）
	ProvenanceScheduled = "scheduled"
	// ProvenanceProjected 定期规则推导出的未兑现发生
	ProvenanceProjected = "projected"
)

// provenance 排序优先级：realized > scheduled > projected
var provenanceRank = map[string]int{
	ProvenanceRealized:  0,
	ProvenanceScheduled: 1,
	ProvenanceProjected: 2,
}

// TransactionView 合并后的收支视图，供统计、提醒和展示消费。
// 非实记录的 ID 字段为零值，Provenance 标明数据来源。
type TransactionView struct {
	Provenance    string    `json:"provenance"` // realized/scheduled/projected
	Type          string    `json:"type"`       // expense/income
	IsOshiRelated bool      `json:"is_oshi_related"`
	OshiID        *uint     `json:"oshi_id,omitempty"`
	Amount        int64     `json:"amount"`
	Category      string    `json:"category"`
	Memo          string    `json:"memo,omitempty"`
	Date          time.Time `json:"date"`
	TransactionID uint      `json:"transaction_id,omitempty"` // realized 视图对应的实记录
	RecurringID   uint      `json:"recurring_id,omitempty"`   // projected 视图对应的规则
	ScheduledID   uint      `json:"scheduled_id,omitempty"`   // scheduled 视图对应的预定项
	CreatedAt     time.Time `json:"created_at"`
}

// Store 合并视图所需的存储读取能力，全部按 owner 限定行级可见性。
// gorm 实现见 database 包，测试用内存假实现。
type Store interface {
	// OwnerExists 判断用户是否存在
	OwnerExists(owner uint) (bool, error)
	// RecurringRules 取用户全部定期规则
	RecurringRules(owner uint) ([]models.RecurringTransaction, error)
	// TransactionsInRange 取窗口内的实记录（含定期兑现记录）
	TransactionsInRange(owner uint, from, to time.Time) ([]models.Transaction, error)
	// ScheduledInRange 取窗口内的预定收支
	ScheduledInRange(owner uint, from, to time.Time) ([]models.ScheduledTransaction, error)
}

// Reconciler 把实记录、预定收支和定期规则的推导发生合并成统一视图
type Reconciler struct {
	store Store
}

// NewReconciler 创建合并器
func NewReconciler(store Store) *Reconciler {
	return &Reconciler{store: store}
}

// Reconcile 合并窗口内的全部收支视图：
//   - 实记录原样进入，标记 realized
//   - 定期规则逐条展开，已有兑现记录的发生日不再推导，其余标记 projected；
//     非法规则记录警告后跳过，不中断整个请求
//   - scheduled/confirmed 状态的预定项标记 scheduled，金额取实际值或预估值；
//     completed 的价值已体现在其关联实记录上，cancelled 不参与，二者均跳过
//
// 排序：日期降序 → 来源优先级（realized、scheduled、projected）→ 创建时间 → ID。
// 相同输入且无中间写入时结果一致（存储状态的纯函数）。
func (r *Reconciler) Reconcile(owner uint, windowStart, windowEnd time.Time) ([]TransactionView, error) {
	if windowEnd.Before(windowStart) {
		return nil, fmt.Errorf("%w: 窗口结束早于开始", ErrValidation)
	}

	exists, err := r.store.OwnerExists(owner)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: 用户不存在", ErrNotFound)
	}

	transactions, err := r.store.TransactionsInRange(owner, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	views := make([]TransactionView, 0, len(transactions))

	// 实记录 + 兑现索引：(规则ID, 日期) → 已兑现
	overridden := make(map[uint]map[string]bool)
	for _, tx := range transactions {
		views = append(views, TransactionView{
			Provenance:    ProvenanceRealized,
			Type:          tx.Type,
			IsOshiRelated: tx.IsOshiRelated,
			OshiID:        tx.OshiID,
			Amount:        tx.Amount,
			Category:      tx.Category,
			Memo:          tx.Memo,
			Date:          dateOnly(tx.Date),
			TransactionID: tx.ID,
			CreatedAt:     tx.CreatedAt,
		})
		if tx.RecurringOverrideID != nil {
			ruleID := *tx.RecurringOverrideID
			if overridden[ruleID] == nil {
				overridden[ruleID] = make(map[string]bool)
			}
			overridden[ruleID][dateOnly(tx.Date).Format("2006-01-02")] = true
		}
	}

	// 定期规则展开为 projected 视图，坏规则隔离处理
	rules, err := r.store.RecurringRules(owner)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	for _, rule := range rules {
		dates, err := Expand(rule, windowStart, windowEnd)
		if err != nil {
			log.Printf("警告: 用户 %d 的定期规则 %d 无效，已跳过: %v", owner, rule.ID, err)
			continue
		}
		for _, occ := range dates {
			if overridden[rule.ID][occ.Format("2006-01-02")] {
				continue
			}
			views = append(views, TransactionView{
				Provenance:    ProvenanceProjected,
				Type:          rule.Type,
				IsOshiRelated: rule.IsOshiRelated,
				OshiID:        rule.OshiID,
				Amount:        rule.Amount,
				Category:      rule.Category,
				Memo:          rule.Memo,
				Date:          occ,
				RecurringID:   rule.ID,
				CreatedAt:     rule.CreatedAt,
			})
		}
	}

	// 预定收支
	scheduled, err := r.store.ScheduledInRange(owner, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	for _, st := range scheduled {
		if st.Status != models.ScheduledStatusScheduled && st.Status != models.ScheduledStatusConfirmed {
			continue
		}
		views = append(views, TransactionView{
			Provenance:    ProvenanceScheduled,
			Type:          st.Type,
			IsOshiRelated: st.IsOshiRelated,
			OshiID:        st.OshiID,
			Amount:        st.EffectiveAmount(),
			Category:      st.Category,
			Memo:          st.Memo,
			Date:          dateOnly(st.ScheduledDate),
			ScheduledID:   st.ID,
			CreatedAt:     st.CreatedAt,
		})
	}

	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i], views[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if provenanceRank[a.Provenance] != provenanceRank[b.Provenance] {
			return provenanceRank[a.Provenance] < provenanceRank[b.Provenance]
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return viewID(a) < viewID(b)
	})

	return views, nil
}

// viewID 取视图对应实体的 ID 作最终平序依据
func viewID(v TransactionView) uint {
	switch v.Provenance {
	case ProvenanceRealized:
		return v.TransactionID
	case ProvenanceScheduled:
		return v.ScheduledID
	default:
		return v.RecurringID
	}
}
