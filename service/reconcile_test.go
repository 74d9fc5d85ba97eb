package service

import (
	"errors"
	"testing"
	"time"

	"oshilog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore 内存假存储，测试合并逻辑用
type fakeStore struct {
	owners       map[uint]bool
	rules        []models.RecurringTransaction
	transactions []models.Transaction
	scheduled    []models.ScheduledTransaction
	err          error
}

func (f *fakeStore) OwnerExists(owner uint) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.owners[owner], nil
}

func (f *fakeStore) RecurringRules(owner uint) ([]models.RecurringTransaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.RecurringTransaction
	for _, r := range f.rules {
		if r.UserID == owner {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) TransactionsInRange(owner uint, from, to time.Time) ([]models.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Transaction
	for _, tx := range f.transactions {
		if tx.UserID == owner && !tx.Date.Before(from) && !tx.Date.After(to) {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (f *fakeStore) ScheduledInRange(owner uint, from, to time.Time) ([]models.ScheduledTransaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.ScheduledTransaction
	for _, st := range f.scheduled {
		if st.UserID == owner && !st.ScheduledDate.Before(from) && !st.ScheduledDate.After(to) {
			out = append(out, st)
		}
	}
	return out, nil
}

func uintPtr(v uint) *uint { return &v }

func int64Ptr(v int64) *int64 { return &v }

func newFakeStore() *fakeStore {
	return &fakeStore{owners: map[uint]bool{1: true}}
}

func TestReconcile_OverrideSuppressesProjection(t *testing.T) {
	store := newFakeStore()
	store.rules = []models.RecurringTransaction{
		{ID: 10, UserID: 1, Type: models.TypeExpense, Amount: 1000, Category: models.CategoryCommunication,
			Frequency: models.FrequencyMonthly, DayOfMonth: intPtr(5), StartDate: date(2025, 1, 1)},
	}
	// 2 月的发生已兑现为实记录，3 月未兑现
	store.transactions = []models.Transaction{
		{ID: 100, UserID: 1, Type: models.TypeExpense, Amount: 980, Category: models.CategoryCommunication,
			Date: date(2025, 2, 5), RecurringOverrideID: uintPtr(10)},
	}

	r := NewReconciler(store)
	views, err := r.Reconcile(1, date(2025, 2, 1), date(2025, 3, 31))
	require.NoError(t, err)
	require.Len(t, views, 2)

	// 同一 (规则, 日期) 只出现一个视图
	var realized, projected int
	for _, v := range views {
		switch v.Provenance {
		case ProvenanceRealized:
			realized++
			assert.Equal(t, date(2025, 2, 5), v.Date)
			assert.Equal(t, int64(980), v.Amount)
		case ProvenanceProjected:
			projected++
			assert.Equal(t, date(2025, 3, 5), v.Date)
			assert.Equal(t, int64(1000), v.Amount)
			assert.Equal(t, uint(10), v.RecurringID)
		}
	}
	assert.Equal(t, 1, realized)
	assert.Equal(t, 1, projected)
}

func TestReconcile_ScheduledLifecycle(t *testing.T) {
	store := newFakeStore()
	store.scheduled = []models.ScheduledTransaction{
		{ID: 1, UserID: 1, Type: models.TypeExpense, EstimatedAmount: 5000, Category: models.CategoryEvent,
			ScheduledDate: date(2025, 3, 10), Status: models.ScheduledStatusScheduled},
		{ID: 2, UserID: 1, Type: models.TypeExpense, EstimatedAmount: 5000, ActualAmount: int64Ptr(4800),
			Category: models.CategoryEvent, ScheduledDate: date(2025, 3, 12), Status: models.ScheduledStatusConfirmed},
		// completed 的价值由关联实记录体现，不得重复计入
		{ID: 3, UserID: 1, Type: models.TypeExpense, EstimatedAmount: 3000, ActualAmount: int64Ptr(3000),
			Category: models.CategoryGoods, ScheduledDate: date(2025, 3, 15), Status: models.ScheduledStatusCompleted,
			CompletedTransactionID: uintPtr(200)},
		{ID: 4, UserID: 1, Type: models.TypeExpense, EstimatedAmount: 9999, Category: models.CategoryTour,
			ScheduledDate: date(2025, 3, 20), Status: models.ScheduledStatusCancelled},
	}
	store.transactions = []models.Transaction{
		{ID: 200, UserID: 1, Type: models.TypeExpense, Amount: 3000, Category: models.CategoryGoods, Date: date(2025, 3, 15)},
	}

	r := NewReconciler(store)
	views, err := r.Reconcile(1, date(2025, 3, 1), date(2025, 3, 31))
	require.NoError(t, err)
	require.Len(t, views, 3) // scheduled + confirmed + 关联实记录

	amounts := map[uint]int64{}
	for _, v := range views {
		if v.Provenance == ProvenanceScheduled {
			amounts[v.ScheduledID] = v.Amount
		}
	}
	assert.Equal(t, int64(5000), amounts[1]) // 未确认用预估金额
	assert.Equal(t, int64(4800), amounts[2]) // 已确认用实际金额
	_, hasCompleted := amounts[3]
	assert.False(t, hasCompleted)
	_, hasCancelled := amounts[4]
	assert.False(t, hasCancelled)
}

func TestReconcile_BadRuleSkippedWithoutAborting(t *testing.T) {
	store := newFakeStore()
	store.rules = []models.RecurringTransaction{
		// 非法规则：monthly 缺 day_of_month
		{ID: 1, UserID: 1, Type: models.TypeExpense, Amount: 500, Category: models.CategoryFood,
			Frequency: models.FrequencyMonthly, StartDate: date(2025, 1, 1)},
		{ID: 2, UserID: 1, Type: models.TypeExpense, Amount: 1000, Category: models.CategoryCommunication,
			Frequency: models.FrequencyMonthly, DayOfMonth: intPtr(1), StartDate: date(2025, 1, 1)},
	}

	r := NewReconciler(store)
	views, err := r.Reconcile(1, date(2025, 3, 1), date(2025, 3, 31))
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, uint(2), views[0].RecurringID)
}

func TestReconcile_Ordering(t *testing.T) {
	store := newFakeStore()
	store.transactions = []models.Transaction{
		{ID: 1, UserID: 1, Type: models.TypeExpense, Amount: 100, Category: models.CategoryFood,
			Date: date(2025, 3, 10), CreatedAt: date(2025, 3, 10)},
	}
	store.scheduled = []models.ScheduledTransaction{
		{ID: 2, UserID: 1, Type: models.TypeExpense, EstimatedAmount: 200, Category: models.CategoryEvent,
			ScheduledDate: date(2025, 3, 10), Status: models.ScheduledStatusScheduled, CreatedAt: date(2025, 3, 1)},
	}
	store.rules = []models.RecurringTransaction{
		{ID: 3, UserID: 1, Type: models.TypeExpense, Amount: 300, Category: models.CategoryRent,
			Frequency: models.FrequencyMonthly, DayOfMonth: intPtr(10), StartDate: date(2025, 1, 1), CreatedAt: date(2025, 1, 1)},
		{ID: 4, UserID: 1, Type: models.TypeExpense, Amount: 400, Category: models.CategoryUtilities,
			Frequency: models.FrequencyMonthly, DayOfMonth: intPtr(20), StartDate: date(2025, 1, 1), CreatedAt: date(2025, 1, 1)},
	}

	r := NewReconciler(store)
	views, err := r.Reconcile(1, date(2025, 3, 1), date(2025, 3, 31))
	require.NoError(t, err)
	require.Len(t, views, 4)

	// 日期降序优先
	assert.Equal(t, date(2025, 3, 20), views[0].Date)
	// 同日按来源优先级：realized → scheduled → projected
	assert.Equal(t, ProvenanceRealized, views[1].Provenance)
	assert.Equal(t, ProvenanceScheduled, views[2].Provenance)
	assert.Equal(t, ProvenanceProjected, views[3].Provenance)
}

func TestReconcile_Idempotent(t *testing.T) {
	store := newFakeStore()
	store.rules = []models.RecurringTransaction{
		{ID: 1, UserID: 1, Type: models.TypeExpense, Amount: 1000, Category: models.CategoryCommunication,
			Frequency: models.FrequencyMonthly, DayOfMonth: intPtr(15), StartDate: date(2025, 1, 1)},
	}
	store.scheduled = []models.ScheduledTransaction{
		{ID: 1, UserID: 1, Type: models.TypeExpense, EstimatedAmount: 2000, Category: models.CategoryEvent,
			ScheduledDate: date(2025, 3, 5), Status: models.ScheduledStatusScheduled},
	}

	r := NewReconciler(store)
	first, err := r.Reconcile(1, date(2025, 3, 1), date(2025, 3, 31))
	require.NoError(t, err)
	second, err := r.Reconcile(1, date(2025, 3, 1), date(2025, 3, 31))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestReconcile_UnknownOwner(t *testing.T) {
	r := NewReconciler(newFakeStore())

	_, err := r.Reconcile(99, date(2025, 3, 1), date(2025, 3, 31))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReconcile_StoreUnavailable(t *testing.T) {
	store := newFakeStore()
	store.err = errors.New("connection refused")

	r := NewReconciler(store)
	_, err := r.Reconcile(1, date(2025, 3, 1), date(2025, 3, 31))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestReconcile_InvalidWindow(t *testing.T) {
	r := NewReconciler(newFakeStore())

	_, err := r.Reconcile(1, date(2025, 3, 31), date(2025, 3, 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}
