package service

import (
	"testing"

	"oshilog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectReminders_WindowAndOrdering(t *testing.T) {
	asOf := date(2025, 3, 10)
	views := []TransactionView{
		{Provenance: ProvenanceScheduled, Type: models.TypeExpense, ScheduledID: 1, Amount: 5000,
			Category: models.CategoryEvent, Date: date(2025, 3, 12)},
		{Provenance: ProvenanceProjected, Type: models.TypeExpense, RecurringID: 2, Amount: 1000,
			Category: models.CategoryCommunication, Date: date(2025, 3, 10)},
		{Provenance: ProvenanceProjected, Type: models.TypeExpense, RecurringID: 3, Amount: 9000,
			Category: models.CategoryRent, Date: date(2025, 3, 12)},
		// realized 不产生提醒
		{Provenance: ProvenanceRealized, Type: models.TypeExpense, TransactionID: 4, Amount: 100,
			Category: models.CategoryFood, Date: date(2025, 3, 11)},
		// 窗口外
		{Provenance: ProvenanceScheduled, Type: models.TypeExpense, ScheduledID: 5, Amount: 7000,
			Category: models.CategoryTour, Date: date(2025, 3, 25)},
		{Provenance: ProvenanceScheduled, Type: models.TypeExpense, ScheduledID: 6, Amount: 7000,
			Category: models.CategoryTour, Date: date(2025, 3, 9)},
	}

	items := SelectReminders(views, asOf, 7)
	require.Len(t, items, 3)

	// 剩余天数升序，同天金额降序
	assert.Equal(t, uint(2), items[0].RecurringID)
	assert.Equal(t, 0, items[0].DaysLeft)
	assert.Equal(t, UrgencyDueToday, items[0].Urgency)

	assert.Equal(t, uint(3), items[1].RecurringID)
	assert.Equal(t, int64(9000), items[1].Amount)
	assert.Equal(t, 2, items[1].DaysLeft)
	assert.Equal(t, UrgencyThisWeek, items[1].Urgency)

	assert.Equal(t, uint(1), items[2].ScheduledID)
	assert.Equal(t, int64(5000), items[2].Amount)
}

func TestSelectReminders_InclusiveBounds(t *testing.T) {
	asOf := date(2025, 3, 10)
	views := []TransactionView{
		{Provenance: ProvenanceScheduled, ScheduledID: 1, Amount: 100, Date: date(2025, 3, 10)},
		{Provenance: ProvenanceScheduled, ScheduledID: 2, Amount: 100, Date: date(2025, 3, 17)},
	}

	items := SelectReminders(views, asOf, 7)
	require.Len(t, items, 2)
	assert.Equal(t, 0, items[0].DaysLeft)
	assert.Equal(t, 7, items[1].DaysLeft)
}

func TestSelectReminders_UrgencyBuckets(t *testing.T) {
	asOf := date(2025, 3, 1)
	views := []TransactionView{
		{Provenance: ProvenanceProjected, RecurringID: 1, Amount: 100, Date: date(2025, 3, 1)},
		{Provenance: ProvenanceProjected, RecurringID: 2, Amount: 100, Date: date(2025, 3, 5)},
		{Provenance: ProvenanceProjected, RecurringID: 3, Amount: 100, Date: date(2025, 3, 20)},
	}

	items := SelectReminders(views, asOf, 30)
	require.Len(t, items, 3)
	assert.Equal(t, UrgencyDueToday, items[0].Urgency)
	assert.Equal(t, UrgencyThisWeek, items[1].Urgency)
	assert.Equal(t, UrgencyLater, items[2].Urgency)
}

func TestSelectReminders_Empty(t *testing.T) {
	items := SelectReminders(nil, date(2025, 3, 1), 7)
	assert.Empty(t, items)
}
