package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scheduledRow 按模型列序构造一行预定收支
func scheduledRow(id uint, status string, estimated int64, actual interface{}) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "type", "is_oshi_related", "oshi_id", "estimated_amount",
		"actual_amount", "category", "memo", "scheduled_date", "status",
		"completed_transaction_id", "created_at", "updated_at",
	}).AddRow(id, 1, "expense", false, nil, estimated, actual, "イベント", "ライブチケット",
		time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC), status, nil, time.Now(), time.Now())
}

func TestScheduledHandler_Create(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `scheduled_transactions`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/scheduled", NewScheduledHandler().Create)

	body := `{"type":"expense","estimated_amount":15000,"category":"イベント","memo":"ライブチケット","scheduled_date":"2025-04-12"}`
	req := httptest.NewRequest("POST", "/scheduled", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "scheduled", data["status"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduledHandler_Confirm(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `scheduled_transactions`").
		WillReturnRows(scheduledRow(1, "scheduled", 15000, nil))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `scheduled_transactions`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/scheduled/:id/confirm", NewScheduledHandler().Confirm)

	body := `{"actual_amount":14800}`
	req := httptest.NewRequest("POST", "/scheduled/1/confirm", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "confirmed", data["status"])
	assert.Equal(t, float64(14800), data["actual_amount"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduledHandler_Complete(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	actual := int64(14800)
	mock.ExpectQuery("SELECT .* FROM `scheduled_transactions`").
		WillReturnRows(scheduledRow(1, "confirmed", 15000, actual))

	// 实记录与状态迁移同一事务
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `transactions`").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("UPDATE `scheduled_transactions`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/scheduled/:id/complete", NewScheduledHandler().Complete)

	req := httptest.NewRequest("POST", "/scheduled/1/complete", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "completed", data["status"])
	assert.Equal(t, float64(7), data["completed_transaction_id"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduledHandler_Complete_FromScheduled(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 未确认金额不能直接完成
	mock.ExpectQuery("SELECT .* FROM `scheduled_transactions`").
		WillReturnRows(scheduledRow(1, "scheduled", 15000, nil))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/scheduled/:id/complete", NewScheduledHandler().Complete)

	req := httptest.NewRequest("POST", "/scheduled/1/complete", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 409, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduledHandler_Cancel_FromCompleted(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// completed 是终态
	mock.ExpectQuery("SELECT .* FROM `scheduled_transactions`").
		WillReturnRows(scheduledRow(1, "completed", 15000, int64(14800)))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/scheduled/:id/cancel", NewScheduledHandler().Cancel)

	req := httptest.NewRequest("POST", "/scheduled/1/cancel", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 409, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduledHandler_Update_Completed(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `scheduled_transactions`").
		WillReturnRows(scheduledRow(1, "completed", 15000, int64(14800)))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.PUT("/scheduled/:id", NewScheduledHandler().Update)

	body := `{"estimated_amount":16000}`
	req := httptest.NewRequest("PUT", "/scheduled/1", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 409, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
