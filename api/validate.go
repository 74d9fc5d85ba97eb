package api

import (
	"time"

	"oshilog/database"
	"oshilog/models"

	"github.com/gin-gonic/gin"
)

// checkEntryCommon 校验收支记录的通用约束，不通过时写出错误响应并返回 false：
//   - type 必须为 expense/income
//   - 金额必须为正整数（最小货币单位）
//   - is_oshi_related 与 oshi_id 必须同时设置或同时为空
//   - 收入不允许关联推し（表单层约束，这里在写入前统一强制）
//   - 关联的推し必须存在且属于当前用户
func checkEntryCommon(c *gin.Context, userID uint, entryType string, isOshiRelated bool, oshiID *uint, amount int64) bool {
	if entryType != models.TypeExpense && entryType != models.TypeIncome {
		BadRequest(c, "type 必须为 expense 或 income")
		return false
	}
	if amount <= 0 {
		BadRequest(c, "金额必须为正整数")
		return false
	}
	if entryType == models.TypeIncome && (isOshiRelated || oshiID != nil) {
		BadRequest(c, "收入不能关联推し")
		return false
	}
	if isOshiRelated != (oshiID != nil) {
		BadRequest(c, "is_oshi_related 与 oshi_id 必须同时设置")
		return false
	}
	if oshiID != nil {
		var oshi models.Oshi
		if err := database.DB.Where("id = ? AND user_id = ?", *oshiID, userID).First(&oshi).Error; err != nil {
			BadRequest(c, "推し不存在或不属于当前用户")
			return false
		}
	}
	return true
}

// parseDateParam 解析 YYYY-MM-DD 日期参数
func parseDateParam(value string) (time.Time, bool) {
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// parseDateRange 解析 start/end 查询参数，未传时使用给定默认窗口
func parseDateRange(c *gin.Context, defaultStart, defaultEnd time.Time) (time.Time, time.Time, bool) {
	start, end := defaultStart, defaultEnd
	if s := c.Query("start"); s != "" {
		t, ok := parseDateParam(s)
		if !ok {
			BadRequest(c, "start 格式错误，应为: 2006-01-02")
			return start, end, false
		}
		start = t
	}
	if s := c.Query("end"); s != "" {
		t, ok := parseDateParam(s)
		if !ok {
			BadRequest(c, "end 格式错误，应为: 2006-01-02")
			return start, end, false
		}
		end = t
	}
	if end.Before(start) {
		BadRequest(c, "end 不能早于 start")
		return start, end, false
	}
	return start, end, true
}
