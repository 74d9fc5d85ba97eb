package api

import (
	"time"

	"oshilog/config"
	"oshilog/database"
	"oshilog/middleware"
	"oshilog/service"

	"github.com/gin-gonic/gin"
)

// DashboardHandler 看板处理器
type DashboardHandler struct{}

// NewDashboardHandler 创建看板处理器
func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// DashboardResponse 月度看板响应
type DashboardResponse struct {
	Month     string                 `json:"month"`
	Summary   service.BudgetSummary  `json:"summary"`
	Reminders []service.ReminderItem `json:"reminders"`
}

// parseMonthParam 解析 month 参数（YYYY-MM），缺省为当前自然月
func parseMonthParam(c *gin.Context) (time.Time, time.Time, string, bool) {
	month := c.Query("month")
	if month == "" {
		now := time.Now()
		month = now.Format("2006-01")
	}
	start, err := time.Parse("2006-01", month)
	if err != nil {
		BadRequest(c, "month 格式错误，应为: 2006-01")
		return time.Time{}, time.Time{}, "", false
	}
	end := start.AddDate(0, 1, -1)
	return start, end, month, true
}

// Dashboard 获取月度看板
// @Summary 获取月度看板
// @Description 合并实记录、预定收支与定期发生，返回当月收支汇总、类别与推し支出分布、支出环比及临期提醒
// @Tags 看板
// @Produce json
// @Security BearerAuth
// @Param month query string false "统计月份，格式 2006-01，默认当月"
// @Param include_projected query string false "是否将未兑现的定期发生计入统计，默认 true"
// @Success 200 {object} Response{data=DashboardResponse} "获取成功"
// @Failure 400 {object} Response "参数错误"
// @Router /api/v1/dashboard [get]
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	monthStart, monthEnd, month, ok := parseMonthParam(c)
	if !ok {
		return
	}
	includeProjected := c.DefaultQuery("include_projected", "true") != "false"

	// 环比需要上月数据，合并窗口向前多取一个自然月
	prevStart := monthStart.AddDate(0, -1, 0)
	reconciler := service.NewReconciler(database.NewStore(database.DB))
	views, err := reconciler.Reconcile(userID, prevStart, monthEnd)
	if err != nil {
		ServiceError(c, err, "看板计算失败")
		return
	}

	summary := service.Aggregate(views, monthStart, monthEnd, includeProjected)

	lookahead := config.GetConfig().Reminder.LookaheadDays
	reminders := service.SelectReminders(views, time.Now(), lookahead)

	Success(c, DashboardResponse{
		Month:     month,
		Summary:   summary,
		Reminders: reminders,
	})
}

// Timeline 获取合并时间线
// @Summary 获取合并时间线
// @Description 返回窗口内实记录、预定收支与定期发生的合并视图，按日期倒序
// @Tags 看板
// @Produce json
// @Security BearerAuth
// @Param start query string false "起始日期，默认当月第一天"
// @Param end query string false "结束日期，默认当月最后一天"
// @Param include_projected query string false "是否包含未兑现的定期发生，默认 true"
// @Success 200 {object} Response{data=[]service.TransactionView} "获取成功"
// @Failure 400 {object} Response "参数错误"
// @Router /api/v1/timeline [get]
func (h *DashboardHandler) Timeline(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	start, end, ok := parseDateRange(c, monthStart, monthStart.AddDate(0, 1, -1))
	if !ok {
		return
	}
	includeProjected := c.DefaultQuery("include_projected", "true") != "false"

	reconciler := service.NewReconciler(database.NewStore(database.DB))
	views, err := reconciler.Reconcile(userID, start, end)
	if err != nil {
		ServiceError(c, err, "时间线计算失败")
		return
	}
	if !includeProjected {
		filtered := make([]service.TransactionView, 0, len(views))
		for _, v := range views {
			if v.Provenance != service.ProvenanceProjected {
				filtered = append(filtered, v)
			}
		}
		views = filtered
	}
	Success(c, views)
}
