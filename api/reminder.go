package api

import (
	"strconv"
	"time"

	"oshilog/config"
	"oshilog/database"
	"oshilog/middleware"
	"oshilog/models"
	"oshilog/service"

	"github.com/gin-gonic/gin"
)

// ReminderHandler 支付提醒处理器
type ReminderHandler struct{}

// NewReminderHandler 创建支付提醒处理器
func NewReminderHandler() *ReminderHandler {
	return &ReminderHandler{}
}

// List 获取临期支付提醒
// @Summary 获取临期支付提醒
// @Description 列出未来 N 天内到期的预定收支与未兑现的定期发生
// @Tags 提醒
// @Produce json
// @Security BearerAuth
// @Param days query int false "提前天数，默认读配置"
// @Success 200 {object} Response{data=[]service.ReminderItem} "获取成功"
// @Failure 400 {object} Response "参数错误"
// @Router /api/v1/reminders [get]
func (h *ReminderHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	days := config.GetConfig().Reminder.LookaheadDays
	if s := c.Query("days"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			BadRequest(c, "days 必须为正整数")
			return
		}
		days = n
	}

	asOf := time.Now()
	reconciler := service.NewReconciler(database.NewStore(database.DB))
	views, err := reconciler.Reconcile(userID, asOf.AddDate(0, 0, -1), asOf.AddDate(0, 0, days))
	if err != nil {
		ServiceError(c, err, "提醒计算失败")
		return
	}
	Success(c, service.SelectReminders(views, asOf, days))
}

// SendDigest 发送提醒摘要邮件
// @Summary 发送提醒摘要邮件
// @Description 将当前临期提醒汇总成一封邮件发送到账号邮箱
// @Tags 提醒
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response "发送成功"
// @Failure 400 {object} Response "未绑定邮箱或无可提醒项"
// @Router /api/v1/reminders/send-digest [post]
func (h *ReminderHandler) SendDigest(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		NotFound(c, "用户不存在")
		return
	}
	if user.Email == "" {
		BadRequest(c, "账号未绑定邮箱")
		return
	}

	days := config.GetConfig().Reminder.LookaheadDays
	asOf := time.Now()
	reconciler := service.NewReconciler(database.NewStore(database.DB))
	views, err := reconciler.Reconcile(userID, asOf.AddDate(0, 0, -1), asOf.AddDate(0, 0, days))
	if err != nil {
		ServiceError(c, err, "提醒计算失败")
		return
	}
	items := service.SelectReminders(views, asOf, days)
	if len(items) == 0 {
		BadRequest(c, "近期没有需要提醒的支付")
		return
	}

	emailService := service.NewEmailService(&config.GetConfig().Email)
	if err := emailService.SendReminderDigest(user.Email, user.Username, items); err != nil {
		InternalError(c, SafeErrorMessage(err, "邮件发送失败"))
		return
	}
	SuccessWithMessage(c, "发送成功", gin.H{"count": len(items)})
}
