package service

import (
	"fmt"
	"strings"

	"oshilog/config"

	"gopkg.in/gomail.v2"
)

// EmailService 邮件服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SendReminderDigest 发送即将到期支付的提醒摘要邮件
func (s *EmailService) SendReminderDigest(toEmail, username string, items []ReminderItem) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("邮件服务未启用，请配置 EMAIL_ENABLED=true")
	}
	if len(items) == 0 {
		return fmt.Errorf("没有即将到期的支付，无需发送提醒")
	}

	subject := fmt.Sprintf("【推し活家計簿】%d 件支付即将到期", len(items))
	body := s.generateReminderDigestBody(username, items)

	return s.sendEmail(toEmail, subject, body)
}

// generateReminderDigestBody 生成提醒摘要邮件内容
func (s *EmailService) generateReminderDigestBody(username string, items []ReminderItem) string {
	var rows strings.Builder
	for _, item := range items {
		due := item.DueDate.Format("2006-01-02")
		daysText := fmt.Sprintf("%d 天后", item.DaysLeft)
		if item.DaysLeft == 0 {
			daysText = "今天"
		}
		rows.WriteString(fmt.Sprintf(`
            <tr>
                <td style="padding: 10px; border-bottom: 1px solid #eee;">%s</td>
                <td style="padding: 10px; border-bottom: 1px solid #eee;">%s</td>
                <td style="padding: 10px; border-bottom: 1px solid #eee; text-align: right;">¥%d</td>
                <td style="padding: 10px; border-bottom: 1px solid #eee;">%s（%s）</td>
            </tr>`, item.Category, item.Memo, item.Amount, due, daysText))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: 'Hiragino Sans', 'Microsoft YaHei', Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #ec4899, #8b5cf6); color: white; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { padding: 30px; }
        .content p { color: #333; line-height: 1.8; margin: 0 0 20px; }
        table { width: 100%%; border-collapse: collapse; font-size: 14px; color: #333; }
        th { text-align: left; padding: 10px; background: #f8f9fa; color: #6c757d; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>🎀 推し活家計簿</h1>
        </div>
        <div class="content">
            <p><strong>%s</strong> さん，您好！</p>
            <p>以下支付即将到期，请注意安排：</p>
            <table>
                <tr><th>类别</th><th>备注</th><th>金额</th><th>到期日</th></tr>
                %s
            </table>
        </div>
        <div class="footer">
            <p>此邮件由系统自动发送，请勿回复</p>
            <p>© 推し活家計簿 - 您的推し活支出管理助手</p>
        </div>
    </div>
</body>
</html>
`, username, rows.String())
}

// sendEmail 发送邮件
func (s *EmailService) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	return nil
}
