package config

// SafeErrorMessage release 模式下隐藏内部错误详情，只返回 fallback；
// debug 模式（或配置未初始化的开发环境）返回原始错误信息
func SafeErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if GlobalConfig != nil && GlobalConfig.Server.Mode == "release" {
		return fallback
	}
	return err.Error()
}
