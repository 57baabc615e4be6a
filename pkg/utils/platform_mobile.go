//go:build mobile

package utils

// IsMobile 移动端构建恒为 true
// 场景据此显示触屏提示，应用跳过 F11 全屏切换
func IsMobile() bool {
	return true
}
