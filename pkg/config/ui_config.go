package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// 窗口与界面布局常量
// 渲染层使用，物理核心不依赖这些值
const (
	// WindowTitle 窗口标题
	WindowTitle = "TokVibes"

	// TimerCenterY 倒计时圆盘中心Y坐标（屏幕坐标）
	TimerCenterY = 70.0

	// TimerRadius 倒计时圆盘半径
	TimerRadius = 32.0

	// TimerCriticalSeconds 剩余秒数小于等于该值时进入危险状态（红色、闪烁）
	TimerCriticalSeconds = 5

	// ScorePillBottomMargin 计分胶囊距屏幕底部的距离
	ScorePillBottomMargin = 60.0

	// ScorePillHeight 计分胶囊高度
	ScorePillHeight = 28.0

	// DebugHoleSamples 调试模式下绘制缺口弧线的采样点数
	DebugHoleSamples = 100
)

// ParseHexColor 解析 "#rrggbb" 或 "rrggbb" 格式的颜色
// 解析失败时返回错误，调用方通常回退为白色
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q: expected 6 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}, nil
}
