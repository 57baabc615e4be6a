package main

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/tokvibes/pkg/components"
	"github.com/decker502/tokvibes/pkg/config"
	"github.com/decker502/tokvibes/pkg/utils"
)

// cellAspect 终端字符格的高宽比
const cellAspect = 2.0

// hudRows 顶部状态栏占用的行数
const hudRows = 1

// viewport 场地像素坐标到终端字符格的映射
// 保持场地宽高比并居中
type viewport struct {
	scaleX, scaleY float64
	offX, offY     float64
}

// newViewport 为 cols×rows 的终端创建映射（顶部留出状态栏）
func newViewport(worldW, worldH float64, cols, rows int) viewport {
	rows -= hudRows
	if cols <= 0 || rows <= 0 || worldW <= 0 || worldH <= 0 {
		return viewport{}
	}
	scale := math.Min(float64(cols)/worldW, float64(rows)*cellAspect/worldH)
	v := viewport{scaleX: scale, scaleY: scale / cellAspect}
	v.offX = (float64(cols) - worldW*v.scaleX) / 2
	v.offY = float64(hudRows) + (float64(rows)-worldH*v.scaleY)/2
	return v
}

// toCell 世界坐标转字符格坐标
func (v viewport) toCell(x, y float64) (int, int) {
	return int(math.Floor(v.offX + x*v.scaleX)), int(math.Floor(v.offY + y*v.scaleY))
}

// ringSamples 在终端上描出一圈所需的采样数
func (v viewport) ringSamples(radius float64) int {
	n := int(utils.TwoPi * radius * v.scaleX * 2)
	if n < 16 {
		n = 16
	}
	return n
}

// ringSolidAt 判断圆环在角度 a 处是否有实体弧
// 淡出中的圆环只保留尚未消融的段
func ringSolidAt(r components.RingSnapshot, a float64) bool {
	switch r.State {
	case components.RingDisplayedActive:
		return !utils.AngleInArc(a, r.HoleStart, r.HoleEnd)
	case components.RingFadingOut:
		for _, seg := range r.Segments {
			if seg.Active && utils.AngleInArc(a, seg.StartAngle, seg.EndAngle) {
				return true
			}
		}
	}
	return false
}

// ringRune 按淡入淡出进度选择字符，越透明越稀疏
func ringRune(r components.RingSnapshot) rune {
	switch {
	case r.State == components.RingFadingOut:
		return '·'
	case r.FadeInProgress < 0.5:
		return '∙'
	default:
		return '•'
	}
}

// ballStyle 解析小球颜色为终端样式，无效颜色使用默认前景色
func ballStyle(spec config.BallSpec) tcell.Style {
	c, err := config.ParseHexColor(spec.Color)
	if err != nil {
		return tcell.StyleDefault.Bold(true)
	}
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))).Bold(true)
}

// timerStyle 剩余时间进入警告区间后变红
func timerStyle(secondsLeft float64) tcell.Style {
	if secondsLeft <= config.TimerCriticalSeconds {
		return tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	}
	return tcell.StyleDefault.Foreground(tcell.ColorWhite)
}
