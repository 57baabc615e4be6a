package scenes

import (
	"image/color"
	"math"

	"github.com/decker502/tokvibes/pkg/components"
	"github.com/decker502/tokvibes/pkg/utils"
)

// arcPoints 采样圆弧上的点，从 start 逆时针（角度递增）到 end
// end 小于 start 时视为跨越 0 弧度；samples 为线段数，至少为 1
func arcPoints(cx, cy, r, start, end float64, samples int) []components.Point {
	if samples < 1 {
		samples = 1
	}
	start = utils.NormalizeAngle(start)
	end = utils.NormalizeAngle(end)
	if end <= start {
		end += utils.TwoPi
	}

	pts := make([]components.Point, 0, samples+1)
	step := (end - start) / float64(samples)
	for i := 0; i <= samples; i++ {
		x, y := utils.PointOnCircle(cx, cy, r, start+step*float64(i))
		pts = append(pts, components.Point{X: x, Y: y})
	}
	return pts
}

// arcSamples 按弧长估算采样线段数（约每 4 像素一段）
func arcSamples(r, span float64) int {
	return max(2, int(math.Ceil(r*span/4)))
}

// arcSpan 从 start 逆时针到 end 的弧度
func arcSpan(start, end float64) float64 {
	span := utils.NormalizeAngle(end - start)
	if span == 0 {
		return utils.TwoPi
	}
	return span
}

// ringAlpha 圆环整体透明度
//
// 淡入使用 EaseOutCubic，淡出使用 1-EaseInCubic；未显示或已退役的圆环不绘制。
func ringAlpha(r components.RingSnapshot) float64 {
	switch r.State {
	case components.RingDisplayedActive:
		return utils.EaseOutCubic(utils.Clamp01(r.FadeInProgress))
	case components.RingFadingOut:
		return 1 - utils.EaseInCubic(utils.Clamp01(r.FadeOutProgress))
	default:
		return 0
	}
}

// withAlpha 返回带透明度的非预乘颜色
func withAlpha(c color.RGBA, alpha float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(255 * utils.Clamp01(alpha)))}
}

// 倒计时颜色
var (
	timerBaseColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// timerColor 倒计时颜色：阈值以上为白色，以下从橙色渐变到红色
func timerColor(secondsRemaining, threshold float64) color.RGBA {
	if threshold <= 0 || secondsRemaining > threshold {
		return timerBaseColor
	}
	intensity := utils.Clamp01(1 - secondsRemaining/threshold)
	return color.RGBA{
		R: 255,
		G: uint8(utils.Lerp(165, 0, intensity)),
		B: uint8(utils.Lerp(30, 0, intensity)),
		A: 255,
	}
}

// timerBlink 危险时间段的闪烁状态，剩余时间越少闪烁越快
type timerBlink struct {
	counter int
	on      bool
}

// advance 推进一帧
func (b *timerBlink) advance(secondsLeft, threshold, fps int) {
	if threshold <= 0 || secondsLeft > threshold {
		b.on = true
		b.counter = 0
		return
	}

	rate := int(15*(1-float64(secondsLeft)/float64(threshold))) + 1
	b.counter++
	if b.counter >= max(1, fps/rate) {
		b.on = !b.on
		b.counter = 0
	}
}
