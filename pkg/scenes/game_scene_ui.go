package scenes

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/tokvibes/pkg/components"
	"github.com/decker502/tokvibes/pkg/config"
	"github.com/decker502/tokvibes/pkg/game"
	"github.com/decker502/tokvibes/pkg/utils"
)

// 界面尺寸
const (
	scorePillWidth   = 120.0
	scorePillSpacing = 16.0
	timerArcWidth    = 4.0
)

var (
	timerBackground = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	pillBackground  = color.RGBA{R: 40, G: 40, B: 40, A: 220}
	overlayColor    = color.RGBA{R: 0, G: 0, B: 0, A: 160}
)

// drawTimer 绘制倒计时圆盘：剩余时间弧 + 秒数
// 危险时间段闪烁，熄灭时只显示红色秒数
func (s *GameScene) drawTimer(screen *ebiten.Image, t components.TimerSnapshot) {
	cx, cy := s.width/2, config.TimerCenterY
	label := fmt.Sprintf("%ds", t.SecondsLeft)
	clr := timerColor(t.RemainingSeconds, config.TimerCriticalSeconds)

	if t.SecondsLeft <= config.TimerCriticalSeconds && !s.blink.on {
		s.drawText(screen, label, cx, cy, color.RGBA{R: 255, A: 255})
		return
	}

	vector.DrawFilledCircle(screen, float32(cx), float32(cy), config.TimerRadius, timerBackground, true)
	if t.Progress > 0 {
		// 从正上方开始，逆时针缩短
		start := math.Pi / 2
		end := start + t.Progress*2*math.Pi
		pts := arcPoints(cx, cy, config.TimerRadius, start, end, arcSamples(config.TimerRadius, t.Progress*2*math.Pi))
		strokePolyline(screen, pts, timerArcWidth, clr)
	}
	s.drawText(screen, label, cx, cy, clr)
}

// drawScorePills 在底部居中绘制每个小球的计分胶囊
func (s *GameScene) drawScorePills(screen *ebiten.Image, balls []components.BallSnapshot) {
	if len(balls) == 0 {
		return
	}

	total := float64(len(balls))*scorePillWidth + float64(len(balls)-1)*scorePillSpacing
	x := (s.width - total) / 2
	y := s.height - config.ScorePillBottomMargin
	h := config.ScorePillHeight

	for _, b := range balls {
		c := s.ballColor(b.ID)
		r := float32(h / 2)

		vector.DrawFilledRect(screen, float32(x)+r, float32(y), float32(scorePillWidth)-2*r, float32(h), pillBackground, true)
		vector.DrawFilledCircle(screen, float32(x)+r, float32(y)+r, r, pillBackground, true)
		vector.DrawFilledCircle(screen, float32(x+scorePillWidth)-r, float32(y)+r, r, pillBackground, true)
		vector.DrawFilledCircle(screen, float32(x)+r, float32(y)+r, r*0.5, c, true)

		s.drawText(screen, fmt.Sprintf("%s: %d", b.Label, b.Score), x+scorePillWidth/2+r/2, y+h/2, color.White)
		x += scorePillWidth + scorePillSpacing
	}
}

// bannerText 回合结束横幅文字
func bannerText(snap game.RoundSnapshot) string {
	if snap.Winner.Tie {
		return fmt.Sprintf("Tie! (%s)", snap.EndReason)
	}
	return fmt.Sprintf("%s wins with %d! (%s)", snap.Winner.Label, snap.Winner.Score, snap.EndReason)
}

// drawBanner 回合结束遮罩与胜负横幅
func (s *GameScene) drawBanner(screen *ebiten.Image, snap game.RoundSnapshot) {
	vector.DrawFilledRect(screen, 0, 0, float32(s.width), float32(s.height), overlayColor, false)

	cy := s.height / 2
	clr := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if !snap.Winner.Tie {
		clr = s.ballColor(snap.Winner.BallID)
	}
	lines := utils.WrapText(bannerText(snap), s.face, s.width-2*bannerMargin)
	y := cy - float64(len(lines))*bannerLineHeight
	for _, line := range lines {
		s.drawText(screen, line, s.width/2, y, clr)
		y += bannerLineHeight
	}
	s.drawText(screen, restartHint(utils.IsMobile()), s.width/2, y+bannerLineHeight, color.White)
}

// 横幅排版
const (
	bannerMargin     = 40
	bannerLineHeight = 18
)

// restartHint 结束横幅下方的操作提示
func restartHint(mobile bool) string {
	if mobile {
		return "Tap to restart"
	}
	return "Press R to restart, Esc to quit"
}
