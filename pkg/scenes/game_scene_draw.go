package scenes

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/tokvibes/pkg/components"
	"github.com/decker502/tokvibes/pkg/utils"
)

// drawRings 绘制所有显示中的圆环
// 活跃圆环画一整段实心弧（缺口终点到缺口起点），淡出圆环按消融段逐段绘制
func (s *GameScene) drawRings(screen *ebiten.Image, rings []components.RingSnapshot) {
	for _, r := range rings {
		alpha := ringAlpha(r)
		if alpha <= 0 {
			continue
		}

		if r.State != components.RingFadingOut {
			s.strokeArc(screen, r, r.HoleEnd, r.HoleStart, withAlpha(ringColor, alpha))
			continue
		}

		for _, seg := range r.Segments {
			if !seg.Active {
				continue
			}
			s.strokeArc(screen, r, seg.StartAngle, seg.EndAngle, withAlpha(ringColor, alpha*seg.AlphaFactor))
		}
	}
}

// strokeArc 以圆环宽度描边一段弧
func (s *GameScene) strokeArc(screen *ebiten.Image, r components.RingSnapshot, start, end float64, clr color.Color) {
	pts := arcPoints(r.CenterX, r.CenterY, r.Radius, start, end, arcSamples(r.Radius, arcSpan(start, end)))
	strokePolyline(screen, pts, float32(r.Width), clr)
}

// strokePolyline 连接相邻点
func strokePolyline(screen *ebiten.Image, pts []components.Point, width float32, clr color.Color) {
	for i := 1; i < len(pts); i++ {
		vector.StrokeLine(screen,
			float32(pts[i-1].X), float32(pts[i-1].Y),
			float32(pts[i].X), float32(pts[i].Y),
			width, clr, true)
	}
}

// ballLabelGap 小球标签与球体上沿的距离
const ballLabelGap = 10

// drawBalls 绘制小球、拖尾与标签
// 拖尾越旧越透明
func (s *GameScene) drawBalls(screen *ebiten.Image, balls []components.BallSnapshot) {
	for _, b := range balls {
		c := s.ballColor(b.ID)

		n := len(b.Trail)
		for i, p := range b.Trail {
			alpha := utils.EaseInQuad(float64(i+1) / float64(n+1))
			vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(b.Radius), withAlpha(c, alpha*0.6), true)
		}

		vector.DrawFilledCircle(screen, float32(b.X), float32(b.Y), float32(b.Radius), c, true)
		s.drawText(screen, b.Label, b.X, b.Y-b.Radius-ballLabelGap, c)
	}
}
