package scenes

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/decker502/tokvibes/pkg/config"
	"github.com/decker502/tokvibes/pkg/game"
)

// drawDebug 调试叠加层：活跃圆环的缺口弧线（红色）与帧信息
func (s *GameScene) drawDebug(screen *ebiten.Image, snap game.RoundSnapshot) {
	for _, r := range snap.Rings {
		if !r.Active {
			continue
		}
		pts := arcPoints(r.CenterX, r.CenterY, r.Radius, r.HoleStart, r.HoleEnd, config.DebugHoleSamples)
		strokePolyline(screen, pts, 5, debugHoleColor)
	}

	ebitenutil.DebugPrintAt(screen, debugText(snap, ebiten.ActualTPS()), 10, 10)
}

// debugText 调试信息文本
func debugText(snap game.RoundSnapshot, tps float64) string {
	displayed := 0
	for _, r := range snap.Rings {
		if r.Displayed {
			displayed++
		}
	}
	text := fmt.Sprintf("frame %d  tps %.1f\nrings %d (displayed %d)", snap.Frame, tps, len(snap.Rings), displayed)
	for _, b := range snap.Balls {
		text += fmt.Sprintf("\n%s pos (%.0f, %.0f) vel (%.2f, %.2f)", b.Label, b.X, b.Y, b.DX, b.DY)
	}
	return text
}
