package scenes

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/decker502/tokvibes/pkg/config"
	"github.com/decker502/tokvibes/pkg/game"
	"github.com/decker502/tokvibes/pkg/utils"
)

// 背景与默认颜色
var (
	backgroundColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	ringColor       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	debugHoleColor  = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

// GameScene 回合场景
//
// 只读取 Round 快照进行绘制，所有状态修改都通过 Round 的方法完成。
// 键盘：R 重新开始，D 切换调试叠加层，M 静音，Esc 退出。
// 触屏：结束后点击重新开始，双击切换调试叠加层。
type GameScene struct {
	round    *game.Round
	audio    *game.AudioManager // 可为 nil
	settings *game.SettingsManager

	width, height float64
	fps           int
	ballColors    []color.RGBA
	face          text.Face

	showDebug bool
	quit      bool
	blink     timerBlink

	ticks int
	taps  *utils.DoubleTapDetector
}

// doubleTapFrames 双击判定窗口（帧）
const doubleTapFrames = 20

// NewGameScene 创建回合场景
//
// 参数：
//   - round: 回合控制器
//   - am: 音频管理器（可为 nil）
//   - sm: 设置管理器（可为 nil，调试开关默认关闭）
func NewGameScene(round *game.Round, am *game.AudioManager, sm *game.SettingsManager) *GameScene {
	cfg := round.Config()

	colors := make([]color.RGBA, len(cfg.Balls))
	for i, b := range cfg.Balls {
		c, err := config.ParseHexColor(b.Color)
		if err != nil {
			log.Printf("[GameScene] 小球 %q 颜色无效: %v (使用白色)", b.Label, err)
			c = color.RGBA{R: 255, G: 255, B: 255, A: 255}
		}
		colors[i] = c
	}

	s := &GameScene{
		round:      round,
		audio:      am,
		settings:   sm,
		width:      cfg.Width,
		height:     cfg.Height,
		fps:        cfg.FPS,
		ballColors: colors,
		face:       text.NewGoXFace(basicfont.Face7x13),
		blink:      timerBlink{on: true},
		taps:       utils.NewDoubleTapDetector(doubleTapFrames),
	}
	if sm != nil {
		s.showDebug = sm.GetSettings().ShowDebug
	}
	return s
}

// Update 处理输入并推进一帧
func (s *GameScene) Update(deltaTime float64) {
	s.handleInput()
	s.tick()
}

// handleInput 键盘命令
func (s *GameScene) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.Restart()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		s.ToggleDebug()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		s.ToggleSound()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.RequestQuit()
	}
	if tapped, _, _ := utils.IsJustTouchedOrClicked(); tapped {
		s.handleTap()
	}
}

// handleTap 触屏/鼠标点击
func (s *GameScene) handleTap() {
	if s.round.GameOver() {
		s.Restart()
		return
	}
	if s.taps.Tap(s.ticks) {
		s.ToggleDebug()
	}
}

// tick 推进回合与界面动画（不读取输入）
func (s *GameScene) tick() {
	s.ticks++
	s.round.Step()

	timer := s.round.Timer()
	s.blink.advance(timer.SecondsLeft, config.TimerCriticalSeconds, s.fps)

	if s.audio != nil {
		s.audio.Prune()
	}
}

// Restart 重新开始回合
func (s *GameScene) Restart() {
	if s.audio != nil {
		s.audio.StopAll()
	}
	s.round.Restart()
	s.blink = timerBlink{on: true}
	s.taps.Reset()
}

// ToggleDebug 切换调试叠加层（写入设置）
func (s *GameScene) ToggleDebug() {
	if s.settings != nil {
		s.showDebug = s.settings.ToggleShowDebug()
	} else {
		s.showDebug = !s.showDebug
	}
	log.Printf("[GameScene] 调试叠加层: %v", s.showDebug)
}

// ToggleSound 切换音效开关
func (s *GameScene) ToggleSound() {
	if s.settings == nil {
		return
	}
	enabled := !s.settings.GetSettings().SoundEnabled
	s.settings.SetSoundEnabled(enabled)
	if !enabled && s.audio != nil {
		s.audio.StopAll()
	}
	log.Printf("[GameScene] 音效: %v", enabled)
}

// RequestQuit 请求退出程序
func (s *GameScene) RequestQuit() {
	s.quit = true
}

// QuitRequested 实现 game.Quitter
func (s *GameScene) QuitRequested() bool {
	return s.quit
}

// ShowDebug 调试叠加层是否显示
func (s *GameScene) ShowDebug() bool {
	return s.showDebug
}

// Close 实现 game.Closer：停止音频并保存设置
func (s *GameScene) Close() {
	if s.audio != nil {
		s.audio.StopAll()
	}
	if s.settings != nil {
		if err := s.settings.Save(); err != nil {
			log.Printf("[GameScene] 警告: 保存设置失败: %v", err)
		}
	}
}

// Draw 绘制整帧
func (s *GameScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	snap := s.round.Snapshot()

	s.drawRings(screen, snap.Rings)
	s.drawBalls(screen, snap.Balls)
	if s.showDebug {
		s.drawDebug(screen, snap)
	}
	s.drawTimer(screen, snap.Timer)
	s.drawScorePills(screen, snap.Balls)
	if snap.GameOver {
		s.drawBanner(screen, snap)
	}
}

// ballColor 按小球 ID 取颜色
func (s *GameScene) ballColor(id int) color.RGBA {
	if id >= 0 && id < len(s.ballColors) {
		return s.ballColors[id]
	}
	return color.RGBA{R: 255, G: 255, B: 255, A: 255}
}

// drawText 以 (x, y) 为中心绘制文字
func (s *GameScene) drawText(screen *ebiten.Image, str string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, str, s.face, op)
}
