// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/tokvibes/pkg/config"
	"github.com/decker502/tokvibes/pkg/embedded"
	"github.com/decker502/tokvibes/pkg/game"
	"github.com/decker502/tokvibes/pkg/scenes"
	"github.com/decker502/tokvibes/pkg/systems"
	"github.com/decker502/tokvibes/pkg/utils"
)

// settingsAppName gdata 存储目录名
const settingsAppName = "tokvibes"

// audioSampleRate 音频上下文采样率
const audioSampleRate = 48000

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Overrides 命令行对模拟配置的覆盖（配置文件路径、圆环数、种子等）
	Overrides config.Overrides
	// Silent 不创建音频上下文（无声卡环境）
	Silent bool
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg          *config.SimulationConfig
	round        *game.Round
	settings     *game.SettingsManager
	sceneManager *game.SceneManager
	verbose      bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 初始化顺序：日志 → 模拟配置 → 设置（gdata）→ 音频上下文 → 音频管理器 → 回合 → 场景。
// 调用此函数前应先调用 embedded.Init()；未初始化时使用默认配置且没有歌曲。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	simCfg, err := config.LoadWithOverrides(embedded.FS(), cfg.Overrides)
	if err != nil {
		return nil, fmt.Errorf("模拟配置加载失败: %w", err)
	}
	log.Printf("[App] 配置: %d 个圆环 (显示 %d), %d 个小球, seed=%d",
		simCfg.RingCount, simCfg.RingsDisplayed, len(simCfg.Balls), simCfg.Seed)

	settings := game.OpenSettingsManager(settingsAppName)

	var audioContext *audio.Context
	if !cfg.Silent {
		audioContext = audio.NewContext(audioSampleRate)
	}
	audioManager := game.NewAudioManager(audioContext, settings)
	if data := embedded.FS(); data != nil {
		if err := audioManager.LoadSamples(data, config.DefaultSoundsDir); err != nil {
			log.Printf("[App] Warning: 采样加载失败: %v (使用合成音)", err)
		}
		songs, err := config.LoadSongsFS(data, config.DefaultSongsPattern)
		if err != nil {
			return nil, fmt.Errorf("歌曲加载失败: %w", err)
		}
		audioManager.SelectSong(songs, songRand(simCfg.Seed))
	}
	log.Printf("[App] AudioManager initialized")

	round, err := game.NewRound(simCfg)
	if err != nil {
		return nil, fmt.Errorf("回合创建失败: %w", err)
	}
	round.Subscribe(func(ev systems.CollisionEvent) {
		audioManager.HandleEvent(ev)
	})

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(name string) game.Scene {
		if name != scenes.SceneRound {
			return nil
		}
		return scenes.NewGameScene(round, audioManager, settings)
	})
	if !sceneManager.Load(scenes.SceneRound) {
		return nil, fmt.Errorf("场景创建失败: %s", scenes.SceneRound)
	}

	return &App{
		cfg:          simCfg,
		round:        round,
		settings:     settings,
		sceneManager: sceneManager,
		verbose:      cfg.Verbose,
	}, nil
}

// songRand 歌曲选择的随机源：固定种子时可复现
func songRand(seed int64) *rand.Rand {
	if seed != 0 {
		s := uint64(seed)
		return rand.New(rand.NewPCG(s, ^s))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Update 更新逻辑，每个 tick 调用一次
// 场景请求退出时返回 ebiten.Termination
func (a *App) Update() error {
	// 退出全屏后需要等待几帧才能正确设置窗口大小
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			w, h := a.WindowSize()
			ebiten.SetWindowSize(w, h)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏（移动端始终全屏）
	if !utils.IsMobile() && inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
		a.settings.SetFullscreen(ebiten.IsFullscreen())
	}

	a.sceneManager.Update(1.0 / float64(a.cfg.FPS))

	if a.sceneManager.QuitRequested() {
		a.Close()
		return ebiten.Termination
	}
	return nil
}

// Draw 绘制画面，每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸（等于模拟场地尺寸）
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.WindowSize()
}

// WindowSize 场地尺寸（像素）
func (a *App) WindowSize() (int, int) {
	return int(a.cfg.Width), int(a.cfg.Height)
}

// TPS 模拟帧率
func (a *App) TPS() int {
	return a.cfg.FPS
}

// Fullscreen 设置中保存的全屏偏好
func (a *App) Fullscreen() bool {
	return a.settings.GetSettings().Fullscreen
}

// Close 关闭场景（停止音频、保存设置）
// 窗口关闭与 Esc 退出都会调用，重复调用安全
func (a *App) Close() {
	a.sceneManager.Close()
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// Round 返回当前回合（工具与测试使用）
func (a *App) Round() *game.Round {
	return a.round
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
