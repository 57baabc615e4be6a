// tokvibes-tui 在终端中运行圆环逃逸模拟
//
// 使用 tcell 绘制，beep 扬声器发声（合成音与歌曲音符）。
//
//	go run ./cmd/tokvibes-tui
//	go run ./cmd/tokvibes-tui -c 20 -d 8 -seed 42 -silent
//
// 按键：r 重新开始，m 静音，q / Esc 退出。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	sfx "github.com/decker502/tokvibes/internal/audio"
	"github.com/decker502/tokvibes/pkg/components"
	"github.com/decker502/tokvibes/pkg/config"
	"github.com/decker502/tokvibes/pkg/game"
	"github.com/decker502/tokvibes/pkg/systems"
	"github.com/decker502/tokvibes/pkg/utils"
)

var (
	circles   = flag.Int("c", 0, "圆环总数（0 使用配置值）")
	displayed = flag.Int("d", 0, "同时显示的圆环数（0 使用配置值）")
	cfgPath   = flag.String("config", "", "外部模拟配置文件")
	songsGlob = flag.String("songs", config.DefaultSongsPattern, "歌曲文件匹配模式（相对当前目录）")
	seed      = flag.Int64("seed", 0, "随机种子（0 表示按时间播种）")
	silent    = flag.Bool("silent", false, "不初始化扬声器")
	logFile   = flag.String("log", "", "日志输出文件（终端被占用，默认丢弃日志）")
)

func main() {
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "无法创建日志文件: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadWithOverrides(nil, config.Overrides{
		Path:      *cfgPath,
		Circles:   *circles,
		Displayed: *displayed,
		Seed:      *seed,
	})
	if err != nil {
		return fmt.Errorf("配置无效: %w", err)
	}

	round, err := game.NewRound(cfg)
	if err != nil {
		return fmt.Errorf("回合创建失败: %w", err)
	}

	var out *speakerOutput
	if !*silent {
		out, err = newSpeakerOutput()
		if err != nil {
			log.Printf("[TUI] Warning: 扬声器初始化失败: %v (静音运行)", err)
			out = nil
		} else {
			defer out.Close()
		}
	}

	// 终端版没有 Ebitengine 音频上下文：AudioManager 只负责选音，由扬声器发声
	settings, _ := game.NewSettingsManager(nil)
	am := game.NewAudioManager(nil, settings)
	if songs, err := config.LoadSongsFS(os.DirFS("."), *songsGlob); err != nil {
		log.Printf("[TUI] Warning: 歌曲加载失败: %v", err)
	} else {
		am.SelectSong(songs, songRand(cfg.Seed))
	}
	round.Subscribe(func(ev systems.CollisionEvent) {
		out.play(am.HandleEvent(ev), am.LastNote())
	})

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()
	screen.Clear()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(cfg.FPS))
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					return nil
				}
				if ev.Key() != tcell.KeyRune {
					break
				}
				switch ev.Rune() {
				case 'q':
					return nil
				case 'r':
					round.Restart()
				case 'm':
					settings.SetSoundEnabled(!settings.GetSettings().SoundEnabled)
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			round.Step()
			draw(screen, round, settings.GetSettings().SoundEnabled)
		}
	}
}

// songRand 固定种子时歌曲选择可复现
func songRand(seed int64) *rand.Rand {
	s := uint64(seed)
	if seed == 0 {
		s = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(s, ^s))
}

// draw 绘制一帧
func draw(screen tcell.Screen, round *game.Round, soundOn bool) {
	screen.Clear()
	cfg := round.Config()
	snap := round.Snapshot()

	cols, rows := screen.Size()
	vp := newViewport(cfg.Width, cfg.Height, cols, rows)

	for _, r := range snap.Rings {
		if r.State != components.RingDisplayedActive && r.State != components.RingFadingOut {
			continue
		}
		style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
		ch := ringRune(r)
		n := vp.ringSamples(r.Radius)
		for i := 0; i < n; i++ {
			a := utils.TwoPi * float64(i) / float64(n)
			if !ringSolidAt(r, a) {
				continue
			}
			x, y := utils.PointOnCircle(r.CenterX, r.CenterY, r.Radius, a)
			cx, cy := vp.toCell(x, y)
			screen.SetContent(cx, cy, ch, nil, style)
		}
	}

	for _, b := range snap.Balls {
		style := tcell.StyleDefault
		if b.ID < len(cfg.Balls) {
			style = ballStyle(cfg.Balls[b.ID])
		}
		cx, cy := vp.toCell(b.X, b.Y)
		screen.SetContent(cx, cy, '●', nil, style)
	}

	drawHUD(screen, snap, soundOn)
	screen.Show()
}

// drawHUD 顶部状态栏：计时、比分、结果
func drawHUD(screen tcell.Screen, snap game.RoundSnapshot, soundOn bool) {
	x := drawString(screen, 0, 0, fmt.Sprintf(" %2.0fs ", snap.Timer.SecondsLeft), timerStyle(snap.Timer.SecondsLeft))
	for _, b := range snap.Balls {
		x = drawString(screen, x, 0, fmt.Sprintf(" %s: %d ", b.Label, b.Score), tcell.StyleDefault.Bold(true))
	}
	if !soundOn {
		x = drawString(screen, x, 0, " [muted] ", tcell.StyleDefault.Dim(true))
	}
	if snap.GameOver {
		msg := fmt.Sprintf(" %s wins! (%s) ", snap.Winner.Label, snap.EndReason)
		if snap.Winner.Tie {
			msg = fmt.Sprintf(" Tie! (%s) ", snap.EndReason)
		}
		drawString(screen, x, 0, msg+" r: restart ", tcell.StyleDefault.Reverse(true))
	}
}

// drawString 在 (x, y) 写一行文字，返回结束列
func drawString(screen tcell.Screen, x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

// speakerOutput 把 AudioManager 选择的发声方式合成为 beep 音调
type speakerOutput struct {
	rate  beep.SampleRate
	mixer *beep.Mixer
}

func newSpeakerOutput() (*speakerOutput, error) {
	rate := sfx.SampleRate
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return nil, err
	}
	out := &speakerOutput{rate: rate, mixer: &beep.Mixer{}}
	speaker.Play(out.mixer)
	return out, nil
}

// play 为 nil 时静默
func (o *speakerOutput) play(cue game.Cue, note config.SongNote) {
	if o == nil {
		return
	}
	var s beep.Streamer
	switch cue {
	case game.CueNote:
		s = sfx.NoteTone(note.Pitch, note.Velocity, o.rate)
	case game.CueBounceTone, game.CueBounceSample:
		s = sfx.BounceTone(o.rate)
	case game.CueScoreTone, game.CueScoreSample:
		s = sfx.ScoreTone(o.rate)
	default:
		return
	}
	speaker.Lock()
	o.mixer.Add(s)
	speaker.Unlock()
}

func (o *speakerOutput) Close() {
	speaker.Lock()
	o.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}
