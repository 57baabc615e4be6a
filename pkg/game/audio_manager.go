package game

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"math/rand/v2"
	"path"
	"strings"

	"github.com/gopxl/beep"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"

	sfx "github.com/decker502/tokvibes/internal/audio"
	"github.com/decker502/tokvibes/pkg/config"
	"github.com/decker502/tokvibes/pkg/systems"
)

// Cue 一次碰撞事件对应的发声方式
type Cue int

const (
	// CueNone 不发声（音效关闭或未知事件）
	CueNone Cue = iota
	// CueNote 播放当前歌曲的下一个音符
	CueNote
	// CueBounceSample 播放反弹采样文件
	CueBounceSample
	// CueBounceTone 播放合成的反弹音
	CueBounceTone
	// CueScoreSample 播放得分采样文件
	CueScoreSample
	// CueScoreTone 播放合成的得分 "hmm" 音
	CueScoreTone
)

// String 返回发声方式名称
func (c Cue) String() string {
	switch c {
	case CueNote:
		return "note"
	case CueBounceSample:
		return "bounce sample"
	case CueBounceTone:
		return "bounce tone"
	case CueScoreSample:
		return "score sample"
	case CueScoreTone:
		return "score tone"
	default:
		return "none"
	}
}

// 采样文件基础名（扩展名 .ogg 或 .mp3）
const (
	bounceSampleName = "bounce"
	scoreSampleName  = "hmm"
)

// noteKey 音符 PCM 缓存键
type noteKey struct {
	pitch, velocity int
}

// AudioManager 音频管理器
// 职责：
//   - 订阅回合碰撞事件，把反弹和得分转换为声音
//   - 反弹按顺序播放当前歌曲的音符（循环），无歌曲时使用反弹采样或合成音
//   - 音量与开关从 SettingsManager 读取
//
// 音频上下文为 nil 时（无声卡、测试、终端版）只做选音逻辑，不创建播放器。
// 由调用方注入，不使用全局单例。
type AudioManager struct {
	ctx             *audio.Context
	settingsManager *SettingsManager
	rate            beep.SampleRate

	song      *config.SongConfig
	notes     []config.SongNote
	noteIndex int
	lastNote  config.SongNote

	// 合成音与采样的 PCM 缓存（每次播放创建新播放器，允许重叠）
	bouncePCM    []byte
	scorePCM     []byte
	notePCM      map[noteKey][]byte
	bounceSample []byte
	scoreSample  []byte

	active []*audio.Player
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: Ebitengine 音频上下文，可为 nil（静音模式）
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	rate := sfx.SampleRate
	if ctx != nil {
		rate = beep.SampleRate(ctx.SampleRate())
	}
	return &AudioManager{
		ctx:             ctx,
		settingsManager: sm,
		rate:            rate,
		notePCM:         make(map[noteKey][]byte),
	}
}

// SelectSong 随机选择一首歌曲作为反弹音序
// songs 为空时清除当前歌曲（反弹回退到固定音效）
//
// 返回：
//   - *config.SongConfig: 选中的歌曲，无歌曲时为 nil
func (am *AudioManager) SelectSong(songs []*config.SongConfig, rng *rand.Rand) *config.SongConfig {
	if len(songs) == 0 {
		am.SetSong(nil)
		return nil
	}
	i := 0
	if rng != nil {
		i = rng.IntN(len(songs))
	}
	am.SetSong(songs[i])
	return songs[i]
}

// SetSong 设置反弹音序并从第一个可播放音符开始
func (am *AudioManager) SetSong(song *config.SongConfig) {
	am.song = song
	am.notes = nil
	am.noteIndex = 0
	if song != nil {
		am.notes = song.PlayableNotes()
		log.Printf("[AudioManager] 使用歌曲 %q (%d 个音符)", song.Name, len(am.notes))
	}
}

// Song 当前歌曲，可能为 nil
func (am *AudioManager) Song() *config.SongConfig {
	return am.song
}

// NoteIndex 下一次反弹将播放的音符序号
func (am *AudioManager) NoteIndex() int {
	return am.noteIndex
}

// LastNote 最近一次 CueNote 播放的音符
// 静音模式的调用方（终端版）据此用自己的输出设备发声
func (am *AudioManager) LastNote() config.SongNote {
	return am.lastNote
}

// LoadSamples 从 dir 加载可选的反弹/得分采样（bounce.ogg|mp3, hmm.ogg|mp3）
// 文件不存在不是错误；静音模式下跳过加载。
func (am *AudioManager) LoadSamples(fsys fs.FS, dir string) error {
	if am.ctx == nil {
		return nil
	}

	var errs []error
	load := func(name string) []byte {
		for _, ext := range []string{".ogg", ".mp3"} {
			p := path.Join(dir, name+ext)
			data, err := fs.ReadFile(fsys, p)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				errs = append(errs, fmt.Errorf("failed to read sample %s: %w", p, err))
				return nil
			}
			pcm, err := am.decodeSample(p, data)
			if err != nil {
				errs = append(errs, err)
				return nil
			}
			log.Printf("[AudioManager] 已加载采样 %s", p)
			return pcm
		}
		return nil
	}

	am.bounceSample = load(bounceSampleName)
	am.scoreSample = load(scoreSampleName)
	return errors.Join(errs...)
}

// decodeSample 解码 mp3/ogg 采样为上下文采样率的 PCM
func (am *AudioManager) decodeSample(p string, data []byte) ([]byte, error) {
	reader := bytes.NewReader(data)
	rate := am.ctx.SampleRate()

	var stream io.Reader
	switch ext := strings.ToLower(path.Ext(p)); ext {
	case ".mp3":
		decoded, err := mp3.DecodeWithSampleRate(rate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 sample %s: %w", p, err)
		}
		stream = decoded
	case ".ogg":
		decoded, err := vorbis.DecodeWithSampleRate(rate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG sample %s: %w", p, err)
		}
		stream = decoded
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .ogg)", ext)
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read decoded sample %s: %w", p, err)
	}
	return pcm, nil
}

// HandleEvent 处理一次碰撞事件（作为 Round 订阅者注册）
//
// 返回：
//   - Cue: 本次事件选择的发声方式
func (am *AudioManager) HandleEvent(ev systems.CollisionEvent) Cue {
	if !am.soundEnabled() {
		return CueNone
	}

	cue, pcm := am.resolve(ev)
	if cue != CueNone {
		am.play(pcm)
	}
	return cue
}

// resolve 选择发声方式并取得对应 PCM
func (am *AudioManager) resolve(ev systems.CollisionEvent) (Cue, []byte) {
	switch ev.Type {
	case systems.EventBounced:
		if len(am.notes) > 0 && am.songNotesEnabled() {
			n := am.notes[am.noteIndex]
			am.lastNote = n
			am.noteIndex = (am.noteIndex + 1) % len(am.notes)
			return CueNote, am.notePCMFor(n)
		}
		if am.bounceSample != nil {
			return CueBounceSample, am.bounceSample
		}
		if am.bouncePCM == nil {
			am.bouncePCM = sfx.RenderPCM(sfx.BounceTone(am.rate), am.rate, sfx.BounceToneLength)
		}
		return CueBounceTone, am.bouncePCM
	case systems.EventScored:
		if am.scoreSample != nil {
			return CueScoreSample, am.scoreSample
		}
		if am.scorePCM == nil {
			am.scorePCM = sfx.RenderPCM(sfx.ScoreTone(am.rate), am.rate, sfx.ScoreToneLength)
		}
		return CueScoreTone, am.scorePCM
	default:
		return CueNone, nil
	}
}

func (am *AudioManager) notePCMFor(n config.SongNote) []byte {
	key := noteKey{n.Pitch, n.Velocity}
	if pcm, ok := am.notePCM[key]; ok {
		return pcm
	}
	pcm := sfx.RenderPCM(sfx.NoteTone(n.Pitch, n.Velocity, am.rate), am.rate, sfx.NoteToneLength)
	am.notePCM[key] = pcm
	return pcm
}

// play 为一段 PCM 创建一次性播放器
func (am *AudioManager) play(pcm []byte) {
	am.Prune()
	if am.ctx == nil || len(pcm) == 0 {
		return
	}

	player, err := am.ctx.NewPlayer(sfx.NewPCMStream(pcm))
	if err != nil {
		log.Printf("[AudioManager] Warning: 创建播放器失败: %v", err)
		return
	}
	player.SetVolume(am.GetSoundVolume())
	player.Play()
	am.active = append(am.active, player)
}

// Prune 关闭已播放完毕的播放器
func (am *AudioManager) Prune() {
	live := am.active[:0]
	for _, p := range am.active {
		if p.IsPlaying() {
			live = append(live, p)
			continue
		}
		if err := p.Close(); err != nil {
			log.Printf("[AudioManager] Warning: 关闭播放器失败: %v", err)
		}
	}
	for i := len(live); i < len(am.active); i++ {
		am.active[i] = nil
	}
	am.active = live
}

// ActivePlayers 仍在播放的播放器数量
func (am *AudioManager) ActivePlayers() int {
	return len(am.active)
}

// StopAll 停止并关闭所有播放器（回合重启、退出时调用）
func (am *AudioManager) StopAll() {
	for _, p := range am.active {
		p.Pause()
		_ = p.Close()
	}
	am.active = am.active[:0]
}

// SetSoundVolume 设置音效音量并应用到正在播放的声音
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}
	for _, p := range am.active {
		p.SetVolume(am.GetSoundVolume())
	}
}

// GetSoundVolume 获取当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return 0.8 // 默认值
}

func (am *AudioManager) soundEnabled() bool {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundEnabled
	}
	return true
}

func (am *AudioManager) songNotesEnabled() bool {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SongNotes
	}
	return true
}
