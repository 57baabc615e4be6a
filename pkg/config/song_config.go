package config

import (
	"fmt"
	"io/fs"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// SongNote 一个音符（MIDI 音高 + 力度）
type SongNote struct {
	Pitch    int `yaml:"pitch"`    // MIDI 音高 0~127，69 = A4 (440Hz)
	Velocity int `yaml:"velocity"` // MIDI 力度 0~127
}

// SongConfig 反弹音序配置
//
// 每次小球反弹播放序列中的下一个音符，循环播放。
//
// 配置文件位置: data/songs/*.yaml
type SongConfig struct {
	Name           string     `yaml:"name"`
	Volume         float64    `yaml:"volume"`         // 歌曲音量乘数 0.0 ~ 1.0
	SkipFirstBeats int        `yaml:"skipFirstBeats"` // 跳过开头的音符数（用于跳过前奏）
	Notes          []SongNote `yaml:"notes"`
}

// LoadSongConfig 从文件加载音序配置
func LoadSongConfig(path string) (*SongConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read song config: %w", err)
	}
	return ParseSongConfig(data)
}

// LoadSongsFS 加载 fsys 中匹配 pattern 的全部音序（如 "data/songs/*.yaml"）
// 按文件名排序，任何一个文件无效都返回错误
func LoadSongsFS(fsys fs.FS, pattern string) ([]*SongConfig, error) {
	paths, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid song pattern %q: %w", pattern, err)
	}
	sort.Strings(paths)

	songs := make([]*SongConfig, 0, len(paths))
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("failed to read song %s: %w", p, err)
		}
		song, err := ParseSongConfig(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		songs = append(songs, song)
	}
	return songs, nil
}

// ParseSongConfig 解析并验证 YAML 音序数据
func ParseSongConfig(data []byte) (*SongConfig, error) {
	song := &SongConfig{Volume: 1.0}
	if err := yaml.Unmarshal(data, song); err != nil {
		return nil, fmt.Errorf("failed to parse song config: %w", err)
	}
	if err := song.Validate(); err != nil {
		return nil, fmt.Errorf("invalid song config %q: %w", song.Name, err)
	}
	return song, nil
}

// Validate 验证音序配置
func (s *SongConfig) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("song name is empty")
	}
	if s.Volume < 0 || s.Volume > 1 {
		return fmt.Errorf("volume must be in [0, 1], got %.2f", s.Volume)
	}
	if s.SkipFirstBeats < 0 {
		return fmt.Errorf("skipFirstBeats must be >= 0, got %d", s.SkipFirstBeats)
	}
	if len(s.Notes) == 0 {
		return fmt.Errorf("song has no notes")
	}
	for i, n := range s.Notes {
		if n.Pitch < 0 || n.Pitch > 127 {
			return fmt.Errorf("note %d: pitch %d out of range [0, 127]", i, n.Pitch)
		}
		if n.Velocity < 0 || n.Velocity > 127 {
			return fmt.Errorf("note %d: velocity %d out of range [0, 127]", i, n.Velocity)
		}
	}
	return nil
}

// PlayableNotes 返回跳过前奏后、按歌曲音量缩放力度的音符序列
// 如果 SkipFirstBeats 不小于音符总数，则不跳过（短旋律整首播放）
func (s *SongConfig) PlayableNotes() []SongNote {
	notes := s.Notes
	if s.SkipFirstBeats > 0 && len(notes) > s.SkipFirstBeats {
		notes = notes[s.SkipFirstBeats:]
	}

	out := make([]SongNote, len(notes))
	for i, n := range notes {
		out[i] = SongNote{
			Pitch:    n.Pitch,
			Velocity: int(float64(n.Velocity) * s.Volume),
		}
	}
	return out
}
