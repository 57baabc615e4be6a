package config

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestParseSongConfig(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{
			name: "valid",
			yaml: `
name: test
volume: 0.5
notes:
  - {pitch: 60, velocity: 100}
  - {pitch: 64, velocity: 90}
`,
		},
		{name: "missing name", yaml: "notes: [{pitch: 60, velocity: 1}]\n", wantErr: true},
		{name: "no notes", yaml: "name: empty\n", wantErr: true},
		{name: "pitch out of range", yaml: "name: x\nnotes: [{pitch: 200, velocity: 1}]\n", wantErr: true},
		{name: "volume out of range", yaml: "name: x\nvolume: 2\nnotes: [{pitch: 60, velocity: 1}]\n", wantErr: true},
		{name: "negative skip", yaml: "name: x\nskipFirstBeats: -1\nnotes: [{pitch: 60, velocity: 1}]\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSongConfig([]byte(tt.yaml))
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseSongConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSongConfig_DefaultVolume(t *testing.T) {
	song, err := ParseSongConfig([]byte("name: x\nnotes: [{pitch: 60, velocity: 100}]\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if song.Volume != 1.0 {
		t.Errorf("expected default volume 1.0, got %f", song.Volume)
	}
}

func TestPlayableNotes(t *testing.T) {
	song := &SongConfig{
		Name:           "s",
		Volume:         0.5,
		SkipFirstBeats: 2,
		Notes: []SongNote{
			{Pitch: 60, Velocity: 100},
			{Pitch: 62, Velocity: 100},
			{Pitch: 64, Velocity: 100},
			{Pitch: 65, Velocity: 80},
		},
	}

	notes := song.PlayableNotes()
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes after skipping, got %d", len(notes))
	}
	if notes[0].Pitch != 64 || notes[0].Velocity != 50 {
		t.Errorf("unexpected first note %+v", notes[0])
	}
	if notes[1].Velocity != 40 {
		t.Errorf("expected scaled velocity 40, got %d", notes[1].Velocity)
	}

	// 跳过数不小于总数时不跳过
	song.SkipFirstBeats = 10
	if got := len(song.PlayableNotes()); got != 4 {
		t.Errorf("expected all 4 notes when skip >= len, got %d", got)
	}
}

func TestLoadSongConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.yaml")
	content := "name: file\nnotes:\n  - {pitch: 69, velocity: 127}\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	song, err := LoadSongConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if song.Name != "file" || len(song.Notes) != 1 {
		t.Errorf("unexpected song %+v", song)
	}

	if _, err := LoadSongConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadSongsFS(t *testing.T) {
	fsys := fstest.MapFS{
		"data/songs/b.yaml": {Data: []byte("name: second\nnotes:\n  - {pitch: 62, velocity: 90}\n")},
		"data/songs/a.yaml": {Data: []byte("name: first\nnotes:\n  - {pitch: 60, velocity: 90}\n")},
		"data/songs/x.txt":  {Data: []byte("ignored")},
	}

	songs, err := LoadSongsFS(fsys, "data/songs/*.yaml")
	if err != nil {
		t.Fatalf("LoadSongsFS() error: %v", err)
	}
	if len(songs) != 2 || songs[0].Name != "first" || songs[1].Name != "second" {
		t.Errorf("LoadSongsFS() = %d songs, want [first second] in file order", len(songs))
	}

	fsys["data/songs/c.yaml"] = &fstest.MapFile{Data: []byte("name: broken\n")}
	if _, err := LoadSongsFS(fsys, "data/songs/*.yaml"); err == nil {
		t.Error("LoadSongsFS() should fail when a song has no notes")
	}

	empty, err := LoadSongsFS(fstest.MapFS{}, "data/songs/*.yaml")
	if err != nil || len(empty) != 0 {
		t.Errorf("LoadSongsFS(empty) = (%d, %v), want (0, nil)", len(empty), err)
	}
}
