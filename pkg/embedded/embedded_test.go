package embedded

import (
	"errors"
	"io"
	"io/fs"
	"testing"
	"testing/fstest"
)

// 测试用的内存文件系统
// 真正的数据嵌入在项目根目录的 embed.go 中
func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/config/simulation.yaml": {Data: []byte("fps: 60\n")},
		"data/songs/a.yaml":           {Data: []byte("name: a\n")},
		"data/songs/b.yaml":           {Data: []byte("name: b\n")},
		"data/songs/readme.txt":       {Data: []byte("notes")},
	}
}

// reset 恢复未初始化状态，避免影响其他测试
func reset(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		dataFS = nil
		initialized = false
	})
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	reset(t)
	Init(nil)
	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false for a nil FS")
	}

	Init(testFS())
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}
	if FS() == nil {
		t.Error("FS() returned nil after Init()")
	}
}

// TestNotInitialized 测试未初始化时的各访问函数
func TestNotInitialized(t *testing.T) {
	reset(t)
	Init(nil)

	calls := map[string]func() error{
		"Open":     func() error { _, err := Open("data/x"); return err },
		"ReadFile": func() error { _, err := ReadFile("data/x"); return err },
		"Glob":     func() error { _, err := Glob("data/*"); return err },
		"ReadDir":  func() error { _, err := ReadDir("data/songs"); return err },
		"Sub":      func() error { _, err := Sub("data/songs"); return err },
		"Stat":     func() error { _, err := Stat("data/x"); return err },
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			if err := call(); !errors.Is(err, ErrNotInitialized) {
				t.Errorf("%s() error = %v, want ErrNotInitialized", name, err)
			}
		})
	}

	if Exists("data/config/simulation.yaml") {
		t.Error("Expected Exists() to return false before Init()")
	}
}

func TestReadFile(t *testing.T) {
	reset(t)
	Init(testFS())

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"plain path", "data/config/simulation.yaml", "fps: 60\n", false},
		{"dot slash prefix", "./data/config/simulation.yaml", "fps: 60\n", false},
		{"missing file", "data/config/missing.yaml", "", true},
		{"unknown prefix", "assets/images/x.png", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if string(got) != tt.want {
				t.Errorf("ReadFile(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestOpenAndExists(t *testing.T) {
	reset(t)
	Init(testFS())

	f, err := Open("data/songs/a.yaml")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	data, _ := io.ReadAll(f)
	f.Close()
	if string(data) != "name: a\n" {
		t.Errorf("Open() content = %q", data)
	}

	if !Exists("data/songs/b.yaml") {
		t.Error("Exists() = false for an embedded file")
	}
	if Exists("data/songs/c.yaml") {
		t.Error("Exists() = true for a missing file")
	}
}

func TestGlobAndReadDir(t *testing.T) {
	reset(t)
	Init(testFS())

	matches, err := Glob("data/songs/*.yaml")
	if err != nil {
		t.Fatalf("Glob() error: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("Glob() = %v, want 2 songs", matches)
	}

	entries, err := ReadDir("data/songs")
	if err != nil {
		t.Fatalf("ReadDir() error: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("ReadDir() returned %d entries, want 3", len(entries))
	}
}

func TestSubAndStat(t *testing.T) {
	reset(t)
	Init(testFS())

	sub, err := Sub("data/songs")
	if err != nil {
		t.Fatalf("Sub() error: %v", err)
	}
	if _, err := fs.ReadFile(sub, "a.yaml"); err != nil {
		t.Errorf("reading through Sub() failed: %v", err)
	}

	info, err := Stat("data/config/simulation.yaml")
	if err != nil {
		t.Fatalf("Stat() error: %v", err)
	}
	if info.Size() != int64(len("fps: 60\n")) {
		t.Errorf("Stat().Size() = %d", info.Size())
	}
}
