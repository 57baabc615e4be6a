package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	closed       bool
	quit         bool
	deltaTime    float64
}

// QuitRequested reports the preset quit flag.
func (m *MockScene) QuitRequested() bool { return m.quit }

// Close records that the scene was closed.
func (m *MockScene) Close() { m.closed = true }

// Update records that Update was called and stores the deltaTime.
func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

// Draw records that Draw was called.
func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

// TestNewSceneManager verifies that NewSceneManager creates a valid instance.
func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm == nil {
		t.Fatal("NewSceneManager() returned nil")
	}
	if sm.currentScene != nil {
		t.Error("Expected currentScene to be nil initially")
	}
}

// TestSceneManagerSwitchTo verifies that SwitchTo correctly changes the active scene.
func TestSceneManagerSwitchTo(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}

	sm.SwitchTo(mockScene)

	if sm.currentScene != mockScene {
		t.Error("SwitchTo did not set the current scene correctly")
	}
}

// TestSceneManagerUpdate verifies that Update calls the current scene's Update method.
func TestSceneManagerUpdate(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	deltaTime := 0.016 // ~60 FPS
	sm.Update(deltaTime)

	if !mockScene.updateCalled {
		t.Error("Scene's Update method was not called")
	}
	if mockScene.deltaTime != deltaTime {
		t.Errorf("Expected deltaTime %.3f, got %.3f", deltaTime, mockScene.deltaTime)
	}
}

// TestSceneManagerUpdateNoScene verifies that Update handles nil scene gracefully.
func TestSceneManagerUpdateNoScene(t *testing.T) {
	sm := NewSceneManager()
	// Don't set any scene, currentScene should be nil
	sm.Update(0.016) // Should not panic
}

// TestSceneManagerDraw verifies that Draw calls the current scene's Draw method.
func TestSceneManagerDraw(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	// Create a dummy screen image
	screen := ebiten.NewImage(800, 600)
	sm.Draw(screen)

	if !mockScene.drawCalled {
		t.Error("Scene's Draw method was not called")
	}
}

// TestSceneManagerDrawNoScene verifies that Draw handles nil scene gracefully.
func TestSceneManagerDrawNoScene(t *testing.T) {
	sm := NewSceneManager()
	screen := ebiten.NewImage(800, 600)
	// Don't set any scene, currentScene should be nil
	sm.Draw(screen) // Should not panic
}

// TestSceneManagerSwitchBetweenScenes verifies switching between multiple scenes.
func TestSceneManagerSwitchBetweenScenes(t *testing.T) {
	sm := NewSceneManager()
	scene1 := &MockScene{}
	scene2 := &MockScene{}

	// Switch to scene1
	sm.SwitchTo(scene1)
	sm.Update(0.016)

	if !scene1.updateCalled {
		t.Error("Scene1's Update was not called")
	}
	if scene2.updateCalled {
		t.Error("Scene2's Update should not have been called yet")
	}

	// Switch to scene2
	sm.SwitchTo(scene2)
	sm.Update(0.016)

	if !scene2.updateCalled {
		t.Error("Scene2's Update was not called after switching")
	}
}

// TestSceneManagerSwitchClosesPrevious verifies that replacing a scene closes it.
func TestSceneManagerSwitchClosesPrevious(t *testing.T) {
	sm := NewSceneManager()
	scene1 := &MockScene{}
	scene2 := &MockScene{}

	sm.SwitchTo(scene1)
	sm.SwitchTo(scene1)
	if scene1.closed {
		t.Error("switching to the same scene should not close it")
	}

	sm.SwitchTo(scene2)
	if !scene1.closed {
		t.Error("previous scene was not closed")
	}

	sm.Close()
	if !scene2.closed {
		t.Error("Close() did not close the current scene")
	}
}

// TestSceneManagerLoad verifies factory-based scene loading.
func TestSceneManagerLoad(t *testing.T) {
	sm := NewSceneManager()
	if sm.Load("round") {
		t.Error("Load without a factory should fail")
	}

	created := &MockScene{}
	sm.SetSceneFactory(func(name string) Scene {
		if name != "round" {
			return nil
		}
		return created
	})

	if sm.Load("menu") {
		t.Error("Load of an unknown scene should fail")
	}
	if !sm.Load("round") || sm.GetCurrentScene() != created {
		t.Error("Load(\"round\") did not switch to the created scene")
	}
}

// TestSceneManagerQuitRequested verifies quit propagation from the active scene.
func TestSceneManagerQuitRequested(t *testing.T) {
	sm := NewSceneManager()
	if sm.QuitRequested() {
		t.Error("no scene should not request quit")
	}

	scene := &MockScene{}
	sm.SwitchTo(scene)
	if sm.QuitRequested() {
		t.Error("QuitRequested() = true before the scene asked")
	}
	scene.quit = true
	if !sm.QuitRequested() {
		t.Error("QuitRequested() = false after the scene asked")
	}
}
