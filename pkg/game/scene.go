package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents one screen of the application (currently the round view).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update advances the scene by one tick.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Quitter 是一个可选接口，场景通过它请求退出程序
//
// App.Update 每帧检查当前场景，返回 true 时以 ebiten.Termination 结束主循环。
type Quitter interface {
	QuitRequested() bool
}

// Closer 是一个可选接口，场景在被替换或程序退出时释放资源
// （停止音频、保存设置等）
type Closer interface {
	Close()
}
