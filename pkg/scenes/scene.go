package scenes

import (
	"github.com/decker502/tokvibes/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// SceneRound 回合场景名称（SceneManager.Load 使用）
const SceneRound = "round"
