package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/tokvibes/pkg/app"
	"github.com/decker502/tokvibes/pkg/config"
	"github.com/decker502/tokvibes/pkg/embedded"
)

func main() {
	var (
		circles   int
		displayed int
		cfgPath   string
		seed      int64
		verbose   bool
		silent    bool
	)
	flag.IntVar(&circles, "circles", 0, "圆环总数（0 使用配置值）")
	flag.IntVar(&circles, "c", 0, "圆环总数（-circles 的简写）")
	flag.IntVar(&displayed, "display", 0, "同时显示的圆环数（0 使用配置值）")
	flag.IntVar(&displayed, "d", 0, "同时显示的圆环数（-display 的简写）")
	flag.StringVar(&cfgPath, "config", "", "外部模拟配置文件（默认使用内置 data/config/simulation.yaml）")
	flag.Int64Var(&seed, "seed", 0, "随机种子（0 按时间播种）")
	flag.BoolVar(&verbose, "verbose", false, "显示详细日志")
	flag.BoolVar(&silent, "silent", false, "不初始化音频")
	flag.Parse()

	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose: verbose,
		Silent:  silent,
		Overrides: config.Overrides{
			Path:      cfgPath,
			Circles:   circles,
			Displayed: displayed,
			Seed:      seed,
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}

	w, h := gameApp.WindowSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetTPS(gameApp.TPS())
	ebiten.SetFullscreen(gameApp.Fullscreen())

	// Esc 退出时 Update 返回 ebiten.Termination，RunGame 返回 nil
	err = ebiten.RunGame(gameApp)
	gameApp.Close()
	if err != nil {
		log.Fatal(err)
	}
}
