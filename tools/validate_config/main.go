// validate_config 校验模拟配置与歌曲文件
//
// 用法：
//
//	go run ./tools/validate_config
//	go run ./tools/validate_config -config my_sim.yaml -songs "songs/*.yaml"
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/decker502/tokvibes/pkg/config"
)

func main() {
	cfgPath := flag.String("config", config.DefaultSimulationPath, "模拟配置文件")
	songs := flag.String("songs", config.DefaultSongsPattern, "歌曲文件匹配模式（相对当前目录）")
	flag.Parse()

	failed := false

	cfg, err := config.LoadSimulationConfig(*cfgPath)
	if err != nil {
		fmt.Printf("❌ %s: %v\n", *cfgPath, err)
		failed = true
	} else {
		fmt.Printf("✅ %s: %d 个圆环 (显示 %d), %d 个小球, 回合 %.0fs\n",
			*cfgPath, cfg.RingCount, cfg.RingsDisplayed, len(cfg.Balls), cfg.RoundSeconds)
		for _, b := range cfg.Balls {
			if _, err := config.ParseHexColor(b.Color); err != nil {
				fmt.Printf("❌ 小球 %q: %v\n", b.Label, err)
				failed = true
			}
		}
	}

	loaded, err := config.LoadSongsFS(os.DirFS("."), *songs)
	if err != nil {
		fmt.Printf("❌ 歌曲: %v\n", err)
		failed = true
	} else {
		for _, s := range loaded {
			fmt.Printf("✅ 歌曲 %q: %d 个可播放音符\n", s.Name, len(s.PlayableNotes()))
		}
		if len(loaded) == 0 {
			fmt.Printf("⚠️  没有匹配 %s 的歌曲，反弹将使用固定音效\n", *songs)
		}
	}

	if failed {
		os.Exit(1)
	}
}
