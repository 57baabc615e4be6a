// verify_round 无界面运行若干回合并打印结果
//
// 用于验证物理与计分在固定种子下可复现：
//
//	go run ./cmd/verify_round -rounds 5 -seed 42
//	go run ./cmd/verify_round -c 20 -d 8 -verbose
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/tokvibes/pkg/config"
	"github.com/decker502/tokvibes/pkg/game"
	"github.com/decker502/tokvibes/pkg/systems"
)

var (
	rounds    = flag.Int("rounds", 3, "运行的回合数")
	seed      = flag.Int64("seed", 1, "第一个回合的种子（后续回合依次加 1）")
	circles   = flag.Int("c", 0, "圆环总数（0 使用配置值）")
	displayed = flag.Int("d", 0, "同时显示的圆环数（0 使用配置值）")
	cfgPath   = flag.String("config", "", "外部模拟配置文件（默认使用内置默认值）")
	verbose   = flag.Bool("verbose", false, "显示回合日志")
)

// roundStats 单个回合的统计
type roundStats struct {
	bounces int
	scores  int
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.LoadWithOverrides(nil, config.Overrides{
		Path:      *cfgPath,
		Circles:   *circles,
		Displayed: *displayed,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置无效: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("配置: %d 个圆环 (显示 %d), %d 个小球, %.0fs @ %d fps\n",
		cfg.RingCount, cfg.RingsDisplayed, len(cfg.Balls), cfg.RoundSeconds, cfg.FPS)

	for i := 0; i < *rounds; i++ {
		s := *seed + int64(i)
		r, err := game.NewRound(cfg, game.WithSeed(s))
		if err != nil {
			fmt.Fprintf(os.Stderr, "回合创建失败: %v\n", err)
			os.Exit(1)
		}

		var stats roundStats
		r.Subscribe(func(ev systems.CollisionEvent) {
			switch ev.Type {
			case systems.EventBounced:
				stats.bounces++
			case systems.EventScored:
				stats.scores++
			}
		})

		for !r.GameOver() {
			r.Step()
		}

		snap := r.Snapshot()
		fmt.Printf("\n回合 %d (seed=%d): %d 帧, 结束原因: %s\n", i+1, s, snap.Frame, snap.EndReason)
		fmt.Printf("  反弹 %d 次, 穿过 %d 个圆环, 剩余圆环 %d\n", stats.bounces, stats.scores, len(snap.Rings))
		for _, b := range snap.Balls {
			fmt.Printf("  %-8s 得分 %d\n", b.Label, b.Score)
		}
		if snap.Winner.Tie {
			fmt.Printf("  结果: 平局 (最高分 %d)\n", snap.Winner.Score)
		} else {
			fmt.Printf("  结果: %s 获胜\n", snap.Winner.Label)
		}
	}
}
