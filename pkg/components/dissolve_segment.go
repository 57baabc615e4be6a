package components

import (
	"math/rand/v2"

	"github.com/decker502/tokvibes/pkg/utils"
)

// DissolveSegmentCount 每个圆环实体弧被切分的段数
const DissolveSegmentCount = 24

// DissolveSegment 圆环淡出时的一段实体弧
//
// 角度相对于缺口终点（弧度），即 StartAngle=0 的段紧贴缺口。
// 当淡出计数器降到 DissolveThreshold 以下时，该段失效（不再绘制）。
type DissolveSegment struct {
	StartAngle        float64
	EndAngle          float64
	Active            bool
	DissolveThreshold int     // 帧数，取值 [1, fadeOutFrames]
	AlphaFactor       float64 // 绘制透明度系数，取值 [0.5, 1.0]
}

// newDissolveSegments 生成覆盖实体弧（缺口终点 → 缺口起点）的段数组
//
// 参数:
//   - holeSize: 缺口大小（弧度）
//   - fadeOutFrames: 淡出总帧数
//   - rng: 每个圆环独立的随机源
func newDissolveSegments(holeSize float64, fadeOutFrames int, rng *rand.Rand) [DissolveSegmentCount]DissolveSegment {
	var segs [DissolveSegmentCount]DissolveSegment
	step := (utils.TwoPi - holeSize) / DissolveSegmentCount

	for i := range segs {
		threshold := 1
		if fadeOutFrames > 1 {
			threshold = 1 + rng.IntN(fadeOutFrames)
		}
		segs[i] = DissolveSegment{
			StartAngle:        float64(i) * step,
			EndAngle:          float64(i+1) * step,
			Active:            true,
			DissolveThreshold: threshold,
			AlphaFactor:       0.5 + 0.5*rng.Float64(),
		}
	}
	return segs
}
