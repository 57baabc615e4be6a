package utils

import "math"

// Easing Functions (缓动函数)
//
// 渲染层用于把圆环的淡入/淡出进度映射为透明度，使过渡看起来更自然。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
//
// 参考：https://easings.net/

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢（用于圆环淡入）
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInCubic 三次方缓入
// 特点：开始慢，结束快（圆环淡出取 1-EaseInCubic）
func EaseInCubic(t float64) float64 {
	return t * t * t
}

// EaseInQuad 二次方缓入
// 用于拖尾：越靠近小球越不透明
func EaseInQuad(t float64) float64 {
	return t * t
}

// Lerp 线性插值（计时器颜色渐变）
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
