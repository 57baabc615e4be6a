// Package utils 提供游戏开发中常用的工具函数
//
// geometry.go 提供圆环逃逸玩法所需的几何工具：角度归一化、距离、圆上点计算。
//
// # 坐标系统概述
//
//   - **世界坐标**：相对于游戏窗口左上角，X 向右，Y 向下（Ebiten 默认）
//   - **角度约定**：逆时针为正，0 弧度指向右侧
//
// 由于屏幕 Y 轴向下，计算角度时需要对 Y 分量取反：
//
//	angle = atan2(-(y - cy), x - cx)
//	x = cx + r*cos(angle)
//	y = cy - r*sin(angle)
//
// 缺口位置、小球角度、调试绘制必须使用同一约定，否则缺口判定会静默失效。
package utils

import "math"

// TwoPi 一整圈的弧度
const TwoPi = 2 * math.Pi

// NormalizeAngle 将角度归一化到 [0, 2π)
//
// 负角度会被折回正区间；恰好为 2π 的输入返回 0。
func NormalizeAngle(angle float64) float64 {
	a := math.Mod(angle, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	// math.Mod 对极小的负数加 2π 后可能恰好等于 2π
	if a >= TwoPi {
		a = 0
	}
	return a
}

// DegToRad 角度转弧度
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg 弧度转角度
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Distance 返回两点间的欧氏距离
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// PointOnCircle 返回圆上指定角度处的点（世界坐标）
//
// 参数:
//   - cx, cy: 圆心
//   - r: 半径
//   - angle: 角度（弧度，逆时针为正）
func PointOnCircle(cx, cy, r, angle float64) (float64, float64) {
	return cx + r*math.Cos(angle), cy - r*math.Sin(angle)
}

// ScreenAngle 返回点 (x, y) 相对圆心 (cx, cy) 的角度，已归一化到 [0, 2π)
// Y 分量取反以匹配屏幕坐标系
func ScreenAngle(cx, cy, x, y float64) float64 {
	return NormalizeAngle(math.Atan2(-(y - cy), x-cx))
}

// AngleInArc 判断角度是否落在 [start, end] 弧段内（闭区间）
//
// 三个参数都应已归一化。当 start > end 时弧段跨越 0 弧度：
// 此时角度满足 angle >= start 或 angle <= end 即视为在弧内。
func AngleInArc(angle, start, end float64) bool {
	if start <= end {
		return start <= angle && angle <= end
	}
	return angle >= start || angle <= end
}

// Clamp01 将值限制在 [0, 1]
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// IsFinite 判断所有值都不是 NaN 或 Inf
func IsFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
