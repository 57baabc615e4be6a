//go:build debug

package utils

import "fmt"

// AssertFinite 在 debug 构建中检查数值是否有限
// 位置或速度出现 NaN/Inf 属于缺陷，不能悄悄传递给渲染层
func AssertFinite(name string, values ...float64) {
	if !IsFinite(values...) {
		panic(fmt.Sprintf("non-finite %s: %v", name, values))
	}
}
