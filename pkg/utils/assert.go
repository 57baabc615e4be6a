//go:build !debug

package utils

// AssertFinite 在 release 构建中不做任何检查
// 使用 -tags debug 构建时，非有限值会直接 panic（见 assert_debug.go）
func AssertFinite(name string, values ...float64) {}
