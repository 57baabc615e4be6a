//go:build !mobile

// stub.go - 桌面构建占位
//
// ebitenmobile 绑定代码（mobile.go、embed.go）只在 -tags mobile 时编译；
// 没有此文件时 go build ./... 会因包内无可编译文件而失败。
package mobile

// Dummy 与 mobile.go 中的导出函数同名，桌面端为空实现
func Dummy() {}
