// Package id 生成请求ID和文件名使用的随机标识
package id

import (
	"strings"

	"github.com/google/uuid"
)

// New 生成新的UUID（string格式）
func New() string {
	return uuid.New().String()
}

// Compact 生成不带连字符的UUID，用作存储 key 中的文件名
func Compact() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// IsValid 验证UUID格式是否有效
func IsValid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
