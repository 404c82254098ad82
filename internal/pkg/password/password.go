// Package password 密码哈希与校验（bcrypt）
package password

import (
	"golang.org/x/crypto/bcrypt"
)

// 明文长度范围；bcrypt 只处理前 72 字节
const (
	MinLength = 6
	MaxLength = 72
)

// Hash 加密密码
func Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify 验证密码
func Verify(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ValidLength 明文长度是否在允许范围内
func ValidLength(password string) bool {
	return len(password) >= MinLength && len(password) <= MaxLength
}
