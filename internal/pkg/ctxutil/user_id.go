package ctxutil

import "context"

// userUIDKeyType 使用私有类型避免与其他 context key 冲突
type userUIDKeyType struct{}

var userUIDKey = userUIDKeyType{}

// WithUserUID 将已认证用户的 uid 注入到 context 中
// 说明：由认证中间件在 Token 校验成功后调用：
//
//	ctx := ctxutil.WithUserUID(c.Request.Context(), user.UID)
//	c.Request = c.Request.WithContext(ctx)
func WithUserUID(ctx context.Context, uid int64) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, userUIDKey, uid)
}

// GetUserUID 从 context 中解析 uid
// 返回值：
//   - int64: 解析到的 uid（匿名请求为 0）
//   - bool : 是否存在有效的 uid
func GetUserUID(ctx context.Context) (int64, bool) {
	if ctx == nil {
		return 0, false
	}
	uid, ok := ctx.Value(userUIDKey).(int64)
	if !ok || uid <= 0 {
		return 0, false
	}
	return uid, true
}
