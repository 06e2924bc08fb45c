package consts

// TokenType 区分登录令牌与重置密码令牌，防止两者互相冒用。
type TokenType string

const (
	TokenTypeLogin TokenType = "login"
	TokenTypeReset TokenType = "reset"
)

// 网关写入 gin.Context 的键。
const (
	ContextUserKey   = "current_user"
	ContextClaimsKey = "current_claims"
)
