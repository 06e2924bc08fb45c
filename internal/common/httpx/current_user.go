package httpx

import (
	"leximind-server/internal/consts"
	"leximind-server/internal/model"
	"leximind-server/internal/token"

	"github.com/gin-gonic/gin"
)

// CurrentUser 取出会话网关写入上下文的当前身份。
func CurrentUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get(consts.ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*model.User)
	return user, ok && user != nil
}

// CurrentClaims 取出会话网关校验通过的令牌声明。
func CurrentClaims(c *gin.Context) (*token.LoginClaims, bool) {
	value, exists := c.Get(consts.ContextClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*token.LoginClaims)
	return claims, ok && claims != nil
}
