package user

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// CookieName 是在浏览器中标识匿名设备的cookie名
	CookieName = "user-id"

	// CookieMaxAge 设为一年，设备ID在此期间保持稳定
	CookieMaxAge = 365 * 24 * 60 * 60

	// UserIDKey 是设备ID在Gin上下文中的键名
	UserIDKey = "userID"
)

// IsValidUUID 检查一个字符串是否是格式正确的UUID
func IsValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// issueNewDeviceID 生成一个新的临时设备ID并下发cookie
func issueNewDeviceID(c *gin.Context) {
	deviceID, err := CreateProvisionalUser()
	if err != nil {
		fmt.Printf("创建临时设备ID时发生错误: %v\n", err)
		return
	}
	c.SetCookie(CookieName, deviceID, CookieMaxAge, "/", "", false, true)
}

// EnsureUserCookieMiddleware 确保浏览器持有一个格式正确的设备cookie。
// cookie缺失或格式不正确时，生成一个新的临时ID并重新下发。
func EnsureUserCookieMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID, err := c.Cookie(CookieName)
		if err != nil || !IsValidUUID(deviceID) {
			if err != nil && err != http.ErrNoCookie {
				fmt.Printf("检测到无效的设备Cookie: %s, err: %v\n", deviceID, err)
			}
			issueNewDeviceID(c)
		}
		c.Next()
	}
}

// LoadUserMiddleware 读取设备cookie并把它放进Gin上下文。
// 格式不正确的ID被当作匿名处理，不会中断请求。
func LoadUserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID, _ := c.Cookie(CookieName)
		if !IsValidUUID(deviceID) {
			deviceID = ""
		}
		c.Set(UserIDKey, deviceID)
		c.Next()
	}
}
