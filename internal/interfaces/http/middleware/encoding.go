package middleware

import (
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/encoding/charmap"
)

// EnsureUTF8Body 将非 UTF-8 请求体按 Windows-1252 解码为 UTF-8
// 部分 Windows 终端下的 curl 会以系统代码页发送 ₹ 等字符
func EnsureUTF8Body() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.ContentLength == 0 {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		c.Request.Body.Close()
		if err != nil {
			c.AbortWithStatus(400)
			return
		}

		if !utf8.Valid(body) {
			if decoded, err := charmap.Windows1252.NewDecoder().Bytes(body); err == nil && utf8.Valid(decoded) {
				body = decoded
				c.Request.ContentLength = int64(len(body))
			}
		}

		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		c.Next()
	}
}
