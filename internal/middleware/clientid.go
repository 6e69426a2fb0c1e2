package middleware

import "github.com/gin-gonic/gin"

// ClientKeyHeader carries the browser-generated session identifier used to
// scope drafts and the vote cooldown to one client.
const ClientKeyHeader = "X-Client-Id"

// ClientKey resolves the session key for the calling client, falling back
// to the client IP when the header is absent.
func ClientKey(c *gin.Context) string {
	if key := c.GetHeader(ClientKeyHeader); key != "" {
		return key
	}
	return c.ClientIP()
}
