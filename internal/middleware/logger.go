package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

var skipPaths = map[string]bool{
	"/health": true,
}

func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		if skipPaths[path] {
			c.Next()
			return
		}

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		method := c.Request.Method
		ip := c.ClientIP()

		query := c.Request.URL.RawQuery
		if query != "" {
			path = path + "?" + query
		}

		log.Printf("%s%s%s %s%s%s %s%d%s %v %s",
			getMethodColor(method), method, colorReset,
			colorBlue, path, colorReset,
			getStatusColor(status), status, colorReset,
			latency, ip)
	}
}

func getMethodColor(method string) string {
	switch method {
	case "GET":
		return colorGreen
	case "POST":
		return colorCyan
	case "PATCH", "PUT":
		return colorYellow
	case "DELETE":
		return colorRed
	default:
		return colorReset
	}
}

func getStatusColor(status int) string {
	switch {
	case status >= 200 && status < 300:
		return colorGreen
	case status >= 400 && status < 500:
		return colorYellow
	case status >= 500:
		return colorRed
	default:
		return colorReset
	}
}
