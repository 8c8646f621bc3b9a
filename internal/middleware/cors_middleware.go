package middleware

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// localNetwork matches http origins on private IPv4 ranges with a port.
var localNetwork = regexp.MustCompile(`^http://(192\.168\.\d{1,3}\.\d{1,3}|10\.\d{1,3}\.\d{1,3}\.\d{1,3}|172\.(1[6-9]|2\d|3[0-1])\.\d{1,3}\.\d{1,3}):\d+$`)

// AllowOrigin reports whether a browser origin may call the api: the
// configured origins, any http://localhost port and private network hosts.
func AllowOrigin(allowed []string) func(origin string) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[strings.TrimRight(o, "/")] = true
	}

	return func(origin string) bool {
		if set[origin] || set["*"] {
			return true
		}
		if strings.HasPrefix(origin, "http://localhost:") {
			return true
		}
		return localNetwork.MatchString(origin)
	}
}

// CORSMiddleware allows credentialed requests from the origins above.
// Requests without an Origin header (mobile apps, curl) pass untouched.
func CORSMiddleware(allowed []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc: AllowOrigin(allowed),
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Content-Length", "Accept-Encoding",
			"Authorization", "Accept", "Cache-Control", "X-Requested-With",
		},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
