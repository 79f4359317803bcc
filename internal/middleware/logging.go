package middleware

import (
	"net/http"

	"github.com/mbogdanovic/fittrack/pkg"

	log "github.com/sirupsen/logrus"
)

func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userAgent := r.Header.Get("User-Agent")
			log.Tracef(" ====> request [%s] path: [%s] [UA: %s] [IP: %s]",
				r.Method, r.URL.Path, userAgent, pkg.ReadUserIP(r),
			)
			next.ServeHTTP(w, r)
		})
	}
}
