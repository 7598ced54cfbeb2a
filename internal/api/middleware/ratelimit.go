package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-CeramicsBooking/internal/api/handlers"
)

const msgTooManyRequests = "слишком много запросов, попробуйте позже"

// Limiter решает, можно ли пропустить еще один запрос с ключом key
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateObserver счетчик отклоненных запросов
type RateObserver interface {
	ObserveRateLimited(path string)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RateLimit ограничивает число запросов с одного IP.
// Ошибка лимитера пропускает запрос дальше.
func RateLimit(limiter Limiter, observer RateObserver, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)

			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.Error("RateLimit: limiter failed for key=%s, letting request through: %v", key, err)
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				logger.Warn("RateLimit: %s %s rejected for key=%s", r.Method, r.URL.Path, key)
				if observer != nil {
					observer.ObserveRateLimited(routeTemplate(r))
				}
				handlers.RespondTooManyRequests(w, msgTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP берет первый адрес из X-Forwarded-For, иначе RemoteAddr
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if first != "" {
			return first
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
