package http

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/plataforma-app/erp-api/internal/application/dto"
)

// RateLimitMiddleware limita requests por IP con token bucket. Se aplica a los
// endpoints de autenticación (login/register/refresh) para frenar fuerza bruta.
func RateLimitMiddleware(perMinute int) fiber.Handler {
	limiters := &ipLimiters{
		limit:   rate.Limit(float64(perMinute) / 60.0),
		burst:   perMinute,
		entries: make(map[string]*ipLimiterEntry),
	}
	return func(c *fiber.Ctx) error {
		if !limiters.allow(c.IP()) {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: "demasiadas solicitudes, intente más tarde"})
		}
		return c.Next()
	}
}

type ipLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type ipLimiters struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	entries map[string]*ipLimiterEntry
}

func (l *ipLimiters) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	e, ok := l.entries[ip]
	if !ok {
		e = &ipLimiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[ip] = e
	}
	e.lastSeen = now

	// Poda ocasional de IPs inactivas para que el mapa no crezca sin límite.
	if len(l.entries) > 10000 {
		for k, v := range l.entries {
			if now.Sub(v.lastSeen) > 10*time.Minute {
				delete(l.entries, k)
			}
		}
	}
	return e.limiter.Allow()
}
