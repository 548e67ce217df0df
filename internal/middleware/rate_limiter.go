package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/soporte-code/API-PORTALWEB/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ventana counts hits per IP inside a fixed window.
type ventana struct {
	mu       sync.Mutex
	limite   int
	duracion time.Duration
	ips      map[string]*contador
}

type contador struct {
	n   int
	fin time.Time
}

func nuevaVentana(limite int, duracion time.Duration) *ventana {
	v := &ventana{limite: limite, duracion: duracion, ips: make(map[string]*contador)}
	go v.purgar(5 * time.Minute)
	return v
}

// registrar suma un intento y devuelve false cuando se supera el limite.
func (v *ventana) registrar(ip string, ahora time.Time) (bool, time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()

	ct, ok := v.ips[ip]
	if !ok || ahora.After(ct.fin) {
		ct = &contador{fin: ahora.Add(v.duracion)}
		v.ips[ip] = ct
	}
	ct.n++
	return ct.n <= v.limite, ct.fin
}

func (v *ventana) purgar(cada time.Duration) {
	ticker := time.NewTicker(cada)
	defer ticker.Stop()
	for ahora := range ticker.C {
		v.mu.Lock()
		borrados := 0
		for ip, ct := range v.ips {
			if ahora.After(ct.fin) {
				delete(v.ips, ip)
				borrados++
			}
		}
		v.mu.Unlock()
		if borrados > 0 {
			log.Debug().Int("purgados", borrados).Msg("rate limiter purgado")
		}
	}
}

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	v := nuevaVentana(20, time.Minute)
	return func(c *gin.Context) {
		if ok, _ := v.registrar(c.ClientIP(), time.Now()); !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiados intentos de login. Intente en 1 minuto."))
			return
		}
		c.Next()
	}
}

// RateLimiter is the general per-IP limiter for the whole API.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	v := nuevaVentana(limit, window)
	return func(c *gin.Context) {
		ok, fin := v.registrar(c.ClientIP(), time.Now())
		if !ok {
			c.Header("Retry-After", fin.UTC().Format(http.TimeFormat))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiadas solicitudes. Intente nuevamente en un momento."))
			return
		}
		c.Next()
	}
}
