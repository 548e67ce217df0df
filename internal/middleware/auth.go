package middleware

import (
	"net/http"
	"strings"

	"github.com/soporte-code/API-PORTALWEB/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ClaimsKey = "claims"

	// Valores del claim "typ".
	TokenAcceso   = "access"
	TokenRefresco = "refresh"
)

// JWTClaims are the custom claims embedded in every token. The user id travels
// in the registered "sub" claim.
type JWTClaims struct {
	Rol            int    `json:"rol"`
	Perfil         int    `json:"perfil"`
	Sucursal       *int64 `json:"sucursal"`
	SucursalNombre string `json:"sucursal_nombre"`
	Tipo           string `json:"typ"`
	jwt.RegisteredClaims
}

// UsuarioID returns the authenticated user's id.
func (c *JWTClaims) UsuarioID() string { return c.Subject }

// JWTAuth validates the Bearer access token on every protected route.
func JWTAuth(secret string) gin.HandlerFunc {
	return requireToken(secret, TokenAcceso)
}

// JWTRefresh accepts only refresh tokens; used by the refresh endpoint.
func JWTRefresh(secret string) gin.HandlerFunc {
	return requireToken(secret, TokenRefresco)
}

func requireToken(secret, tipo string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
			return
		}

		claims, err := ParseToken(secret, strings.TrimPrefix(header, "Bearer "))
		if err != nil || claims.Tipo != tipo || claims.Subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token invalido o expirado"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// ParseToken verifies signature and expiry of an HS256 token.
func ParseToken(secret, tokenStr string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// RequirePerfil rejects requests whose JWT profile is not in the allowed list.
func RequirePerfil(perfiles ...int) gin.HandlerFunc {
	allowed := make(map[int]bool, len(perfiles))
	for _, p := range perfiles {
		allowed[p] = true
	}
	return func(c *gin.Context) {
		claims, ok := c.MustGet(ClaimsKey).(*JWTClaims)
		if !ok || !allowed[claims.Perfil] {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("No autorizado"))
			return
		}
		c.Next()
	}
}

// GetClaims is a helper to retrieve typed claims from the Gin context.
func GetClaims(c *gin.Context) *JWTClaims {
	claims, _ := c.MustGet(ClaimsKey).(*JWTClaims)
	return claims
}
