package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/plataforma-app/erp-api/internal/application/auth"
	"github.com/plataforma-app/erp-api/internal/application/dto"
	"github.com/plataforma-app/erp-api/internal/domain"
)

// Locals keys que deja el middleware de auth en el contexto de Fiber.
const (
	LocalUserID      = "user_id"
	LocalSessionID   = "session_id"
	LocalRole        = "role"
	LocalExtraGrants = "extra_grants"
)

// sessionResolver es lo único que el gate necesita del caso de uso de auth.
type sessionResolver interface {
	ResolveSession(ctx context.Context, accessToken string) (*auth.Identity, error)
}

// AuthMiddleware valida el Bearer Token contra la sesión persistida y deja la
// identidad en c.Locals. Un JWT válido cuya sesión fue revocada también es 401.
func AuthMiddleware(resolver sessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		identity, err := resolver.ResolveSession(c.UserContext(), tokenString)
		if err != nil {
			if errors.Is(err, domain.ErrSessionExpired) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "SESSION_EXPIRED", Message: "sesión expirada o revocada"})
			}
			if errors.Is(err, domain.ErrUnauthorized) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		c.Locals(LocalUserID, identity.UserID)
		c.Locals(LocalSessionID, identity.SessionID)
		c.Locals(LocalRole, identity.Role)
		c.Locals(LocalExtraGrants, identity.ExtraGrants)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetSessionID devuelve el SessionID del contexto.
func GetSessionID(c *fiber.Ctx) string {
	return localString(c, LocalSessionID)
}

// GetRole devuelve el rol del contexto.
func GetRole(c *fiber.Ctx) string {
	return localString(c, LocalRole)
}

// GetExtraGrants devuelve los grants explícitos del usuario autenticado.
func GetExtraGrants(c *fiber.Ctx) []string {
	v := c.Locals(LocalExtraGrants)
	if v == nil {
		return nil
	}
	grants, _ := v.([]string)
	return grants
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
