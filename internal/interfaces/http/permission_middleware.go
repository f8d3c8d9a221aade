package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/plataforma-app/erp-api/internal/application/dto"
	"github.com/plataforma-app/erp-api/internal/domain/permission"
)

// RequirePermission corta con 403 si el rol (más los grants explícitos del
// usuario) no autoriza la acción sobre el recurso. Corre siempre después de
// AuthMiddleware.
func RequirePermission(resource, action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "identidad no resuelta"})
		}
		if !permission.Allowed(role, resource, action, GetExtraGrants(c)...) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "permiso insuficiente: " + resource + ":" + action})
		}
		return c.Next()
	}
}
