package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/benettihome/operaciones-api/internal/application/dto"
	"github.com/benettihome/operaciones-api/pkg/jwt"
)

// Locals keys para los claims del token en Fiber.
const (
	LocalUserID      = "user_id"
	LocalBranchID    = "branch_id"
	LocalAccessLevel = "access_level"
)

// AuthMiddleware valida el Bearer Token JWT y carga UserID, BranchID y
// AccessLevel a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
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
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalBranchID, claims.BranchID)
		c.Locals(LocalAccessLevel, claims.AccessLevel)
		return c.Next()
	}
}

// RequireAccess autoriza solo a los niveles de acceso indicados. Debe
// registrarse después de AuthMiddleware.
func RequireAccess(levels ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		level := GetAccessLevel(c)
		if level == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ACCESS_LEVEL", Message: "el token no incluye nivel de acceso"})
		}
		for _, allowed := range levels {
			if level == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "nivel de acceso insuficiente"})
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) int64 {
	v, _ := c.Locals(LocalUserID).(int64)
	return v
}

// GetBranchID devuelve el BranchID del contexto.
func GetBranchID(c *fiber.Ctx) int64 {
	v, _ := c.Locals(LocalBranchID).(int64)
	return v
}

// GetAccessLevel devuelve el nivel de acceso del contexto.
func GetAccessLevel(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalAccessLevel).(string)
	return v
}
