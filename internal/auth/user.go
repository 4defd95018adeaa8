package auth

import (
	"schoolfin-backend/internal/database"
	"schoolfin-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// UserInfo resolves the authenticated user's id and name for audit trails.
func UserInfo(c *fiber.Ctx) (uint, string, error) {
	userIDVal := c.Locals(CtxUserIDKey)
	userID, ok := userIDVal.(uint)
	if !ok {
		return 0, "", fiber.NewError(fiber.StatusForbidden, "User information missing")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return 0, "", fiber.NewError(fiber.StatusInternalServerError, "User not found")
	}

	return userID, user.Name, nil
}
