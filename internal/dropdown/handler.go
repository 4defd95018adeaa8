package dropdown

import (
	"fmt"

	"schoolfin-backend/internal/database"
	"schoolfin-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type VendorNameItem struct {
	VendorID   uint   `json:"vendor_id"`
	VendorName string `json:"vendor_name"`
}

// GET /api/dropdown/:resource
//
// Each list is wrapped under its resource key ({"cities": [...]}); clients
// normalize the shape on their side. Empty tables yield empty lists, never
// errors.
func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Params("resource") {
		case "state", "states":
			states := make([]models.State, 0)
			if err := database.DB.Order("state_name ASC").Find(&states).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to list states")
			}
			return c.JSON(fiber.Map{"states": states})

		case "city", "cities":
			cities := make([]models.City, 0)
			q := database.DB.Order("city_name ASC")
			if stateID := c.Query("state_id"); stateID != "" {
				var id uint
				if _, err := fmt.Sscan(stateID, &id); err != nil || id == 0 {
					return fiber.NewError(fiber.StatusBadRequest, "state_id is invalid")
				}
				q = q.Where("state_id = ?", id)
			}
			if err := q.Find(&cities).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to list cities")
			}
			return c.JSON(fiber.Map{"cities": cities})

		case "banks":
			banks := make([]models.Bank, 0)
			if err := database.DB.Order("bank_name ASC").Find(&banks).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to list banks")
			}
			return c.JSON(fiber.Map{"banks": banks})

		case "vendor-types":
			types := make([]models.VendorType, 0)
			if err := database.DB.Order("vendor_type ASC").Find(&types).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to list vendor types")
			}
			return c.JSON(fiber.Map{"vendorTypes": types})

		case "transaction-types":
			types := make([]models.TransactionType, 0)
			if err := database.DB.Order("id ASC").Find(&types).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to list transaction types")
			}
			return c.JSON(fiber.Map{"transactionTypes": types})

		case "vendor-names":
			names := make([]VendorNameItem, 0)
			if err := database.DB.Model(&models.Vendor{}).
				Select("id AS vendor_id, vendor_name").
				Order("vendor_name ASC").
				Scan(&names).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to list vendor names")
			}
			return c.JSON(fiber.Map{"vendorNames": names})

		case "vouchers", "voucher-ids":
			vouchers := make([]models.Voucher, 0)
			if err := database.DB.Order("id DESC").Find(&vouchers).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to list vouchers")
			}
			return c.JSON(fiber.Map{"vouchers": vouchers})
		}

		return fiber.NewError(fiber.StatusNotFound, "Unknown dropdown resource")
	}
}
