package transaction

import (
	"time"

	"schoolfin-backend/internal/audit"
	"schoolfin-backend/internal/auth"
	"schoolfin-backend/internal/database"
	"schoolfin-backend/internal/models"
	"schoolfin-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type PettyCashRequest struct {
	VendorName     string `json:"vendor_name"`
	TxnDescription string `json:"txn_description"`
	TxnAmount      string `json:"txn_amount"`
	EntryDate      string `json:"entry_date"`
}

// POST /api/transaction/peticash
// Small cash payments capped at 5000, no approval step.
func CreatePettyCashHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req PettyCashRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid JSON format")
		}

		errs := make(map[string]string)
		if msg := validation.Field("vendor_name", req.VendorName); msg != "" {
			errs["vendor_name"] = msg
		}
		if msg := validation.Field("txn_description", req.TxnDescription); msg != "" {
			errs["txn_description"] = msg
		}
		if msg := validation.PettyCashAmount(req.TxnAmount); msg != "" {
			errs["txn_amount"] = msg
		}
		if len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}

		amount, _ := decimal.NewFromString(req.TxnAmount)

		entryDate := time.Now()
		if req.EntryDate != "" {
			parsed, err := time.Parse("2006-01-02", req.EntryDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Entry date must be YYYY-MM-DD")
			}
			entryDate = parsed
		}

		entry := models.PettyCash{
			VendorName:     req.VendorName,
			TxnDescription: req.TxnDescription,
			TxnAmount:      amount.InexactFloat64(),
			EntryDate:      entryDate,
		}
		if err := database.DB.Create(&entry).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to record petty cash entry")
		}

		if userID, userName, err := auth.UserInfo(c); err == nil {
			audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "peticash",
				EntityID:    entry.ID,
				Action:      models.AuditActionCreate,
				Description: "Petty cash paid to " + entry.VendorName,
				After:       entry,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":  "Petty cash entry recorded",
			"peticash": entry,
		})
	}
}

// GET /api/transaction/peticash
func ListPettyCashHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		entries := make([]models.PettyCash, 0)
		if err := database.DB.Order("entry_date DESC, id DESC").Find(&entries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to list petty cash entries")
		}
		return c.JSON(fiber.Map{"peticash": entries})
	}
}
