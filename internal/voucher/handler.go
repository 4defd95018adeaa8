package voucher

import (
	"errors"
	"strconv"
	"time"

	"schoolfin-backend/internal/audit"
	"schoolfin-backend/internal/auth"
	"schoolfin-backend/internal/cascade"
	"schoolfin-backend/internal/database"
	"schoolfin-backend/internal/models"
	"schoolfin-backend/internal/validation"
	"schoolfin-backend/internal/workflow"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateVoucherRequest struct {
	VendorID           uint    `json:"vendor_id"`
	ProductName        string  `json:"product_name"`
	ProductQty         float64 `json:"product_qty"`
	ProductRate        float64 `json:"product_rate"`
	ProductAmount      float64 `json:"product_amount"` // ignored, recomputed
	VoucherEntryDate   string  `json:"voucher_entry_date"`
	VoucherDescription string  `json:"voucher_description"`
}

type DecideVoucherRequest struct {
	VoucherStatus      string  `json:"voucher_status"`
	VoucherEntryDate   string  `json:"voucher_entry_date"`
	VoucherDescription *string `json:"voucher_description"`
}

// POST /api/generate/purchase-voucher
// Amount is always qty x rate; status is always PENDING on creation.
func CreateVoucherHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreateVoucherRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid JSON format")
		}

		if msg := validation.Field("product_name", req.ProductName); msg != "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": fiber.Map{"product_name": msg},
			})
		}
		if req.ProductQty <= 0 || req.ProductRate <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, validation.MsgValidAmount)
		}

		var vendor models.Vendor
		if err := database.DB.First(&vendor, "id = ?", req.VendorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusBadRequest, "Vendor not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to look up vendor")
		}

		entryDate := time.Now()
		if req.VoucherEntryDate != "" {
			parsed, err := time.Parse("2006-01-02", req.VoucherEntryDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Entry date must be YYYY-MM-DD")
			}
			entryDate = parsed
		}

		voucher := models.Voucher{
			VendorID:           vendor.ID,
			VendorName:         vendor.VendorName,
			ProductName:        req.ProductName,
			ProductQty:         req.ProductQty,
			ProductRate:        req.ProductRate,
			ProductAmount:      cascade.ProductAmount(req.ProductQty, req.ProductRate),
			VoucherEntryDate:   entryDate,
			VoucherStatus:      workflow.StatusPending,
			VoucherDescription: req.VoucherDescription,
		}
		if err := database.DB.Create(&voucher).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create voucher")
		}

		if userID, userName, err := auth.UserInfo(c); err == nil {
			audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "voucher",
				EntityID:    voucher.ID,
				Action:      models.AuditActionCreate,
				Description: "Purchase voucher created for " + vendor.VendorName,
				After:       voucher,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Voucher generated successfully",
			"voucher": voucher,
		})
	}
}

// GET /api/voucher-details
// Optional ?status=PENDING filter for the approval screens.
func ListVouchersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		vouchers := make([]models.Voucher, 0)
		q := database.DB.Order("voucher_entry_date DESC, id DESC")

		if raw := c.Query("status"); raw != "" {
			status, err := workflow.ParseStatus(raw)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			q = q.Where("voucher_status = ?", status)
		}

		if err := q.Find(&vouchers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to list vouchers")
		}
		return c.JSON(fiber.Map{"vouchers": vouchers})
	}
}

// PATCH /api/update/voucher/:id
// One-shot decision: once a voucher leaves PENDING it can never change
// again, so a second decision gets 409.
func DecideVoucherHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid voucher id")
		}

		var req DecideVoucherRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid JSON format")
		}

		decision, err := workflow.ParseDecision(req.VoucherStatus)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var voucher models.Voucher
		if err := database.DB.First(&voucher, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Voucher not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to look up voucher")
		}
		before := voucher

		if !voucher.VoucherStatus.CanTransitionTo(decision) {
			return fiber.NewError(fiber.StatusConflict,
				"Voucher "+strconv.Itoa(id)+" has already been decided")
		}

		voucher.VoucherStatus = decision
		voucher.VoucherEntryDate = time.Now()
		if req.VoucherEntryDate != "" {
			if parsed, err := time.Parse(time.RFC3339, req.VoucherEntryDate); err == nil {
				voucher.VoucherEntryDate = parsed
			}
		}
		if req.VoucherDescription != nil {
			voucher.VoucherDescription = *req.VoucherDescription
		}

		// Guard the transition in the WHERE clause as well, so two racing
		// decisions cannot both win.
		res := database.DB.Model(&models.Voucher{}).
			Where("id = ? AND voucher_status = ?", voucher.ID, workflow.StatusPending).
			Updates(map[string]any{
				"voucher_status":      voucher.VoucherStatus,
				"voucher_entry_date":  voucher.VoucherEntryDate,
				"voucher_description": voucher.VoucherDescription,
			})
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update voucher")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusConflict,
				"Voucher "+strconv.Itoa(id)+" has already been decided")
		}

		if userID, userName, err := auth.UserInfo(c); err == nil {
			audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "voucher",
				EntityID:    voucher.ID,
				Action:      models.AuditActionDecide,
				Description: "Voucher " + string(decision),
				Before:      before,
				After:       voucher,
			})
		}

		return c.JSON(fiber.Map{
			"message": "Voucher updated successfully",
			"voucher": voucher,
		})
	}
}
