package transaction

import (
	"errors"
	"strconv"
	"time"

	"schoolfin-backend/internal/audit"
	"schoolfin-backend/internal/auth"
	"schoolfin-backend/internal/cascade"
	"schoolfin-backend/internal/database"
	"schoolfin-backend/internal/models"
	"schoolfin-backend/internal/workflow"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateTransactionRequest struct {
	VoucherID          uint    `json:"voucher_id"`
	TransactionTypeID  uint    `json:"transaction_type_id"`
	BankID             *uint   `json:"bank_id"`
	TrnsAmount         float64 `json:"trns_amount"` // ignored, seeded from the voucher
	TrnsDate           string  `json:"trns_date"`
	TransactionDetails string  `json:"transaction_details"`
}

type DecideTransactionRequest struct {
	TrnsStatus         string  `json:"trns_status"`
	TrnsDate           string  `json:"trns_date"`
	TransactionDetails *string `json:"transaction_details"`
}

// POST /api/request/transaction
// The amount always comes from the voucher. Cheque/DD/RTGS require a
// bank; everything else gets bank_id forced to null.
func CreateTransactionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreateTransactionRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid JSON format")
		}

		var voucher models.Voucher
		if err := database.DB.First(&voucher, "id = ?", req.VoucherID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Voucher not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to look up voucher")
		}

		var trnsType models.TransactionType
		if err := database.DB.First(&trnsType, "id = ?", req.TransactionTypeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusBadRequest, "Unknown transaction type")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to look up transaction type")
		}

		var bankID *uint
		if cascade.BankRequired(trnsType.TransactionType) {
			if req.BankID == nil || *req.BankID == 0 {
				return fiber.NewError(fiber.StatusBadRequest,
					"Bank is required for "+trnsType.TransactionType+" transactions")
			}
			var bank models.Bank
			if err := database.DB.First(&bank, "id = ?", *req.BankID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusBadRequest, "Bank not found")
				}
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to look up bank")
			}
			bankID = &bank.ID
		}

		trnsDate := time.Now()
		if req.TrnsDate != "" {
			parsed, err := time.Parse("2006-01-02", req.TrnsDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Transaction date must be YYYY-MM-DD")
			}
			trnsDate = parsed
		}

		trns := models.Transaction{
			VoucherID:          voucher.ID,
			TransactionTypeID:  trnsType.ID,
			TransactionType:    trnsType.TransactionType,
			BankID:             bankID,
			TrnsAmount:         voucher.ProductAmount,
			TrnsDate:           trnsDate,
			TrnsStatus:         workflow.StatusPending,
			TransactionDetails: req.TransactionDetails,
		}
		if err := database.DB.Create(&trns).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create transaction")
		}

		if userID, userName, err := auth.UserInfo(c); err == nil {
			audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "transaction",
				EntityID:    trns.ID,
				Action:      models.AuditActionCreate,
				Description: "Transaction requested for voucher " + strconv.FormatUint(uint64(voucher.ID), 10),
				After:       trns,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":     "Transaction requested successfully",
			"transaction": trns,
		})
	}
}

// GET /api/trns-info
func ListTransactionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		transactions := make([]models.Transaction, 0)
		q := database.DB.Order("trns_date DESC, id DESC")

		if raw := c.Query("status"); raw != "" {
			status, err := workflow.ParseStatus(raw)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			q = q.Where("trns_status = ?", status)
		}

		if err := q.Find(&transactions).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to list transactions")
		}
		return c.JSON(fiber.Map{"transactions": transactions})
	}
}

// PATCH /api/update/transaction/:id
// One-shot like voucher decisions.
func DecideTransactionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid transaction id")
		}

		var req DecideTransactionRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid JSON format")
		}

		decision, err := workflow.ParseDecision(req.TrnsStatus)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var trns models.Transaction
		if err := database.DB.First(&trns, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Transaction not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to look up transaction")
		}
		before := trns

		if !trns.TrnsStatus.CanTransitionTo(decision) {
			return fiber.NewError(fiber.StatusConflict,
				"Transaction "+strconv.Itoa(id)+" has already been decided")
		}

		trns.TrnsStatus = decision
		trns.TrnsDate = time.Now()
		if req.TrnsDate != "" {
			if parsed, err := time.Parse(time.RFC3339, req.TrnsDate); err == nil {
				trns.TrnsDate = parsed
			}
		}
		if req.TransactionDetails != nil {
			trns.TransactionDetails = *req.TransactionDetails
		}

		res := database.DB.Model(&models.Transaction{}).
			Where("id = ? AND trns_status = ?", trns.ID, workflow.StatusPending).
			Updates(map[string]any{
				"trns_status":         trns.TrnsStatus,
				"trns_date":           trns.TrnsDate,
				"transaction_details": trns.TransactionDetails,
			})
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update transaction")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusConflict,
				"Transaction "+strconv.Itoa(id)+" has already been decided")
		}

		if userID, userName, err := auth.UserInfo(c); err == nil {
			audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "transaction",
				EntityID:    trns.ID,
				Action:      models.AuditActionDecide,
				Description: "Transaction " + string(decision),
				Before:      before,
				After:       trns,
			})
		}

		return c.JSON(fiber.Map{
			"message":     "Transaction updated successfully",
			"transaction": trns,
		})
	}
}
