package transaction

import (
	"errors"
	"time"

	"schoolfin-backend/internal/audit"
	"schoolfin-backend/internal/auth"
	"schoolfin-backend/internal/database"
	"schoolfin-backend/internal/models"
	"schoolfin-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DepositRequest struct {
	BankID            uint   `json:"bank_id"`
	TransactionTypeID uint   `json:"transaction_type_id"`
	Direction         string `json:"direction"`
	TxnAmount         string `json:"txn_amount"`
	TransactionDate   string `json:"transaction_date"`
	ChequeDDNumber    string `json:"cheque_dd_number"`
	RTGSNumber        string `json:"rtgs_number"`
}

// POST /api/deposit
// Moves money into or out of a self bank account and adjusts its balance.
// The required fields depend on the transaction mode: Cheque/DD need a
// cheque/DD number, RTGS needs a 22-char RTGS number.
func CreateDepositHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req DepositRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid JSON format")
		}

		var trnsType models.TransactionType
		if err := database.DB.First(&trnsType, "id = ?", req.TransactionTypeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusBadRequest, "Unknown transaction type")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to look up transaction type")
		}
		mode := trnsType.TransactionType

		values := map[string]string{
			"txn_amount":       req.TxnAmount,
			"cheque_dd_number": req.ChequeDDNumber,
			"rtgs_number":      req.RTGSNumber,
		}
		required := validation.RequiredFields(mode, "txn_amount")
		if errs, ok := validation.Form(values, required, mode); !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}

		amount, err := decimal.NewFromString(req.TxnAmount)
		if err != nil || !amount.IsPositive() {
			return fiber.NewError(fiber.StatusBadRequest, validation.MsgValidAmount)
		}

		direction := models.DepositDirection(req.Direction)
		if direction == "" {
			direction = models.DirectionDeposit
		}
		if direction != models.DirectionDeposit && direction != models.DirectionWithdraw {
			return fiber.NewError(fiber.StatusBadRequest, "Direction must be deposit or withdraw")
		}

		var bank models.Bank
		if err := database.DB.First(&bank, "id = ?", req.BankID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusBadRequest, "Bank account not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to look up bank")
		}
		if bank.BankType != models.BankTypeSelf {
			return fiber.NewError(fiber.StatusBadRequest, "Deposits require a self bank account")
		}

		balance := decimal.NewFromFloat(bank.BankAmount)
		if direction == models.DirectionWithdraw {
			if amount.GreaterThan(balance) {
				return fiber.NewError(fiber.StatusBadRequest, "Insufficient balance")
			}
			balance = balance.Sub(amount)
		} else {
			balance = balance.Add(amount)
		}

		txnDate := time.Now()
		if req.TransactionDate != "" {
			parsed, err := time.Parse("2006-01-02", req.TransactionDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Transaction date must be YYYY-MM-DD")
			}
			txnDate = parsed
		}

		deposit := models.Deposit{
			BankID:            bank.ID,
			TransactionTypeID: trnsType.ID,
			Direction:         direction,
			TxnAmount:         amount.InexactFloat64(),
			TxnDate:           txnDate,
			ChequeDDNumber:    req.ChequeDDNumber,
			RTGSNumber:        req.RTGSNumber,
		}

		// The deposit row and the balance update go together.
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&deposit).Error; err != nil {
				return err
			}
			return tx.Model(&models.Bank{}).
				Where("id = ?", bank.ID).
				Update("bank_amount", balance.InexactFloat64()).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to record deposit")
		}

		if userID, userName, err := auth.UserInfo(c); err == nil {
			audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "deposit",
				EntityID:    deposit.ID,
				Action:      models.AuditActionCreate,
				Description: string(direction) + " on " + bank.BankName,
				After:       deposit,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":      "Deposit recorded successfully",
			"deposit":      deposit,
			"bank_balance": balance.InexactFloat64(),
		})
	}
}

// GET /api/deposit/list
func ListDepositsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		deposits := make([]models.Deposit, 0)
		if err := database.DB.Order("txn_date DESC, id DESC").Find(&deposits).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to list deposits")
		}
		return c.JSON(fiber.Map{"deposits": deposits})
	}
}
