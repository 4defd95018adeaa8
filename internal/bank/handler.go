package bank

import (
	"strconv"

	"schoolfin-backend/internal/audit"
	"schoolfin-backend/internal/auth"
	"schoolfin-backend/internal/database"
	"schoolfin-backend/internal/models"
	"schoolfin-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type AddBankRequest struct {
	BankName      string  `json:"bank_name"`
	BankAccountNo string  `json:"bank_account_no"`
	BankIFSC      string  `json:"bank_ifsc"`
	BankBranch    string  `json:"bank_branch"`
	CityID        uint    `json:"city_id"`
	StateID       uint    `json:"state_id"`
	BankAddress   string  `json:"bank_address"`
	BankType      string  `json:"bank_type"`
	BankAmount    float64 `json:"bank_amount"`
}

// GET /api/bank/check-account/:accountNumber
// Uniqueness probe used by the bank form before submit.
func CheckAccountHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountNumber := c.Params("accountNumber")
		if accountNumber == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Account number is required")
		}

		var count int64
		if err := database.DB.Model(&models.Bank{}).
			Where("bank_account_no = ?", accountNumber).
			Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check account number")
		}

		return c.JSON(fiber.Map{"exists": count > 0})
	}
}

// POST /api/bank/add
func AddBankHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req AddBankRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid JSON format")
		}

		values := map[string]string{
			"bank_name":       req.BankName,
			"bank_account_no": req.BankAccountNo,
			"bank_ifsc":       req.BankIFSC,
			"bank_branch":     req.BankBranch,
			"bank_amount":     strconv.FormatFloat(req.BankAmount, 'f', -1, 64),
		}
		required := []string{"bank_name", "bank_account_no", "bank_ifsc", "bank_branch"}
		if errs, ok := validation.Form(values, required, ""); !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}

		if req.CityID == 0 || req.StateID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "City and state are required")
		}
		if req.BankAmount < 0 {
			return fiber.NewError(fiber.StatusBadRequest, validation.MsgValidAmount)
		}

		bankType := models.BankType(req.BankType)
		if bankType == "" {
			bankType = models.BankTypeSelf
		}
		if bankType != models.BankTypeSelf && bankType != models.BankTypeVendor {
			return fiber.NewError(fiber.StatusBadRequest, "Bank type must be self or vendor")
		}

		var count int64
		if err := database.DB.Model(&models.Bank{}).
			Where("bank_account_no = ?", req.BankAccountNo).
			Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check account number")
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, validation.MsgAccountExists)
		}

		bank := models.Bank{
			BankName:      req.BankName,
			BankAccountNo: req.BankAccountNo,
			BankIFSC:      req.BankIFSC,
			BankBranch:    req.BankBranch,
			CityID:        req.CityID,
			StateID:       req.StateID,
			BankAddress:   req.BankAddress,
			BankType:      bankType,
			BankAmount:    req.BankAmount,
		}
		if err := database.DB.Create(&bank).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create bank")
		}

		if userID, userName, err := auth.UserInfo(c); err == nil {
			audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "bank",
				EntityID:    bank.ID,
				Action:      models.AuditActionCreate,
				Description: "Bank account added: " + bank.BankName,
				After:       bank,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Bank added successfully",
			"bank":    bank,
		})
	}
}

// GET /bank/self
// Self accounts only; the deposit form wraps them under bankDetails.
func ListSelfHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		banks := make([]models.Bank, 0)
		if err := database.DB.Where("bank_type = ?", models.BankTypeSelf).
			Order("bank_name ASC").Find(&banks).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to list bank accounts")
		}
		return c.JSON(fiber.Map{"bankDetails": banks})
	}
}

// GET /bank/list
func ListAllHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		banks := make([]models.Bank, 0)
		if err := database.DB.Order("bank_name ASC").Find(&banks).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to list banks")
		}
		return c.JSON(fiber.Map{"banks": banks})
	}
}
