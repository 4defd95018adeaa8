// Package reports builds the admin report tables and their Excel
// exports. Every report is a flat header/rows pair so the JSON view and
// the spreadsheet share one builder.
package reports

import (
	"errors"

	"schoolfin-backend/internal/database"
	"schoolfin-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type transactionVoucherRow struct {
	TransactionID   uint    `json:"transaction_id"`
	VoucherID       uint    `json:"voucher_id"`
	VendorName      string  `json:"vendor_name"`
	ProductName     string  `json:"product_name"`
	TransactionType string  `json:"transaction_type"`
	TrnsAmount      float64 `json:"trns_amount"`
	TrnsStatus      string  `json:"trns_status"`
}

type selfTransactionRow struct {
	DepositID uint    `json:"deposit_id"`
	BankName  string  `json:"bank_name"`
	Direction string  `json:"direction"`
	TxnAmount float64 `json:"txn_amount"`
}

// buildReport returns the header row and data rows for a named report.
func buildReport(name string) ([]string, [][]any, error) {
	switch name {
	case "user-report":
		var users []models.User
		if err := database.DB.Order("id ASC").Find(&users).Error; err != nil {
			return nil, nil, err
		}
		headers := []string{"ID", "Name", "Email", "Role"}
		rows := make([][]any, 0, len(users))
		for _, u := range users {
			rows = append(rows, []any{u.ID, u.Name, u.Email, string(u.Role)})
		}
		return headers, rows, nil

	case "vendor-report":
		var vendors []models.Vendor
		if err := database.DB.Order("vendor_name ASC").Find(&vendors).Error; err != nil {
			return nil, nil, err
		}
		headers := []string{"ID", "Vendor", "Mobile", "Email", "GST", "Status"}
		rows := make([][]any, 0, len(vendors))
		for _, v := range vendors {
			rows = append(rows, []any{v.ID, v.VendorName, v.VendorMobile, v.VendorEmail, v.VendorGST, v.VendorStatus})
		}
		return headers, rows, nil

	case "transaction-voucher-report":
		var joined []transactionVoucherRow
		err := database.DB.Model(&models.Transaction{}).
			Select("transactions.id AS transaction_id, transactions.voucher_id, vouchers.vendor_name, vouchers.product_name, transactions.transaction_type, transactions.trns_amount, transactions.trns_status").
			Joins("JOIN vouchers ON vouchers.id = transactions.voucher_id").
			Order("transactions.id ASC").
			Scan(&joined).Error
		if err != nil {
			return nil, nil, err
		}
		headers := []string{"Transaction", "Voucher", "Vendor", "Product", "Type", "Amount", "Status"}
		rows := make([][]any, 0, len(joined))
		for _, r := range joined {
			rows = append(rows, []any{r.TransactionID, r.VoucherID, r.VendorName, r.ProductName, r.TransactionType, r.TrnsAmount, r.TrnsStatus})
		}
		return headers, rows, nil

	case "pettycash-report":
		var entries []models.PettyCash
		if err := database.DB.Order("entry_date DESC, id DESC").Find(&entries).Error; err != nil {
			return nil, nil, err
		}
		headers := []string{"ID", "Vendor", "Description", "Amount", "Date"}
		rows := make([][]any, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, []any{e.ID, e.VendorName, e.TxnDescription, e.TxnAmount, e.EntryDate.Format("2006-01-02")})
		}
		return headers, rows, nil

	case "self-transaction-report":
		var joined []selfTransactionRow
		err := database.DB.Model(&models.Deposit{}).
			Select("deposits.id AS deposit_id, banks.bank_name, deposits.direction, deposits.txn_amount").
			Joins("JOIN banks ON banks.id = deposits.bank_id").
			Order("deposits.id ASC").
			Scan(&joined).Error
		if err != nil {
			return nil, nil, err
		}
		headers := []string{"ID", "Bank", "Direction", "Amount"}
		rows := make([][]any, 0, len(joined))
		for _, r := range joined {
			rows = append(rows, []any{r.DepositID, r.BankName, r.Direction, r.TxnAmount})
		}
		return headers, rows, nil
	}

	return nil, nil, errUnknownReport
}

var errUnknownReport = errors.New("unknown report")

// GET /api/reports/:name
func ReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.Params("name")
		headers, rows, err := buildReport(name)
		if err != nil {
			if errors.Is(err, errUnknownReport) {
				return fiber.NewError(fiber.StatusNotFound, "Unknown report")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to build report")
		}

		return c.JSON(fiber.Map{
			"report":  name,
			"headers": headers,
			"rows":    rows,
		})
	}
}
