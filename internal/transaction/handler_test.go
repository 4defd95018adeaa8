package transaction

import (
	"fmt"
	"net/http"
	"testing"

	"schoolfin-backend/internal/models"
	"schoolfin-backend/internal/testutil"
	"schoolfin-backend/internal/workflow"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, models.RoleBanker)

	app := testutil.NewApp()
	app.Use(testutil.AsUser(user))
	app.Post("/api/request/transaction", CreateTransactionHandler())
	app.Get("/api/trns-info", ListTransactionsHandler())
	app.Patch("/api/update/transaction/:id", DecideTransactionHandler())
	app.Post("/api/deposit", CreateDepositHandler())
	app.Post("/api/transaction/peticash", CreatePettyCashHandler())

	return app, db
}

func seedVoucher(t *testing.T, db *gorm.DB) *models.Voucher {
	t.Helper()
	voucher := models.Voucher{
		VendorID: 1, VendorName: "Acme Supplies",
		ProductName: "Chalk", ProductQty: 3, ProductRate: 19.99, ProductAmount: 59.97,
		VoucherStatus: workflow.StatusApproved,
	}
	require.NoError(t, db.Create(&voucher).Error)
	return &voucher
}

func seedBank(t *testing.T, db *gorm.DB, bankType models.BankType, balance float64) *models.Bank {
	t.Helper()
	bank := models.Bank{
		BankName: "State Bank", BankAccountNo: fmt.Sprintf("9%011d", nextAccountSeq()),
		BankIFSC: "SBIN0001234", BankBranch: "Nagpur Main",
		CityID: 1, StateID: 1, BankType: bankType, BankAmount: balance,
	}
	require.NoError(t, db.Create(&bank).Error)
	return &bank
}

// account numbers carry a unique index, so every seeded bank gets its own
var accountSeq int

func nextAccountSeq() int {
	accountSeq++
	return accountSeq
}

func typeID(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	var trnsType models.TransactionType
	require.NoError(t, db.First(&trnsType, "transaction_type = ?", name).Error)
	return trnsType.ID
}

func TestCreateTransactionSeedsAmountFromVoucher(t *testing.T) {
	app, db := setupApp(t)
	voucher := seedVoucher(t, db)

	resp := testutil.DoJSON(t, app, http.MethodPost, "/api/request/transaction", map[string]any{
		"voucher_id":          voucher.ID,
		"transaction_type_id": typeID(t, db, "Cash"),
		"trns_amount":         12345.67, // client value must be ignored
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Transaction models.Transaction `json:"transaction"`
	}
	testutil.DecodeBody(t, resp, &body)

	assert.Equal(t, 59.97, body.Transaction.TrnsAmount)
	assert.Equal(t, workflow.StatusPending, body.Transaction.TrnsStatus)
	assert.Equal(t, "Cash", body.Transaction.TransactionType)
}

func TestCreateTransactionCashForcesBankNull(t *testing.T) {
	app, db := setupApp(t)
	voucher := seedVoucher(t, db)
	bank := seedBank(t, db, models.BankTypeSelf, 0)

	resp := testutil.DoJSON(t, app, http.MethodPost, "/api/request/transaction", map[string]any{
		"voucher_id":          voucher.ID,
		"transaction_type_id": typeID(t, db, "Cash"),
		"bank_id":             bank.ID, // stale selection from a previous mode
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Transaction models.Transaction `json:"transaction"`
	}
	testutil.DecodeBody(t, resp, &body)
	assert.Nil(t, body.Transaction.BankID)
}

func TestCreateTransactionChequeRequiresBank(t *testing.T) {
	app, db := setupApp(t)
	voucher := seedVoucher(t, db)

	resp := testutil.DoJSON(t, app, http.MethodPost, "/api/request/transaction", map[string]any{
		"voucher_id":          voucher.ID,
		"transaction_type_id": typeID(t, db, "Cheque"),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	bank := seedBank(t, db, models.BankTypeSelf, 0)
	resp = testutil.DoJSON(t, app, http.MethodPost, "/api/request/transaction", map[string]any{
		"voucher_id":          voucher.ID,
		"transaction_type_id": typeID(t, db, "Cheque"),
		"bank_id":             bank.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Transaction models.Transaction `json:"transaction"`
	}
	testutil.DecodeBody(t, resp, &body)
	require.NotNil(t, body.Transaction.BankID)
	assert.Equal(t, bank.ID, *body.Transaction.BankID)
}

func TestCreateTransactionUnknownVoucher(t *testing.T) {
	app, db := setupApp(t)

	resp := testutil.DoJSON(t, app, http.MethodPost, "/api/request/transaction", map[string]any{
		"voucher_id":          uint(999),
		"transaction_type_id": typeID(t, db, "Cash"),
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDecideTransactionIsOneShot(t *testing.T) {
	app, db := setupApp(t)
	voucher := seedVoucher(t, db)

	trns := models.Transaction{
		VoucherID: voucher.ID, TransactionTypeID: 1, TransactionType: "Cash",
		TrnsAmount: 59.97, TrnsStatus: workflow.StatusPending,
	}
	require.NoError(t, db.Create(&trns).Error)

	path := fmt.Sprintf("/api/update/transaction/%d", trns.ID)

	resp := testutil.DoJSON(t, app, http.MethodPatch, path, map[string]any{
		"trns_status": "REJECTED",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = testutil.DoJSON(t, app, http.MethodPatch, path, map[string]any{
		"trns_status": "APPROVED",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var decided models.Transaction
	require.NoError(t, db.First(&decided, trns.ID).Error)
	assert.Equal(t, workflow.StatusRejected, decided.TrnsStatus, "the first decision must stand")
}
