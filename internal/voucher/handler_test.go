package voucher

import (
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
	user := testutil.CreateUser(t, db, models.RoleSuperviser)

	app := testutil.NewApp()
	app.Use(testutil.AsUser(user))
	app.Post("/api/generate/purchase-voucher", CreateVoucherHandler())
	app.Get("/api/voucher-details", ListVouchersHandler())
	app.Patch("/api/update/voucher/:id", DecideVoucherHandler())

	return app, db
}

func seedVendor(t *testing.T, db *gorm.DB) *models.Vendor {
	t.Helper()

	bank := models.Bank{
		BankName: "State Bank", BankAccountNo: "123456789012",
		BankIFSC: "SBIN0001234", BankBranch: "Nagpur Main",
		CityID: 1, StateID: 1, BankType: models.BankTypeVendor,
	}
	require.NoError(t, db.Create(&bank).Error)

	vendor := models.Vendor{
		VendorName: "Acme Supplies", VendorMobile: "9822012345",
		VendorEmail: "acme@example.com", VendorGST: "27ABCDE1234F1Z5",
		VendorTypeID: 1, CityID: 1, StateID: 1, BankID: bank.ID,
		VendorStatus: "ACTIVE",
	}
	require.NoError(t, db.Create(&vendor).Error)
	return &vendor
}

func TestCreateVoucherRecomputesAmount(t *testing.T) {
	app, db := setupApp(t)
	vendor := seedVendor(t, db)

	resp := testutil.DoJSON(t, app, http.MethodPost, "/api/generate/purchase-voucher", map[string]any{
		"vendor_id":      vendor.ID,
		"product_name":   "Chalk",
		"product_qty":    3,
		"product_rate":   19.99,
		"product_amount": 9999.99, // client value must be ignored
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Voucher models.Voucher `json:"voucher"`
	}
	testutil.DecodeBody(t, resp, &body)

	assert.Equal(t, 59.97, body.Voucher.ProductAmount)
	assert.Equal(t, workflow.StatusPending, body.Voucher.VoucherStatus)
	assert.Equal(t, "Acme Supplies", body.Voucher.VendorName)
}

func TestCreateVoucherValidation(t *testing.T) {
	app, db := setupApp(t)
	vendor := seedVendor(t, db)

	resp := testutil.DoJSON(t, app, http.MethodPost, "/api/generate/purchase-voucher", map[string]any{
		"vendor_id":    vendor.ID,
		"product_name": "Chalk 500",
		"product_qty":  3,
		"product_rate": 10,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = testutil.DoJSON(t, app, http.MethodPost, "/api/generate/purchase-voucher", map[string]any{
		"vendor_id":    vendor.ID,
		"product_name": "Chalk",
		"product_qty":  0,
		"product_rate": 10,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = testutil.DoJSON(t, app, http.MethodPost, "/api/generate/purchase-voucher", map[string]any{
		"vendor_id":    uint(999),
		"product_name": "Chalk",
		"product_qty":  1,
		"product_rate": 10,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDecideVoucherIsOneShot(t *testing.T) {
	app, db := setupApp(t)
	vendor := seedVendor(t, db)

	voucher := models.Voucher{
		VendorID: vendor.ID, VendorName: vendor.VendorName,
		ProductName: "Chalk", ProductQty: 2, ProductRate: 50, ProductAmount: 100,
		VoucherStatus: workflow.StatusPending,
	}
	require.NoError(t, db.Create(&voucher).Error)

	path := "/api/update/voucher/1"
	resp := testutil.DoJSON(t, app, http.MethodPatch, path, map[string]any{
		"voucher_status": "APPROVED",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var decided models.Voucher
	require.NoError(t, db.First(&decided, voucher.ID).Error)
	assert.Equal(t, workflow.StatusApproved, decided.VoucherStatus)

	// Second decision, even the same one, must conflict
	resp = testutil.DoJSON(t, app, http.MethodPatch, path, map[string]any{
		"voucher_status": "APPROVED",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = testutil.DoJSON(t, app, http.MethodPatch, path, map[string]any{
		"voucher_status": "REJECTED",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestDecideVoucherRejectsNonDecisions(t *testing.T) {
	app, db := setupApp(t)
	vendor := seedVendor(t, db)

	voucher := models.Voucher{
		VendorID: vendor.ID, ProductName: "Chalk",
		ProductQty: 1, ProductRate: 10, ProductAmount: 10,
		VoucherStatus: workflow.StatusPending,
	}
	require.NoError(t, db.Create(&voucher).Error)

	resp := testutil.DoJSON(t, app, http.MethodPatch, "/api/update/voucher/1", map[string]any{
		"voucher_status": "PENDING",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = testutil.DoJSON(t, app, http.MethodPatch, "/api/update/voucher/999", map[string]any{
		"voucher_status": "APPROVED",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListVouchersStatusFilter(t *testing.T) {
	app, db := setupApp(t)
	vendor := seedVendor(t, db)

	for _, st := range []workflow.Status{workflow.StatusPending, workflow.StatusApproved} {
		v := models.Voucher{
			VendorID: vendor.ID, ProductName: "Chalk",
			ProductQty: 1, ProductRate: 10, ProductAmount: 10,
			VoucherStatus: st,
		}
		require.NoError(t, db.Create(&v).Error)
	}

	resp := testutil.DoJSON(t, app, http.MethodGet, "/api/voucher-details?status=PENDING", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Vouchers []models.Voucher `json:"vouchers"`
	}
	testutil.DecodeBody(t, resp, &body)
	require.Len(t, body.Vouchers, 1)
	assert.Equal(t, workflow.StatusPending, body.Vouchers[0].VoucherStatus)

	resp = testutil.DoJSON(t, app, http.MethodGet, "/api/voucher-details?status=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
