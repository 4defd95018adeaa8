// Package cascade keeps dependent form fields consistent when a
// controlling field changes: state filters cities, a selected voucher
// fills the transaction's read-only fields, and the transaction type
// decides whether a bank must be chosen. Lookups that miss reset their
// dependents instead of failing.
package cascade

import (
	"strconv"
	"strings"

	"schoolfin-backend/internal/models"

	"github.com/shopspring/decimal"
)

// Resolver holds the reference lists the dropdowns were loaded with.
type Resolver struct {
	Cities           []models.City
	Vouchers         []models.Voucher
	TransactionTypes []models.TransactionType
}

// AddressSelection is the state/city pair shared by the bank and vendor
// forms. The city selector stays disabled until a state is chosen.
type AddressSelection struct {
	StateID string
	CityID  string
}

// TransactionDraft mirrors the transaction form. The auto-filled fields
// are never user-editable; they are always sourced from the voucher.
type TransactionDraft struct {
	VoucherID     string
	ProductName   string
	ProductAmount string
	TrnsAmount    string
	VendorName    string
	VendorID      string

	TransactionTypeID string
	TransactionType   string // resolved type name
	BankID            *string
	BankRequired      bool

	Errors map[string]string
}

func NewTransactionDraft() *TransactionDraft {
	return &TransactionDraft{Errors: make(map[string]string)}
}

// CitiesForState returns the subset of cities belonging to the state.
func (r *Resolver) CitiesForState(stateID uint) []models.City {
	out := make([]models.City, 0)
	for _, c := range r.Cities {
		if c.StateID == stateID {
			out = append(out, c)
		}
	}
	return out
}

// SelectState records the new state, clears any previously selected city
// and returns the filtered city list for the selector.
func (r *Resolver) SelectState(sel *AddressSelection, stateID string) []models.City {
	sel.StateID = stateID
	sel.CityID = ""

	id, err := strconv.ParseUint(stateID, 10, 64)
	if err != nil {
		return nil
	}
	return r.CitiesForState(uint(id))
}

// SelectVoucher copies the voucher's product name, amount and vendor into
// the draft's read-only fields. A miss resets all of them.
func (r *Resolver) SelectVoucher(d *TransactionDraft, voucherID string) {
	d.VoucherID = voucherID

	for _, v := range r.Vouchers {
		if strconv.FormatUint(uint64(v.ID), 10) == voucherID {
			amount := ProductAmountString(v.ProductQty, v.ProductRate)
			d.ProductName = v.ProductName
			d.ProductAmount = amount
			d.TrnsAmount = amount
			d.VendorName = v.VendorName
			d.VendorID = strconv.FormatUint(uint64(v.VendorID), 10)
			return
		}
	}

	d.ProductName = ""
	d.ProductAmount = ""
	d.TrnsAmount = ""
	d.VendorName = ""
	d.VendorID = ""
}

// SelectTransactionType resolves the type name and recomputes the bank
// requirement. When a bank becomes required the selection is reset to an
// empty string to force a fresh choice; otherwise bank_id is forced to
// nil and any stale bank error is cleared.
func (r *Resolver) SelectTransactionType(d *TransactionDraft, typeID string) {
	d.TransactionTypeID = typeID
	d.TransactionType = ""

	for _, t := range r.TransactionTypes {
		if strconv.FormatUint(uint64(t.ID), 10) == typeID {
			d.TransactionType = t.TransactionType
			break
		}
	}

	if BankRequired(d.TransactionType) {
		d.BankRequired = true
		empty := ""
		d.BankID = &empty
		return
	}

	d.BankRequired = false
	d.BankID = nil
	delete(d.Errors, "bank_id")
}

// BankRequired reports whether the transaction type name needs a bank
// account: Cheque, Demand Draft (DD) and RTGS do, everything else not.
func BankRequired(typeName string) bool {
	switch {
	case strings.EqualFold(typeName, "Cheque"):
		return true
	case strings.EqualFold(typeName, "Demand Draft"), strings.EqualFold(typeName, "DD"):
		return true
	case strings.EqualFold(typeName, "Rtgs"):
		return true
	}
	return false
}

// ProductAmount is qty x rate rounded to two decimals. Derived, never
// edited independently.
func ProductAmount(qty, rate float64) float64 {
	return productAmount(qty, rate).InexactFloat64()
}

func ProductAmountString(qty, rate float64) string {
	return productAmount(qty, rate).String()
}

func productAmount(qty, rate float64) decimal.Decimal {
	return decimal.NewFromFloat(qty).Mul(decimal.NewFromFloat(rate)).Round(2)
}
