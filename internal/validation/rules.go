// Package validation is the single rule table behind every form in the
// system. Validators return a message string; empty string means valid.
// They never return an error value and never panic.
package validation

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	MsgRequired      = "This field is required"
	MsgNumbersOnly   = "Only numbers are allowed"
	MsgAlphabetsOnly = "Only alphabets are allowed"
	MsgValidAmount   = "Enter a valid amount"
	MsgValidMobile   = "Enter a valid 10-digit number"
	MsgValidEmail    = "Enter a valid email"
	MsgAccountLength = "Account number must be between 9 and 18 digits"
	MsgAccountExists = "This account number already exists"
	MsgDDNumber      = "DD number must be exactly 6 digits"
	MsgChequeNumber  = "Cheque number must contain only numbers"
	MsgRTGSNumber    = "RTGS number must be exactly 22 alphanumeric characters"
	MsgAmountTooBig  = "Amount cannot exceed ₹5,000"
	MsgAmountZero    = "Amount must be greater than 0"
)

var (
	reInteger = regexp.MustCompile(`^\d+$`)
	reAmount  = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	reAlpha   = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	reMobile  = regexp.MustCompile(`^\d{10}$`)
	reEmail   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	reDD      = regexp.MustCompile(`^\d{6}$`)
	reRTGS    = regexp.MustCompile(`^[A-Za-z0-9]{22}$`)
)

// pettyCashCap is enforced both in the form validator and server-side.
var pettyCashCap = decimal.NewFromInt(5000)

type check func(value string) string

// table maps canonical field names to their checks. Fields not listed fall
// back to name heuristics (see Field).
var table = map[string][]check{
	"bank_name":       {alpha},
	"bank_account_no": {integer, accountLength},
	"bank_amount":     {amount},
	"vendor_name":     {alpha},
	"vendor_mobile":   {integer, mobile},
	"phone_no":        {integer, mobile},
	"vendor_email":    {email},
	"product_name":    {alpha},
	"product_qty":     {integer},
	"product_rate":    {amount},
	"product_amount":  {amount},
	"trns_amount":     {amount},
	"txn_amount":      {amount},
	"rtgs_number":     {rtgs},
}

// optional fields are allowed to be empty.
var optional = map[string]bool{
	"t_detail":            true,
	"transaction_details": true,
	"voucher_description": true,
}

func integer(v string) string {
	if !reInteger.MatchString(v) {
		return MsgNumbersOnly
	}
	return ""
}

func amount(v string) string {
	if !reAmount.MatchString(v) {
		return MsgValidAmount
	}
	return ""
}

func alpha(v string) string {
	if !reAlpha.MatchString(v) {
		return MsgAlphabetsOnly
	}
	return ""
}

func mobile(v string) string {
	if !reMobile.MatchString(v) {
		return MsgValidMobile
	}
	return ""
}

func email(v string) string {
	if !reEmail.MatchString(v) {
		return MsgValidEmail
	}
	return ""
}

func accountLength(v string) string {
	if len(v) < 9 || len(v) > 18 {
		return MsgAccountLength
	}
	return ""
}

func rtgs(v string) string {
	if !reRTGS.MatchString(strings.TrimSpace(v)) {
		return MsgRTGSNumber
	}
	return ""
}

// Field validates a single value by field name. Empty return means valid.
func Field(name, value string) string {
	if strings.TrimSpace(value) == "" {
		if optional[name] {
			return ""
		}
		return MsgRequired
	}

	if checks, ok := table[name]; ok {
		for _, fn := range checks {
			if msg := fn(value); msg != "" {
				return msg
			}
		}
		return ""
	}

	// Heuristics matching the original forms: *_name fields are
	// alphabetic, *amount* fields are money.
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "name"):
		return alpha(value)
	case strings.Contains(lower, "amount"):
		return amount(value)
	}
	return ""
}

// ChequeDDNumber validates the cheque/DD number field, whose rule depends
// on the selected transaction mode.
func ChequeDDNumber(value, mode string) string {
	if strings.TrimSpace(value) == "" {
		return MsgRequired
	}
	switch {
	case IsDemandDraft(mode):
		if !reDD.MatchString(value) {
			return MsgDDNumber
		}
	case strings.EqualFold(mode, "Cheque"):
		if !reInteger.MatchString(value) {
			return MsgChequeNumber
		}
	}
	return ""
}

// PettyCashAmount validates the capped petty cash amount: numeric with at
// most two decimals, greater than zero, at most 5000.
func PettyCashAmount(value string) string {
	if strings.TrimSpace(value) == "" {
		return MsgRequired
	}
	if !reAmount.MatchString(value) {
		return MsgValidAmount
	}
	amt, err := decimal.NewFromString(value)
	if err != nil {
		return MsgValidAmount
	}
	if !amt.IsPositive() {
		return MsgAmountZero
	}
	if amt.GreaterThan(pettyCashCap) {
		return MsgAmountTooBig
	}
	return ""
}

func IsDemandDraft(mode string) bool {
	return strings.EqualFold(mode, "Demand Draft") || strings.EqualFold(mode, "DD")
}

func IsRTGS(mode string) bool {
	return strings.EqualFold(mode, "Rtgs")
}

// RequiredFields returns the submit-time required set for a transaction
// mode: the base fields plus the mode-specific number field. Recomputed at
// submit, never fixed up front.
func RequiredFields(mode string, base ...string) []string {
	fields := append([]string(nil), base...)
	switch {
	case strings.EqualFold(mode, "Cheque") || IsDemandDraft(mode):
		fields = append(fields, "cheque_dd_number")
	case IsRTGS(mode):
		fields = append(fields, "rtgs_number")
	}
	return fields
}

// Form validates a set of values against a required-field list. Fields
// outside the required list are still checked when non-empty. The second
// return is true when the form may be submitted.
func Form(values map[string]string, required []string, mode string) (map[string]string, bool) {
	errs := make(map[string]string)

	validate := func(name string) string {
		if name == "cheque_dd_number" {
			return ChequeDDNumber(values[name], mode)
		}
		return Field(name, values[name])
	}

	for _, name := range required {
		if msg := validate(name); msg != "" {
			errs[name] = msg
		}
	}
	for name, value := range values {
		if _, done := errs[name]; done {
			continue
		}
		if strings.TrimSpace(value) == "" {
			continue
		}
		if msg := validate(name); msg != "" {
			errs[name] = msg
		}
	}

	return errs, len(errs) == 0
}
