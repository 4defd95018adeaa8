// Package apiclient is the Go client for the workflow API: dropdown
// loading, the bank account pre-check, and the decision PATCHes used by
// the approval controller.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"schoolfin-backend/internal/models"
	"schoolfin-backend/internal/workflow"
)

// ErrAccountExists is returned by AddBank when the uniqueness pre-check
// reports a duplicate account number.
var ErrAccountExists = errors.New("account number already exists")

// requestTimeout matches the decision card behavior: a PATCH that takes
// longer is reported as a timeout and can be retried.
const requestTimeout = 10 * time.Second

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: requestTimeout},
	}
}

func (c *Client) getJSON(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP error: %d - %s", resp.StatusCode, apiError(body))
	}
	return body, nil
}

func (c *Client) sendJSON(ctx context.Context, method, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTP error: %d - %s", resp.StatusCode, apiError(raw))
	}
	return nil
}

// apiError pulls the server's error/message field out of a failure body.
func apiError(body []byte) string {
	var parsed struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Error != "" {
			return parsed.Error
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}
	return "request failed"
}

// DropdownData carries every reference list a form needs, each with its
// own error so one failed fetch never blanks the others.
type DropdownData struct {
	States               []models.State
	StatesErr            error
	Cities               []models.City
	CitiesErr            error
	Banks                []models.Bank
	BanksErr             error
	VendorTypes          []models.VendorType
	VendorTypesErr       error
	TransactionTypes     []models.TransactionType
	TransactionTypesErr  error
	Vouchers             []models.Voucher
	VouchersErr          error
}

// LoadDropdowns fetches all reference lists concurrently. Each list
// resolves or fails independently.
func (c *Client) LoadDropdowns(ctx context.Context) *DropdownData {
	d := &DropdownData{}

	var wg sync.WaitGroup
	load := func(path, key string, out any, errOut *error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			raw, err := c.getJSON(ctx, path)
			if err != nil {
				*errOut = err
				return
			}
			DecodeList(raw, out, key)
		}()
	}

	load("/api/dropdown/state", "states", &d.States, &d.StatesErr)
	load("/api/dropdown/city", "cities", &d.Cities, &d.CitiesErr)
	load("/api/dropdown/banks", "banks", &d.Banks, &d.BanksErr)
	load("/api/dropdown/vendor-types", "vendorTypes", &d.VendorTypes, &d.VendorTypesErr)
	load("/api/dropdown/transaction-types", "transactionTypes", &d.TransactionTypes, &d.TransactionTypesErr)
	load("/api/dropdown/vouchers", "vouchers", &d.Vouchers, &d.VouchersErr)

	wg.Wait()
	return d
}

// CheckAccountExists asks the backend whether an account number is taken.
// Callers treat an error as "could not check": it must not block
// submission.
func (c *Client) CheckAccountExists(ctx context.Context, accountNumber string) (bool, error) {
	raw, err := c.getJSON(ctx, "/api/bank/check-account/"+accountNumber)
	if err != nil {
		return false, err
	}
	var result struct {
		Exists bool `json:"exists"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return false, err
	}
	return result.Exists, nil
}

// BankForm is the payload for creating a bank account.
type BankForm struct {
	BankName      string          `json:"bank_name"`
	BankAccountNo string          `json:"bank_account_no"`
	BankIFSC      string          `json:"bank_ifsc"`
	BankBranch    string          `json:"bank_branch"`
	CityID        uint            `json:"city_id"`
	StateID       uint            `json:"state_id"`
	BankAddress   string          `json:"bank_address"`
	BankType      models.BankType `json:"bank_type"`
	BankAmount    float64         `json:"bank_amount"`
}

// AddBank runs the uniqueness pre-check and then creates the bank. A
// duplicate stops the request before it reaches the create endpoint; a
// failed check is logged by the caller and does not block.
func (c *Client) AddBank(ctx context.Context, form BankForm) error {
	exists, err := c.CheckAccountExists(ctx, form.BankAccountNo)
	if err == nil && exists {
		return ErrAccountExists
	}
	return c.sendJSON(ctx, http.MethodPost, "/api/bank/add", form)
}

// VoucherDecider commits voucher decisions; it satisfies workflow.Decider.
type VoucherDecider struct {
	Client *Client
}

func (d VoucherDecider) UpdateStatus(ctx context.Context, id uint, decision workflow.Decision, note string) error {
	payload := map[string]any{
		"voucher_status":      decision,
		"voucher_entry_date":  time.Now().Format(time.RFC3339),
		"voucher_description": nullable(note),
	}
	return d.Client.sendJSON(ctx, http.MethodPatch, fmt.Sprintf("/api/update/voucher/%d", id), payload)
}

// TransactionDecider commits transaction decisions.
type TransactionDecider struct {
	Client *Client
}

func (d TransactionDecider) UpdateStatus(ctx context.Context, id uint, decision workflow.Decision, note string) error {
	payload := map[string]any{
		"trns_status":         decision,
		"trns_date":           time.Now().Format(time.RFC3339),
		"transaction_details": nullable(note),
	}
	return d.Client.sendJSON(ctx, http.MethodPatch, fmt.Sprintf("/api/update/transaction/%d", id), payload)
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
