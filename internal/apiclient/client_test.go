package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"schoolfin-backend/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDropdownsIndependentFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/dropdown/state":
			// wrapped shape
			w.Write([]byte(`{"states":[{"state_id":1,"state_name":"Maharashtra"}]}`))
		case "/api/dropdown/city":
			// bare array shape
			w.Write([]byte(`[{"city_id":1,"city_name":"Nagpur","state_id":1}]`))
		case "/api/dropdown/banks":
			http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
		default:
			w.Write([]byte(`{"data":[]}`))
		}
	}))
	defer srv.Close()

	d := New(srv.URL).LoadDropdowns(context.Background())

	assert.NoError(t, d.StatesErr)
	require.Len(t, d.States, 1)
	assert.Equal(t, "Maharashtra", d.States[0].StateName)

	assert.NoError(t, d.CitiesErr)
	require.Len(t, d.Cities, 1)

	// One failed list must not blank the others
	assert.Error(t, d.BanksErr)
	assert.Contains(t, d.BanksErr.Error(), "boom")
	assert.Empty(t, d.Banks)

	assert.NoError(t, d.VendorTypesErr)
	assert.NoError(t, d.TransactionTypesErr)
	assert.NoError(t, d.VouchersErr)
}

func TestCheckAccountExists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/bank/check-account/123456789", r.URL.Path)
		w.Write([]byte(`{"exists":true}`))
	}))
	defer srv.Close()

	exists, err := New(srv.URL).CheckAccountExists(context.Background(), "123456789")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestAddBankDuplicateStopsBeforeCreate(t *testing.T) {
	var createCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			w.Write([]byte(`{"exists":true}`))
		case r.Method == http.MethodPost:
			atomic.AddInt32(&createCalls, 1)
			w.WriteHeader(http.StatusCreated)
		}
	}))
	defer srv.Close()

	err := New(srv.URL).AddBank(context.Background(), BankForm{BankAccountNo: "123456789"})
	assert.ErrorIs(t, err, ErrAccountExists)
	assert.Equal(t, int32(0), atomic.LoadInt32(&createCalls))
}

func TestAddBankCheckFailureDoesNotBlock(t *testing.T) {
	var createCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			http.Error(w, `{"error":"check unavailable"}`, http.StatusInternalServerError)
		case r.Method == http.MethodPost:
			atomic.AddInt32(&createCalls, 1)
			w.WriteHeader(http.StatusCreated)
		}
	}))
	defer srv.Close()

	err := New(srv.URL).AddBank(context.Background(), BankForm{BankAccountNo: "123456789"})
	assert.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&createCalls))
}

func TestVoucherDeciderSendsPatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/update/voucher/7", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "APPROVED", body["voucher_status"])
		assert.Nil(t, body["voucher_description"], "empty note is sent as null")

		w.Write([]byte(`{"message":"ok"}`))
	}))
	defer srv.Close()

	d := VoucherDecider{Client: New(srv.URL)}
	err := d.UpdateStatus(context.Background(), 7, workflow.StatusApproved, "")
	assert.NoError(t, err)
}

func TestDeciderErrorCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Voucher 7 has already been decided"}`, http.StatusConflict)
	}))
	defer srv.Close()

	d := TransactionDecider{Client: New(srv.URL)}
	err := d.UpdateStatus(context.Background(), 7, workflow.StatusRejected, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "409")
	assert.Contains(t, err.Error(), "already been decided")
}

func TestSlowDecisionClassifiedAsTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"message":"ok"}`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	client.HTTP.Timeout = 20 * time.Millisecond

	list := workflow.NewPendingList(VoucherDecider{Client: client}, time.Minute)
	list.Load([]uint{7})

	err := list.Decide(context.Background(), 7, workflow.StatusApproved, "")
	assert.ErrorIs(t, err, workflow.ErrTimeout)

	// The item stays PENDING and can be retried
	visible := list.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, workflow.StatusPending, visible[0].Status)
}
