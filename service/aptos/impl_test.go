package aptos

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	bCtx "github.com/movebid/goapi/base/ctx"
	"github.com/movebid/goapi/domain"
)

func newTestClient(nodeUrl string) Client {
	return NewClient(&ClientCfg{
		HttpClient:     http.Client{},
		NodeUrl:        nodeUrl,
		Timeout:        time.Second,
		TxTimeout:      2 * time.Second,
		TxPollInterval: 10 * time.Millisecond,
	})
}

func Test_View(t *testing.T) {
	req := require.New(t)
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal("/v1/view", r.URL.Path)
		req.Equal("POST", r.Method)
		gotBody, _ = ioutil.ReadAll(r.Body)
		w.Write([]byte(`[[{"owner":"0xabc"}]]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	raw, err := c.View(bCtx.Background(), &ViewPayload{
		Function:      "0x1::auction_contract::get_all_active_auctions",
		TypeArguments: []string{},
		Arguments:     []interface{}{},
	})
	req.NoError(err)
	req.JSONEq(`[[{"owner":"0xabc"}]]`, string(raw))

	sent := map[string]interface{}{}
	req.NoError(json.Unmarshal(gotBody, &sent))
	req.Equal("0x1::auction_contract::get_all_active_auctions", sent["function"])
}

func Test_View_ErrorStatus(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad view", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.View(bCtx.Background(), &ViewPayload{Function: "0x1::auction_contract::get_all_active_auctions"})
	req.ErrorIs(err, ErrStatusCodeNotOk)
}

func Test_WaitForTransaction(t *testing.T) {
	req := require.New(t)
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal("/v1/transactions/by_hash/0xdead", r.URL.Path)
		switch atomic.AddInt32(&calls, 1) {
		case 1:
			http.NotFound(w, r)
		case 2:
			w.Write([]byte(`{"type":"pending_transaction","hash":"0xdead"}`))
		default:
			w.Write([]byte(`{"type":"user_transaction","hash":"0xdead","success":true,"vm_status":"Executed successfully","gas_used":"21","version":"1045"}`))
		}
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	receipt, err := c.WaitForTransaction(bCtx.Background(), domain.TxHash("0xdead"))
	req.NoError(err)
	req.Equal(domain.TxHash("0xdead"), receipt.Hash)
	req.True(receipt.Success)
	req.Equal(uint64(21), receipt.GasUsed)
	req.Equal(uint64(1045), receipt.Version)
	req.GreaterOrEqual(atomic.LoadInt32(&calls), int32(3))
}

func Test_WaitForTransaction_Timeout(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"type":"pending_transaction","hash":"0xdead"}`))
	}))
	defer srv.Close()

	c := NewClient(&ClientCfg{
		HttpClient:     http.Client{},
		NodeUrl:        srv.URL,
		Timeout:        time.Second,
		TxTimeout:      50 * time.Millisecond,
		TxPollInterval: 10 * time.Millisecond,
	})
	_, err := c.WaitForTransaction(bCtx.Background(), domain.TxHash("0xdead"))
	req.ErrorIs(err, ErrTxTimeout)
}

func Test_LedgerInfo(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal("/v1", r.URL.Path)
		w.Write([]byte(`{"chain_id":1,"ledger_version":"99","ledger_timestamp":"1700000000000000","node_role":"full_node"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	info, err := c.LedgerInfo(bCtx.Background())
	req.NoError(err)
	req.Equal(uint8(1), info.ChainId)
	req.Equal("99", info.LedgerVersion)
}
