package aptos

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strconv"
	"time"

	"github.com/movebid/goapi/base/backoff"
	bCtx "github.com/movebid/goapi/base/ctx"
	"github.com/movebid/goapi/base/log"
	"github.com/movebid/goapi/domain"
	"golang.org/x/xerrors"
)

const defaultTxPollInterval = time.Second

type client struct {
	client         http.Client
	nodeUrl        string
	timeout        time.Duration
	txTimeout      time.Duration
	txPollInterval time.Duration
}

func NewClient(cfg *ClientCfg) Client {
	pollInterval := cfg.TxPollInterval
	if pollInterval == 0 {
		pollInterval = defaultTxPollInterval
	}
	return &client{
		client:         cfg.HttpClient,
		nodeUrl:        cfg.NodeUrl,
		timeout:        cfg.Timeout,
		txTimeout:      cfg.TxTimeout,
		txPollInterval: pollInterval,
	}
}

func (c *client) View(ctx bCtx.Ctx, payload *ViewPayload) (json.RawMessage, error) {
	url := fmt.Sprintf("%s/v1/view", c.nodeUrl)
	body, err := json.Marshal(payload)
	if err != nil {
		ctx.WithField("err", err).Error("json.Marshal failed")
		return nil, err
	}
	data, err := c.post(ctx, url, body)
	if err != nil {
		ctx.WithFields(log.Fields{
			"function": payload.Function,
			"err":      err,
		}).Error("view call failed")
		return nil, err
	}
	return json.RawMessage(data), nil
}

// transaction is the by_hash response. u64 values arrive as JSON strings.
type transaction struct {
	Type     string `json:"type"`
	Hash     string `json:"hash"`
	Success  bool   `json:"success"`
	VMStatus string `json:"vm_status"`
	GasUsed  string `json:"gas_used"`
	Version  string `json:"version"`
}

const pendingTransactionType = "pending_transaction"

func (c *client) WaitForTransaction(ctx bCtx.Ctx, hash domain.TxHash) (*domain.TxReceipt, error) {
	url := fmt.Sprintf("%s/v1/transactions/by_hash/%s", c.nodeUrl, hash)
	waitCtx, cancel := bCtx.WithTimeout(ctx, c.txTimeout)
	defer cancel()

	poll := backoff.NewConstant(c.txPollInterval)
	for {
		data, status, err := c.get(waitCtx, url)
		switch {
		case err != nil && waitCtx.Err() != nil:
			return nil, ErrTxTimeout
		case err != nil && status != http.StatusNotFound:
			return nil, err
		case err == nil:
			tx := &transaction{}
			if err := json.Unmarshal(data, tx); err != nil {
				waitCtx.WithField("err", err).Error("json.Unmarshal failed")
				return nil, err
			}
			if tx.Type != pendingTransactionType {
				return toReceipt(tx)
			}
		}
		// not yet known to the node, or still pending
		if err := poll.Backoff(waitCtx); err != nil {
			return nil, ErrTxTimeout
		}
	}
}

func (c *client) LedgerInfo(ctx bCtx.Ctx) (*LedgerInfo, error) {
	url := fmt.Sprintf("%s/v1", c.nodeUrl)
	data, _, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	info := &LedgerInfo{}
	if err := json.Unmarshal(data, info); err != nil {
		ctx.WithField("err", err).Error("json.Unmarshal failed")
		return nil, err
	}
	return info, nil
}

func toReceipt(tx *transaction) (*domain.TxReceipt, error) {
	gasUsed, err := strconv.ParseUint(tx.GasUsed, 10, 64)
	if err != nil {
		return nil, xerrors.Errorf("parse gas_used %q: %w", tx.GasUsed, err)
	}
	version, err := strconv.ParseUint(tx.Version, 10, 64)
	if err != nil {
		return nil, xerrors.Errorf("parse version %q: %w", tx.Version, err)
	}
	return &domain.TxReceipt{
		Hash:     domain.TxHash(tx.Hash),
		Success:  tx.Success,
		VMStatus: tx.VMStatus,
		GasUsed:  gasUsed,
		Version:  version,
	}, nil
}

func (c *client) get(ctx bCtx.Ctx, url string) ([]byte, int, error) {
	reqCtx, cancel := bCtx.WithTimeout(ctx, c.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(reqCtx, "GET", url, nil)
	if err != nil {
		return nil, 0, err
	}
	return c.do(reqCtx, req)
}

func (c *client) post(ctx bCtx.Ctx, url string, body []byte) ([]byte, error) {
	reqCtx, cancel := bCtx.WithTimeout(ctx, c.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(reqCtx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	data, _, err := c.do(reqCtx, req)
	return data, err
}

func (c *client) do(ctx bCtx.Ctx, req *http.Request) ([]byte, int, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": req.URL.String(),
			"err": err,
		}).Error("client.Do failed")
		return nil, 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		ctx.WithFields(log.Fields{
			"url":        req.URL.String(),
			"statusCode": resp.StatusCode,
		}).Warn("resp.StatusCode != 200")
		return nil, resp.StatusCode, ErrStatusCodeNotOk
	}
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": req.URL.String(),
			"err": err,
		}).Error("failed to read body")
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}
