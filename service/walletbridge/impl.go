package walletbridge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	bCtx "github.com/movebid/goapi/base/ctx"
	"github.com/movebid/goapi/base/log"
	"github.com/movebid/goapi/domain"
	"github.com/movebid/goapi/domain/auction"
	"github.com/movebid/goapi/domain/wallet"
)

// client implements wallet.Provider against an external wallet agent. The
// agent owns keys and signing; we only hand over canonical payloads.
type client struct {
	client    http.Client
	bridgeUrl string
	timeout   time.Duration
}

func NewClient(cfg *ClientCfg) wallet.Provider {
	return &client{
		client:    cfg.HttpClient,
		bridgeUrl: cfg.BridgeUrl,
		timeout:   cfg.Timeout,
	}
}

func (c *client) Account(ctx bCtx.Ctx) (domain.Address, error) {
	url := fmt.Sprintf("%s/account", c.bridgeUrl)
	data, status, err := c.do(ctx, "GET", url, nil)
	if status == http.StatusNotFound {
		return "", domain.ErrNoWalletAccount
	}
	if err != nil {
		return "", err
	}
	resp := &accountResponse{}
	if err := json.Unmarshal(data, resp); err != nil {
		ctx.WithField("err", err).Error("json.Unmarshal failed")
		return "", err
	}
	if resp.Address == "" {
		return "", domain.ErrNoWalletAccount
	}
	return domain.Address(resp.Address).ToLower(), nil
}

func (c *client) SignAndSubmitTransaction(ctx bCtx.Ctx, payload *auction.EntryPayload) (domain.TxHash, error) {
	url := fmt.Sprintf("%s/transactions", c.bridgeUrl)
	body, err := json.Marshal(payload)
	if err != nil {
		ctx.WithField("err", err).Error("json.Marshal failed")
		return "", err
	}
	data, _, err := c.do(ctx, "POST", url, body)
	if err != nil {
		ctx.WithFields(log.Fields{
			"function": payload.Function,
			"err":      err,
		}).Error("sign and submit failed")
		return "", err
	}
	resp := &submitResponse{}
	if err := json.Unmarshal(data, resp); err != nil {
		ctx.WithField("err", err).Error("json.Unmarshal failed")
		return "", err
	}
	return domain.TxHash(resp.Hash), nil
}

func (c *client) do(ctx bCtx.Ctx, method, url string, body []byte) ([]byte, int, error) {
	reqCtx, cancel := bCtx.WithTimeout(ctx, c.timeout)
	defer cancel()
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(reqCtx, method, url, reader)
	if err != nil {
		return nil, 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.client.Do(req)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("client.Do failed")
		return nil, 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		ctx.WithFields(log.Fields{
			"url":        url,
			"statusCode": resp.StatusCode,
		}).Warn("resp.StatusCode != 200")
		return nil, resp.StatusCode, ErrStatusCodeNotOk
	}
	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return data, resp.StatusCode, nil
}
