package walletbridge

import (
	"errors"
	"net/http"
	"time"
)

var (
	ErrStatusCodeNotOk = errors.New("http.status != 200")
)

type ClientCfg struct {
	HttpClient http.Client
	// BridgeUrl is the wallet agent endpoint holding the key material
	BridgeUrl string
	Timeout   time.Duration
}

type accountResponse struct {
	Address string `json:"address"`
}

type submitResponse struct {
	Hash string `json:"hash"`
}
