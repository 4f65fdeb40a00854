package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/zkmixer/zkmixer/api"
	"github.com/zkmixer/zkmixer/types"
)

// request wraps Request for the common case: JSON in, JSON out, anything
// but 200 decoded as an api.Error.
func (c *HTTPclient) request(method string, jsonBody, out any, params []string, urlPath ...string) error {
	data, status, err := c.Request(method, jsonBody, params, urlPath...)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		var body struct {
			Error string `json:"error"`
			Code  int    `json:"code"`
		}
		if jsonErr := json.Unmarshal(data, &body); jsonErr == nil && body.Code != 0 {
			return api.Error{Err: errors.New(body.Error), Code: body.Code, HTTPstatus: status}
		}
		return fmt.Errorf("%s: %d (%s)", errCodeNot200, status, data)
	}
	if out != nil {
		return json.Unmarshal(data, out)
	}
	return nil
}

// InitializeMixer establishes the global configuration.
func (c *HTTPclient) InitializeMixer(req *api.InitializeRequest) (*types.GlobalConfig, error) {
	cfg := &types.GlobalConfig{}
	if err := c.request(HTTPPOST, req, cfg, nil, api.AdminInitializeEndpoint); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Pause stops deposits and withdrawals.
func (c *HTTPclient) Pause(signature types.HexBytes) error {
	return c.request(HTTPPOST, &api.AdminRequest{Signature: signature}, nil, nil, api.AdminPauseEndpoint)
}

// Unpause resumes deposits and withdrawals.
func (c *HTTPclient) Unpause(signature types.HexBytes) error {
	return c.request(HTTPPOST, &api.AdminRequest{Signature: signature}, nil, nil, api.AdminUnpauseEndpoint)
}

// TransferAuthority hands the authority over to a new address.
func (c *HTTPclient) TransferAuthority(req *api.AuthorityRequest) error {
	return c.request(HTTPPOST, req, nil, nil, api.AdminAuthorityEndpoint)
}

// UpdateFeeCollector replaces the fee collector address.
func (c *HTTPclient) UpdateFeeCollector(req *api.FeeCollectorRequest) error {
	return c.request(HTTPPOST, req, nil, nil, api.AdminFeeCollectorEndpoint)
}

// NewPool creates a denomination pool and returns its record.
func (c *HTTPclient) NewPool(req *api.NewPoolRequest) (*types.MixerPool, error) {
	pool := &types.MixerPool{}
	if err := c.request(HTTPPOST, req, pool, nil, api.PoolsEndpoint); err != nil {
		return nil, err
	}
	return pool, nil
}

// Pools lists all pool records.
func (c *HTTPclient) Pools() ([]*types.MixerPool, error) {
	res := &api.PoolsResponse{}
	if err := c.request(HTTPGET, nil, res, nil, api.PoolsEndpoint); err != nil {
		return nil, err
	}
	return res.Pools, nil
}

// Pool returns one pool record.
func (c *HTTPclient) Pool(pid types.HexBytes) (*types.MixerPool, error) {
	pool := &types.MixerPool{}
	if err := c.request(HTTPGET, nil, pool, nil, api.PoolsEndpoint, pid.String()); err != nil {
		return nil, err
	}
	return pool, nil
}

// ClosePool deletes a drained pool.
func (c *HTTPclient) ClosePool(pid types.HexBytes, signature types.HexBytes) error {
	return c.request(HTTPDELETE, &api.AdminRequest{Signature: signature}, nil, nil,
		api.PoolsEndpoint, pid.String())
}

// NewDeposit submits a commitment and returns the assigned leaf index and
// the new root.
func (c *HTTPclient) NewDeposit(pid types.HexBytes, req *api.NewDepositRequest) (*api.NewDepositResponse, error) {
	res := &api.NewDepositResponse{}
	if err := c.request(HTTPPOST, req, res, nil, api.PoolsEndpoint, pid.String(), "deposits"); err != nil {
		return nil, err
	}
	return res, nil
}

// Commitments reads the commitment event log starting at leaf index from.
func (c *HTTPclient) Commitments(pid types.HexBytes, from uint64) ([]*types.CommitmentRecord, error) {
	res := &api.CommitmentsResponse{}
	params := []string{"from", strconv.FormatUint(from, 10)}
	if err := c.request(HTTPGET, nil, res, params, api.PoolsEndpoint, pid.String(), "commitments"); err != nil {
		return nil, err
	}
	return res.Commitments, nil
}

// NewWithdrawal spends a note and returns the net amount and fee.
func (c *HTTPclient) NewWithdrawal(pid types.HexBytes, req *api.NewWithdrawalRequest) (*api.NewWithdrawalResponse, error) {
	res := &api.NewWithdrawalResponse{}
	if err := c.request(HTTPPOST, req, res, nil, api.PoolsEndpoint, pid.String(), "withdrawals"); err != nil {
		return nil, err
	}
	return res, nil
}

// Withdrawals reads the withdrawal event log of a pool.
func (c *HTTPclient) Withdrawals(pid types.HexBytes) ([]*types.WithdrawalRecord, error) {
	res := &api.WithdrawalsResponse{}
	if err := c.request(HTTPGET, nil, res, nil, api.PoolsEndpoint, pid.String(), "withdrawals"); err != nil {
		return nil, err
	}
	return res.Withdrawals, nil
}
