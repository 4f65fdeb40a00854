package api

import (
	"encoding/json"
	"net/http"

	"github.com/zkmixer/zkmixer/mixer"
)

// newWithdrawal spends a note against a pool.
func (a *API) newWithdrawal(w http.ResponseWriter, r *http.Request) {
	pid, err := poolID(r)
	if err != nil {
		ErrMalformedPoolID.WithErr(err).Write(w)
		return
	}
	req := &NewWithdrawalRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.WithErr(err).Write(w)
		return
	}
	rec, err := a.mixer.Withdraw(pid, &mixer.WithdrawRequest{
		Root:          req.Root,
		NullifierHash: req.NullifierHash,
		Recipient:     req.Recipient,
		Proof:         req.Proof,
	})
	if err != nil {
		fromMixerError(err).Write(w)
		return
	}
	httpWriteJSON(w, &NewWithdrawalResponse{Amount: rec.Amount, Fee: rec.Fee})
}

// withdrawals returns the withdrawal event log of a pool.
func (a *API) withdrawals(w http.ResponseWriter, r *http.Request) {
	pid, err := poolID(r)
	if err != nil {
		ErrMalformedPoolID.WithErr(err).Write(w)
		return
	}
	recs, err := a.mixer.Withdrawals(pid, 0)
	if err != nil {
		fromMixerError(err).Write(w)
		return
	}
	httpWriteJSON(w, &WithdrawalsResponse{Withdrawals: recs})
}
