package api

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// newDeposit inserts a commitment into a pool.
func (a *API) newDeposit(w http.ResponseWriter, r *http.Request) {
	pid, err := poolID(r)
	if err != nil {
		ErrMalformedPoolID.WithErr(err).Write(w)
		return
	}
	req := &NewDepositRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.WithErr(err).Write(w)
		return
	}
	rec, root, err := a.mixer.Deposit(pid, req.Commitment, req.Amount, req.EncryptedNote)
	if err != nil {
		fromMixerError(err).Write(w)
		return
	}
	httpWriteJSON(w, &NewDepositResponse{LeafIndex: rec.LeafIndex, Root: root})
}

// commitments returns the append-only commitment event log of a pool,
// starting at the leaf index given by the "from" query parameter.
func (a *API) commitments(w http.ResponseWriter, r *http.Request) {
	pid, err := poolID(r)
	if err != nil {
		ErrMalformedPoolID.WithErr(err).Write(w)
		return
	}
	var from uint64
	if v := r.URL.Query().Get("from"); v != "" {
		from, err = strconv.ParseUint(v, 10, 64)
		if err != nil {
			ErrMalformedBody.Withf("invalid from parameter: %v", err).Write(w)
			return
		}
	}
	recs, err := a.mixer.Commitments(pid, from, 0)
	if err != nil {
		fromMixerError(err).Write(w)
		return
	}
	httpWriteJSON(w, &CommitmentsResponse{Commitments: recs})
}
