package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/zkmixer/zkmixer/mixer"
	"github.com/zkmixer/zkmixer/types"
)

// poolID extracts and validates the pool ID URL parameter.
func poolID(r *http.Request) (types.HexBytes, error) {
	var pid types.HexBytes
	if err := pid.SetString(chi.URLParam(r, PoolURLParam)); err != nil {
		return nil, err
	}
	if len(pid) != types.PoolIDSize {
		return nil, ErrMalformedPoolID.Withf("%d bytes", len(pid))
	}
	return pid, nil
}

// newPool creates a denomination pool.
func (a *API) newPool(w http.ResponseWriter, r *http.Request) {
	req := &NewPoolRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.WithErr(err).Write(w)
		return
	}
	pool, err := a.mixer.CreatePool(mixer.PoolParams{
		Asset:         req.Asset,
		Denomination:  req.Denomination,
		ChainID:       req.ChainID,
		HashType:      req.HashType,
		ProvingSystem: req.ProvingSystem,
		VerifyingKey:  req.VerifyingKey,
	}, req.Signature)
	if err != nil {
		fromMixerError(err).Write(w)
		return
	}
	httpWriteJSON(w, pool)
}

// pools lists all pool records.
func (a *API) pools(w http.ResponseWriter, _ *http.Request) {
	pools, err := a.mixer.Pools()
	if err != nil {
		fromMixerError(err).Write(w)
		return
	}
	httpWriteJSON(w, &PoolsResponse{Pools: pools})
}

// pool returns one pool record.
func (a *API) pool(w http.ResponseWriter, r *http.Request) {
	pid, err := poolID(r)
	if err != nil {
		ErrMalformedPoolID.WithErr(err).Write(w)
		return
	}
	pool, err := a.mixer.Pool(pid)
	if err != nil {
		fromMixerError(err).Write(w)
		return
	}
	httpWriteJSON(w, pool)
}

// closePool deletes a drained pool.
func (a *API) closePool(w http.ResponseWriter, r *http.Request) {
	pid, err := poolID(r)
	if err != nil {
		ErrMalformedPoolID.WithErr(err).Write(w)
		return
	}
	req := &AdminRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.WithErr(err).Write(w)
		return
	}
	if err := a.mixer.ClosePool(pid, req.Signature); err != nil {
		fromMixerError(err).Write(w)
		return
	}
	httpWriteOK(w)
}
