package api

import (
	"encoding/json"
	"net/http"
	"time"
)

// initializeMixer establishes the global configuration. It can succeed
// exactly once.
func (a *API) initializeMixer(w http.ResponseWriter, r *http.Request) {
	req := &InitializeRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.WithErr(err).Write(w)
		return
	}
	cfg, err := a.mixer.Initialize(req.Authority, req.FeeCollector, req.FeeBPS,
		time.Duration(req.MinDelaySeconds)*time.Second)
	if err != nil {
		fromMixerError(err).Write(w)
		return
	}
	httpWriteJSON(w, cfg)
}

// pauseMixer stops deposits and withdrawals.
func (a *API) pauseMixer(w http.ResponseWriter, r *http.Request) {
	req := &AdminRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.WithErr(err).Write(w)
		return
	}
	if err := a.mixer.Pause(req.Signature); err != nil {
		fromMixerError(err).Write(w)
		return
	}
	httpWriteOK(w)
}

// unpauseMixer resumes deposits and withdrawals.
func (a *API) unpauseMixer(w http.ResponseWriter, r *http.Request) {
	req := &AdminRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.WithErr(err).Write(w)
		return
	}
	if err := a.mixer.Unpause(req.Signature); err != nil {
		fromMixerError(err).Write(w)
		return
	}
	httpWriteOK(w)
}

// transferAuthority hands the authority over to a new address.
func (a *API) transferAuthority(w http.ResponseWriter, r *http.Request) {
	req := &AuthorityRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.WithErr(err).Write(w)
		return
	}
	if err := a.mixer.TransferAuthority(req.NewAuthority, req.Signature); err != nil {
		fromMixerError(err).Write(w)
		return
	}
	httpWriteOK(w)
}

// updateFeeCollector replaces the fee collector address.
func (a *API) updateFeeCollector(w http.ResponseWriter, r *http.Request) {
	req := &FeeCollectorRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.WithErr(err).Write(w)
		return
	}
	if err := a.mixer.UpdateFeeCollector(req.NewFeeCollector, req.Signature); err != nil {
		fromMixerError(err).Write(w)
		return
	}
	httpWriteOK(w)
}
