package tests

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/zkmixer/zkmixer/api/client"
	"github.com/zkmixer/zkmixer/crypto/ethereum"
	"github.com/zkmixer/zkmixer/ledger"
	"github.com/zkmixer/zkmixer/mixer"
	"github.com/zkmixer/zkmixer/service"
	"github.com/zkmixer/zkmixer/storage"
	"github.com/zkmixer/zkmixer/util"
	"go.vocdoni.io/dvote/db/metadb"
)

// NewTestService starts a full mixer stack (storage, ledger, controller and
// HTTP API) on a random local port and registers its teardown with t.
func NewTestService(t *testing.T, ctx context.Context) *service.APIService {
	// metadb.NewTest already registers a cleanup that closes the database,
	// so the store must not be closed again here.
	store := storage.New(metadb.NewTest(t))

	m := mixer.New(store, ledger.NewMemLedger())

	srv := service.NewAPI(m, "127.0.0.1", util.RandomInt(40000, 60000))
	if err := srv.Start(ctx); err != nil {
		t.Fatalf("could not start API service: %v", err)
	}
	t.Cleanup(srv.Stop)

	// Wait for the HTTP server to start
	time.Sleep(500 * time.Millisecond)
	return srv
}

// NewTestSigner creates and initializes a new ethereum signer for testing.
func NewTestSigner() (*ethereum.SignKeys, error) {
	signer := ethereum.NewSignKeys()
	if err := signer.Generate(); err != nil {
		return nil, err
	}
	return signer, nil
}

// NewTestClient creates a new API client for testing.
func NewTestClient(port int) (*client.HTTPclient, error) {
	return client.New(fmt.Sprintf("http://127.0.0.1:%d", port))
}
