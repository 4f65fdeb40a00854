package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/zkmixer/zkmixer/ledger"
	"github.com/zkmixer/zkmixer/log"
	"github.com/zkmixer/zkmixer/mixer"
	"github.com/zkmixer/zkmixer/service"
	"github.com/zkmixer/zkmixer/storage"
	"go.vocdoni.io/dvote/db"
	"go.vocdoni.io/dvote/db/metadb"
)

func main() {
	dataDir := flag.String("dataDir", filepath.Join(os.TempDir(), "zkmixer"), "data directory for the key-value store")
	dbType := flag.String("dbType", db.TypePebble, "key-value store type")
	host := flag.String("host", "0.0.0.0", "API host to bind")
	port := flag.Int("port", 8080, "API port to bind")
	logLevel := flag.String("logLevel", "info", "log level (debug, info, warn, error)")
	flag.Parse()
	log.Init(*logLevel, "stdout", nil)

	database, err := metadb.New(*dbType, *dataDir)
	if err != nil {
		log.Fatalf("could not open the database: %v", err)
	}
	stg := storage.New(database)
	defer stg.Close()

	m := mixer.New(stg, ledger.NewMemLedger())

	apiService := service.NewAPI(m, *host, *port)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := apiService.Start(ctx); err != nil {
		log.Fatalf("could not start the API service: %v", err)
	}
	log.Infow("mixer daemon running", "host", *host, "port", *port, "dataDir", *dataDir)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Infow("received shutdown signal")
	apiService.Stop()
}
