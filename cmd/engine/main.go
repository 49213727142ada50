package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"

	"hrms-engine/internal/app"
	"hrms-engine/internal/config"
	"hrms-engine/internal/httpapi"
	"hrms-engine/internal/store"
)

func main() {
	// Engine data dir: use env if provided (the desktop shell can pass one),
	// else a local folder.
	dataDir := os.Getenv("HRMS_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	userCfgPath, err := config.EnsureUserConfig(dataDir)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		return config.Load(userCfgPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfg.App.DataDir = dataDir
	cfgVal.Store(cfg)

	cache, err := store.Open(filepath.Join(dataDir, "hrms.db"))
	if err != nil {
		log.Fatalf("snapshot store open failed: %v", err)
	}
	defer cache.Close()

	a := app.New(cfg, cache)

	// Cold start: verify any stored token and seed jobs from the snapshot.
	warmCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	a.Warmup(warmCtx)
	cancel()

	mux := httpapi.NewMux(httpapi.Deps{
		App:         a,
		CfgVal:      &cfgVal,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
	})

	handler := httpapi.Chain(mux,
		httpapi.RequestID,
		httpapi.Recover,
		httpapi.AccessLog,
		httpapi.Cors,
	)

	port := cfg.App.Port
	if port <= 0 {
		port = config.Default().App.Port
	}
	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("level=info msg=\"engine listening\" addr=http://%s api=%s data_dir=%s", addr, cfg.API.BaseURL, dataDir)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Fatal(srv.Serve(ln))
}
