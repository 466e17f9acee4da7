package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/certen-labs/objectchain/pkg/config"
	"github.com/certen-labs/objectchain/pkg/metrics"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	var (
		committeeFile = flag.String("committee-file", "", "Path to committee bootstrap YAML (overrides COMMITTEE_FILE env var)")
		showHelp      = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *showHelp {
		printHelp()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration:", err)
	}
	if *committeeFile != "" {
		cfg.CommitteeFile = *committeeFile
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration:", err)
	}

	log.Printf("loading committee from %s", cfg.CommitteeFile)
	committee, err := config.LoadCommittee(cfg.CommitteeFile)
	if err != nil {
		log.Fatal("failed to load committee:", err)
	}
	log.Printf("node %s joining committee epoch=%d size=%d quorum_threshold=%d",
		cfg.NodeID, committee.Epoch(), committee.Size(), committee.QuorumThreshold())

	var metricsServer *http.Server
	if cfg.MetricsEnabled {
		reg := metrics.NewRegistry()
		mux := http.NewServeMux()
		mux.Handle("/metrics", reg.Handler())
		metricsServer = &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
		go func() {
			log.Printf("metrics listening on %s", cfg.MetricsAddr)
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatal("metrics server failed:", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("metrics server shutdown error: %v", err)
		}
	}
	log.Println("stopped")
}

func printHelp() {
	fmt.Println("objectchain-node")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  objectchain-node [OPTIONS]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --committee-file=PATH   Committee bootstrap YAML (default: COMMITTEE_FILE env var)")
	fmt.Println("  --help                  Show this help message")
	fmt.Println()
	fmt.Println("Loads a committee bootstrap file and exposes Prometheus metrics for the")
	fmt.Println("signing and certification pipeline. It does not run a consensus engine or")
	fmt.Println("network transport; those are outside this module's scope.")
}
