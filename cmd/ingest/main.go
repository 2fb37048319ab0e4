// Command ingest runs the pipeline outside the lambda runtime: a single
// object for spot checks, or a backfill over many keys with a worker pool.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/panjf2000/ants/v2"

	"github.com/sbathletics/gridiron-ingest/internal/app"
	"github.com/sbathletics/gridiron-ingest/internal/config"
	"github.com/sbathletics/gridiron-ingest/internal/platform/logging"
	"github.com/sbathletics/gridiron-ingest/internal/usecase"
)

func main() {
	bucket := flag.String("bucket", "", "source bucket name")
	workers := flag.Int("workers", 0, "backfill worker count (defaults to BACKFILL_WORKERS)")
	flag.Parse()

	keys := flag.Args()
	if *bucket == "" || len(keys) == 0 {
		fmt.Fprintf(os.Stderr, "usage: %s -bucket <name> [-workers n] <key> [key ...]\n", os.Args[0])
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if *workers > 0 {
		cfg.BackfillWorkers = *workers
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}

	failed := run(ctx, application, *bucket, keys, cfg.BackfillWorkers)

	closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := application.Close(closeCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func run(ctx context.Context, application *app.App, bucket string, keys []string, workers int) int {
	if len(keys) == 1 {
		if ingestOne(ctx, application, bucket, keys[0]) {
			return 0
		}
		return 1
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		application.Log.Error("create worker pool", "error", err)
		return len(keys)
	}
	defer pool.Release()

	var failed int
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, key := range keys {
		key := key
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			if !ingestOne(ctx, application, bucket, key) {
				mu.Lock()
				failed++
				mu.Unlock()
			}
		}); err != nil {
			wg.Done()
			application.Log.Error("submit backfill task", "key", key, "error", err)
			mu.Lock()
			failed++
			mu.Unlock()
		}
	}
	wg.Wait()

	return failed
}

func ingestOne(ctx context.Context, application *app.App, bucket, key string) bool {
	result, err := application.Service.IngestObject(ctx, bucket, key)
	if err != nil {
		application.Log.ErrorContext(ctx, "ingestion failed", "bucket", bucket, "key", key, "error", err)
		return false
	}
	application.PublishResult(ctx, result)
	printResult(result)
	return true
}

func printResult(result usecase.Result) {
	body, err := sonic.MarshalString(result)
	if err != nil {
		fmt.Printf("%+v\n", result)
		return
	}
	fmt.Println(body)
}
