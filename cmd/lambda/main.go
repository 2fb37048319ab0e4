package main

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	sonic "github.com/bytedance/sonic"

	"github.com/sbathletics/gridiron-ingest/internal/app"
	"github.com/sbathletics/gridiron-ingest/internal/config"
	"github.com/sbathletics/gridiron-ingest/internal/platform/logging"
)

var application *app.App

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)

	application, err = app.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}

	lambda.Start(handleS3Event)
}

// handleS3Event processes the first record of the event. Upload
// notifications arrive one object per event; anything else indicates a
// misconfigured trigger and is surfaced in the logs.
func handleS3Event(ctx context.Context, event events.S3Event) (string, error) {
	if len(event.Records) == 0 {
		return "", fmt.Errorf("s3 event has no records")
	}
	if len(event.Records) > 1 {
		application.Log.WarnContext(ctx, "s3 event has multiple records, processing the first", "records", len(event.Records))
	}

	record := event.Records[0]
	bucket := record.S3.Bucket.Name
	key, err := url.QueryUnescape(record.S3.Object.Key)
	if err != nil {
		return "", fmt.Errorf("decode object key %q: %w", record.S3.Object.Key, err)
	}

	result, err := application.Service.IngestObject(ctx, bucket, key)
	if err != nil {
		application.Log.ErrorContext(ctx, "ingestion failed", "bucket", bucket, "key", key, "error", err)
		return "", err
	}
	application.PublishResult(ctx, result)

	body, err := sonic.MarshalString(result)
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}
	return body, nil
}
