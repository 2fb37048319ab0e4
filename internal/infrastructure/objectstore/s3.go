// Package objectstore fetches uploaded files from the trigger bucket.
package objectstore

import (
	"context"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ErrObjectNotFound is returned when the bucket no longer holds the key;
// events for deleted objects are routine and callers treat this as final.
var ErrObjectNotFound = crerr.New("object not found")

type s3API interface {
	GetObject(ctx context.Context, input *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Fetcher reads whole objects. Uploads are small spreadsheet exports, so
// buffering the body in memory is fine.
type S3Fetcher struct {
	client s3API
}

func NewS3Fetcher(ctx context.Context, region string) (*S3Fetcher, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithHTTPClient(&http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}),
	)
	if err != nil {
		return nil, crerr.Wrap(err, "load aws config")
	}
	return &S3Fetcher{client: s3.NewFromConfig(cfg)}, nil
}

func NewS3FetcherFromClient(client s3API) *S3Fetcher {
	return &S3Fetcher{client: client}
}

func (f *S3Fetcher) Fetch(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if crerr.As(err, &noSuchKey) {
			return nil, crerr.Wrapf(ErrObjectNotFound, "%s/%s", bucket, key)
		}
		return nil, crerr.Wrapf(err, "get object %s/%s", bucket, key)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, crerr.Wrapf(err, "read object %s/%s", bucket, key)
	}
	return data, nil
}
