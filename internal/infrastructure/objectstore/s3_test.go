package objectstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type stubS3 struct {
	data map[string][]byte
}

func (s stubS3) GetObject(_ context.Context, input *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := s.data[*input.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestFetch(t *testing.T) {
	t.Parallel()

	fetcher := NewS3FetcherFromClient(stubS3{data: map[string][]byte{
		"schedule/2025_Schedule.csv": []byte("Week,Date\n"),
	}})

	data, err := fetcher.Fetch(context.Background(), "uploads", "schedule/2025_Schedule.csv")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(data) != "Week,Date\n" {
		t.Fatalf("unexpected body: %q", data)
	}
}

func TestFetchMissingKey(t *testing.T) {
	t.Parallel()

	fetcher := NewS3FetcherFromClient(stubS3{})
	_, err := fetcher.Fetch(context.Background(), "uploads", "schedule/gone.csv")
	if !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
}
