package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3API is the part of the S3 client used by S3Store.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Config selects the bucket. Endpoint is set for S3 compatible services (MinIO,
// localstack) and switches to path style addressing.
type S3Config struct {
	Bucket   string
	Prefix   string
	Region   string
	Endpoint string
}

// S3Store writes files to an S3 bucket.
type S3Store struct {
	client S3API
	bucket string
	prefix string
	now    func() time.Time
}

// NewS3Store creates a store using the default AWS credential chain.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}
	var loadOpts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(cfg.Region))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3StoreWithClient(client, cfg), nil
}

// NewS3StoreWithClient creates a store on an existing client.
func NewS3StoreWithClient(client S3API, cfg S3Config) *S3Store {
	return &S3Store{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix, now: time.Now}
}

// Save uploads content and returns the object key.
func (s *S3Store) Save(ctx context.Context, name string, content io.Reader) (string, error) {
	// The body is buffered so the SDK can sign the payload.
	body, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	key := s.prefix + objectName(s.now().UTC(), name)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return "", fmt.Errorf("put s3://%s/%s: %w", s.bucket, key, err)
	}
	return key, nil
}

// Open downloads the object stored under location.
func (s *S3Store) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(location),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, location)
		}
		return nil, fmt.Errorf("get s3://%s/%s: %w", s.bucket, location, err)
	}
	return out.Body, nil
}
