// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-site-keeper/internal/config"
	"github.com/MKhiriev/go-site-keeper/internal/logger"
	"github.com/MKhiriev/go-site-keeper/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3ObjectStore is an [ObjectStore] backed by an S3-compatible bucket.
type S3ObjectStore struct {
	client *s3.Client
	bucket string
	logger *logger.Logger
}

// NewObjectStore builds the S3 store described by cfg. An empty bucket
// yields a store whose every call fails with [ErrObjectStoreDisabled].
func NewObjectStore(ctx context.Context, cfg config.S3, log *logger.Logger) (ObjectStore, error) {
	if cfg.Bucket == "" {
		log.Warn().Str("func", "adapter.NewObjectStore").Msg("s3 bucket is empty, object storage disabled")
		return DisabledObjectStore{}, nil
	}

	return NewS3ObjectStore(ctx, cfg, log)
}

// NewS3ObjectStore loads the AWS configuration for cfg.Region. Static
// credentials from cfg win over the default chain. A non-empty endpoint
// switches to path-style addressing (MinIO and similar).
func NewS3ObjectStore(ctx context.Context, cfg config.S3, log *logger.Logger) (*S3ObjectStore, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var s3opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3opts = append(s3opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	log.Info().
		Str("func", "adapter.NewS3ObjectStore").
		Str("bucket", cfg.Bucket).
		Str("endpoint", cfg.Endpoint).
		Msg("object storage configured")

	return &S3ObjectStore{
		client: s3.NewFromConfig(awsCfg, s3opts...),
		bucket: cfg.Bucket,
		logger: log,
	}, nil
}

func (s *S3ObjectStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*S3ObjectStore.Put").Str("key", key).Msg("s3 put object failed")
		return fmt.Errorf("%w: put %q: %w", ErrObjectStore, key, err)
	}

	return nil
}

func (s *S3ObjectStore) Get(ctx context.Context, key string) (models.ObjectContent, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return models.ObjectContent{}, ErrObjectNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "*S3ObjectStore.Get").Str("key", key).Msg("s3 get object failed")
		return models.ObjectContent{}, fmt.Errorf("%w: get %q: %w", ErrObjectStore, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return models.ObjectContent{}, fmt.Errorf("%w: read %q: %w", ErrObjectStore, key, err)
	}

	return models.ObjectContent{
		Data:        data,
		ContentType: aws.ToString(out.ContentType),
	}, nil
}

func (s *S3ObjectStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil && !isNotFound(err) {
		logger.FromContext(ctx).Err(err).Str("func", "*S3ObjectStore.Delete").Str("key", key).Msg("s3 delete object failed")
		return fmt.Errorf("%w: delete %q: %w", ErrObjectStore, key, err)
	}

	return nil
}

func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}

// DisabledObjectStore stands in when no bucket is configured.
type DisabledObjectStore struct{}

func (DisabledObjectStore) Put(context.Context, string, []byte, string) error {
	return ErrObjectStoreDisabled
}

func (DisabledObjectStore) Get(context.Context, string) (models.ObjectContent, error) {
	return models.ObjectContent{}, ErrObjectStoreDisabled
}

func (DisabledObjectStore) Delete(context.Context, string) error {
	return ErrObjectStoreDisabled
}
