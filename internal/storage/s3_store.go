package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	"go-screenshot-cache/internal/config"
	"go-screenshot-cache/internal/interfaces"
	"go-screenshot-cache/internal/models"
)

// Ensure S3Store implements interfaces.ObjectStore
var _ interfaces.ObjectStore = (*S3Store)(nil)

// S3API is the subset of the S3 client used by S3Store
type S3API interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Presigner is the subset of the S3 presign client used by S3Store
type Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Store implements ObjectStore on an S3-compatible bucket
type S3Store struct {
	client         S3API
	presigner      Presigner
	bucket         string
	conditionalPut bool
	logger         *zap.Logger
}

// NewS3Store creates a store from ready clients
func NewS3Store(client S3API, presigner Presigner, bucket string, conditionalPut bool, logger *zap.Logger) *S3Store {
	return &S3Store{
		client:         client,
		presigner:      presigner,
		bucket:         bucket,
		conditionalPut: conditionalPut,
		logger:         logger,
	}
}

// NewS3StoreFromConfig loads AWS credentials from the default chain and
// builds the S3 client for the configured bucket.
func NewS3StoreFromConfig(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithLogger(NewZapLogger(logger)),
		awsconfig.WithClientLogMode(aws.LogRetries),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	logger.Info("S3 storage initialized",
		zap.String("bucket", cfg.Bucket),
		zap.String("region", cfg.Region),
		zap.String("endpoint", cfg.Endpoint),
		zap.Bool("conditional_put", cfg.ConditionalPut))

	return NewS3Store(client, s3.NewPresignClient(client), cfg.Bucket, cfg.ConditionalPut, logger), nil
}

// HeadExists checks object metadata without transferring the body
func (s *S3Store) HeadExists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, err
}

// PutObject uploads data. With conditional puts enabled an existing key
// yields models.ErrAlreadyExists instead of an overwrite.
func (s *S3Store) PutObject(ctx context.Context, key string, data []byte, contentType string, visibility interfaces.Visibility) error {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
		ACL:           cannedACL(visibility),
	}
	if s.conditionalPut {
		input.IfNoneMatch = aws.String("*")
	}

	_, err := s.client.PutObject(ctx, input)
	if err != nil {
		if s.conditionalPut && isPreconditionFailed(err) {
			return models.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// SignedURL presigns a GET for the object
func (s *S3Store) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

func cannedACL(visibility interfaces.Visibility) types.ObjectCannedACL {
	if visibility == interfaces.VisibilityPublic {
		return types.ObjectCannedACLPublicRead
	}
	return types.ObjectCannedACLPrivate
}

func isNotFound(err error) bool {
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	return apiErrorCode(err) == "NotFound" || statusCode(err) == http.StatusNotFound
}

func isPreconditionFailed(err error) bool {
	code := apiErrorCode(err)
	return code == "PreconditionFailed" || statusCode(err) == http.StatusPreconditionFailed
}

func apiErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// statusCode extracts the HTTP status from a transport-level response error
func statusCode(err error) int {
	var respErr interface{ HTTPStatusCode() int }
	if errors.As(err, &respErr) {
		return respErr.HTTPStatusCode()
	}
	return 0
}
