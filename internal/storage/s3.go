package storage

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"polluxkart-admin/internal/logger"
	"polluxkart-admin/internal/model"
	"polluxkart-admin/internal/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.opentelemetry.io/otel"
)

// S3 upload limits mirror the media endpoints.
const MaxS3ImageSize = 10 * 1024 * 1024

// S3ImageExtensions lists the file extensions accepted for S3 uploads.
var S3ImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

func AllowedS3Extension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range S3ImageExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// ErrNotConfigured marks a storage backend whose credentials or bucket are
// absent; handlers map it to 503.
var ErrNotConfigured = errors.New("storage backend is not configured")

var S3StoreTracer = otel.Tracer("S3Store")

// S3Store uploads media to a single bucket laid out as
// products/{id}/, categories/{id}/, users/{id}/avatar/ and temp/.
type S3Store struct {
	client     *s3.Client
	presign    *s3.PresignClient
	bucket     string
	baseURL    string
	configured bool
}

// NewS3Store loads the default AWS credential chain and probes the bucket.
// A failed probe leaves the store in place but unconfigured, so the media
// endpoints degrade to 503 instead of failing the boot.
func NewS3Store(ctx context.Context, bucket, region, baseURL string) *S3Store {
	store := &S3Store{bucket: bucket, baseURL: baseURL}
	if bucket == "" {
		return store
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		logger.Warn(ctx, "S3 credential chain unavailable", slog.String("error", err.Error()))
		return store
	}

	store.client = s3.NewFromConfig(cfg)
	store.presign = s3.NewPresignClient(store.client)

	if _, err := store.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)}); err != nil {
		logger.Warn(ctx, "S3 bucket probe failed",
			slog.String("bucket", bucket),
			slog.String("error", err.Error()),
		)
		return store
	}

	store.configured = true
	logger.Info(ctx, "S3 bucket connected", slog.String("bucket", bucket))
	return store
}

func (s *S3Store) Configured() bool {
	return s.configured
}

func (s *S3Store) BaseURL() string {
	return s.baseURL
}

func (s *S3Store) URL(key string) string {
	return s.baseURL + "/" + key
}

// uniqueFilename keeps the (lower-cased) extension and prefixes a UTC date
// so bucket listings stay roughly chronological.
func uniqueFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	if ext == "" {
		ext = ".jpg"
	}
	return time.Now().UTC().Format("20060102") + "_" + utils.UUIDHex()[:12] + ext
}

func (s *S3Store) ProductKey(productID, filename string) string {
	return "products/" + productID + "/" + uniqueFilename(filename)
}

func (s *S3Store) CategoryKey(categoryID, filename string) string {
	return "categories/" + categoryID + "/" + uniqueFilename(filename)
}

func (s *S3Store) AvatarKey(userID, filename string) string {
	return "users/" + userID + "/avatar/" + uniqueFilename(filename)
}

func (s *S3Store) TempKey(filename string) string {
	return "temp/" + uniqueFilename(filename)
}

func ContentTypeFor(filename string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// Upload stores content under key and returns its public URL. Images are
// immutable once written, hence the year-long cache header.
func (s *S3Store) Upload(ctx context.Context, key string, content []byte, contentType string) (string, error) {
	ctx, span := S3StoreTracer.Start(ctx, "S3Store.Upload")
	defer span.End()

	if !s.configured {
		return "", ErrNotConfigured
	}
	if contentType == "" {
		contentType = ContentTypeFor(key)
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(content),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("max-age=31536000"),
	})
	if err != nil {
		return "", err
	}

	logger.Info(ctx, "S3 object stored", slog.String("key", key))
	return s.URL(key), nil
}

// PresignPut signs a direct-upload PUT so browsers can push large files
// without passing through this service.
func (s *S3Store) PresignPut(ctx context.Context, key, contentType string) (*model.PresignedUploadResponse, error) {
	ctx, span := S3StoreTracer.Start(ctx, "S3Store.PresignPut")
	defer span.End()

	if !s.configured {
		return nil, ErrNotConfigured
	}

	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(time.Hour))
	if err != nil {
		return nil, err
	}

	headers := make(map[string]string, len(req.SignedHeader))
	for name, values := range req.SignedHeader {
		if len(values) > 0 {
			headers[name] = values[0]
		}
	}

	return &model.PresignedUploadResponse{
		Success:   true,
		UploadURL: req.URL,
		Method:    req.Method,
		Headers:   headers,
		FinalURL:  s.URL(key),
		Key:       key,
	}, nil
}
