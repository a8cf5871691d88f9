package repository

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/CeKulit/cekulit-backend/domain"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const avatarFolder = "edit-profile"

// AvatarS3Config holds the object-storage settings for avatar uploads. An
// empty Endpoint targets AWS proper; set it for MinIO or any S3 compatible.
type AvatarS3Config struct {
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	Endpoint  string
	// PublicBaseURL is prepended to object keys when building the stored
	// avatarUrl, e.g. a CDN origin in front of the bucket.
	PublicBaseURL string
}

type avatarS3Store struct {
	client *s3.Client
	cfg    AvatarS3Config
}

func NewAvatarStore(ctx context.Context, cfg AvatarS3Config) (domain.AvatarStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, cfg.SecretKey, "",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &avatarS3Store{client: client, cfg: cfg}, nil
}

func (s *avatarS3Store) Upload(ctx context.Context, filename, contentType string, size int64, body io.Reader) (string, error) {
	key := fmt.Sprintf("%s/%d-%s", avatarFolder, time.Now().UnixMilli(), sanitizeFilename(filename))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	return s.objectURL(key), nil
}

func (s *avatarS3Store) objectURL(key string) string {
	if s.cfg.PublicBaseURL != "" {
		return strings.TrimSuffix(s.cfg.PublicBaseURL, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}

func sanitizeFilename(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}
