package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/joho/godotenv"
)

// UploadTimeout bounds a single PutObject call
const UploadTimeout = 30 * time.Second

// ErrNotConfigured is returned when no bucket is set
var ErrNotConfigured = errors.New("S3 publishing not configured")

// Config holds the S3 destination for rendered images
type Config struct {
	Bucket    string
	Region    string
	Endpoint  string // Optional, for S3-compatible stores
	AccessKey string
	SecretKey string
	Prefix    string // Key prefix, e.g. "renders/"
}

// ConfigFromEnv loads .env files (if any) and reads RAYTRACER_S3_* variables
func ConfigFromEnv(envFiles ...string) Config {
	// Missing .env files are fine
	_ = godotenv.Load(envFiles...)

	return Config{
		Bucket:    os.Getenv("RAYTRACER_S3_BUCKET"),
		Region:    getEnv("RAYTRACER_S3_REGION", "us-east-1"),
		Endpoint:  os.Getenv("RAYTRACER_S3_ENDPOINT"),
		AccessKey: os.Getenv("RAYTRACER_S3_ACCESS_KEY"),
		SecretKey: os.Getenv("RAYTRACER_S3_SECRET_KEY"),
		Prefix:    os.Getenv("RAYTRACER_S3_PREFIX"),
	}
}

// Enabled reports whether uploads can be attempted
func (c Config) Enabled() bool {
	return c.Bucket != ""
}

// Key joins the configured prefix with name
func (c Config) Key(name string) string {
	if c.Prefix == "" {
		return name
	}
	return path.Join(c.Prefix, name)
}

// S3Publisher uploads rendered images to a bucket
type S3Publisher struct {
	config Config
	client s3iface.S3API
}

// NewS3Publisher creates a publisher with static credentials and
// path-style addressing
func NewS3Publisher(cfg Config) (*S3Publisher, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}

	s3Config := &aws.Config{
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.AccessKey != "" {
		s3Config.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		s3Config.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(s3Config)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return newS3Publisher(cfg, s3.New(sess)), nil
}

func newS3Publisher(cfg Config, client s3iface.S3API) *S3Publisher {
	return &S3Publisher{config: cfg, client: client}
}

// Publish uploads data under the prefixed key and returns that key
func (p *S3Publisher) Publish(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	key := p.config.Key(name)
	size := int64(len(data))
	_, err := p.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.config.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	log.Printf("Uploaded %s to s3://%s (%d bytes)", key, p.config.Bucket, size)
	return key, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
