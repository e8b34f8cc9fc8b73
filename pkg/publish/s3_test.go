package publish

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

type fakeS3 struct {
	s3iface.S3API
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("expected a deadline on the upload context")
	}
	f.input = input
	f.body, _ = io.ReadAll(input.Body)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func clearEnv(t *testing.T) {
	for _, k := range []string{"BUCKET", "REGION", "ENDPOINT", "ACCESS_KEY", "SECRET_KEY", "PREFIX"} {
		key := "RAYTRACER_S3_" + k
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("RAYTRACER_S3_BUCKET", "renders")
	t.Setenv("RAYTRACER_S3_ENDPOINT", "http://localhost:9000")
	t.Setenv("RAYTRACER_S3_PREFIX", "whitted")

	cfg := ConfigFromEnv(filepath.Join(t.TempDir(), "missing.env"))
	if !cfg.Enabled() {
		t.Fatal("Expected config to be enabled")
	}
	if cfg.Bucket != "renders" || cfg.Endpoint != "http://localhost:9000" {
		t.Errorf("Unexpected config %+v", cfg)
	}
	if cfg.Region != "us-east-1" {
		t.Errorf("Expected default region, got %q", cfg.Region)
	}
}

func TestConfigFromEnv_DotEnv(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "RAYTRACER_S3_BUCKET=from-file\nRAYTRACER_S3_REGION=eu-west-1\n"
	if err := os.WriteFile(envFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}
	t.Cleanup(func() {
		os.Unsetenv("RAYTRACER_S3_BUCKET")
		os.Unsetenv("RAYTRACER_S3_REGION")
	})

	cfg := ConfigFromEnv(envFile)
	if cfg.Bucket != "from-file" || cfg.Region != "eu-west-1" {
		t.Errorf("Expected values from .env, got %+v", cfg)
	}
}

func TestConfig_Disabled(t *testing.T) {
	clearEnv(t)
	cfg := ConfigFromEnv(filepath.Join(t.TempDir(), "missing.env"))
	if cfg.Enabled() {
		t.Error("Expected config without bucket to be disabled")
	}
	if _, err := NewS3Publisher(cfg); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Expected ErrNotConfigured, got %v", err)
	}
}

func TestConfig_Key(t *testing.T) {
	tests := []struct {
		prefix, name, want string
	}{
		{"", "a.png", "a.png"},
		{"renders", "a.png", "renders/a.png"},
		{"renders/", "default/a.png", "renders/default/a.png"},
	}
	for _, tt := range tests {
		if got := (Config{Prefix: tt.prefix}).Key(tt.name); got != tt.want {
			t.Errorf("Key(%q) with prefix %q = %q, want %q", tt.name, tt.prefix, got, tt.want)
		}
	}
}

func TestPublish(t *testing.T) {
	fake := &fakeS3{}
	p := newS3Publisher(Config{Bucket: "renders", Prefix: "out"}, fake)

	key, err := p.Publish(context.Background(), "scene.png", []byte("pixels"), "image/png")
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if key != "out/scene.png" {
		t.Errorf("Expected key out/scene.png, got %q", key)
	}
	if aws.StringValue(fake.input.Bucket) != "renders" || aws.StringValue(fake.input.ContentType) != "image/png" {
		t.Errorf("Unexpected input %v", fake.input)
	}
	if aws.Int64Value(fake.input.ContentLength) != 6 || string(fake.body) != "pixels" {
		t.Errorf("Unexpected body %q", fake.body)
	}
}

func TestPublish_WrapsError(t *testing.T) {
	boom := errors.New("boom")
	p := newS3Publisher(Config{Bucket: "renders"}, &fakeS3{err: boom})

	_, err := p.Publish(context.Background(), "x.tga", nil, "image/x-tga")
	if !errors.Is(err, boom) {
		t.Errorf("Expected wrapped error, got %v", err)
	}
}

func TestNewS3Publisher(t *testing.T) {
	p, err := NewS3Publisher(Config{Bucket: "b", Region: "us-east-1", AccessKey: "k", SecretKey: "s", Endpoint: "http://localhost:9000"})
	if err != nil {
		t.Fatalf("NewS3Publisher failed: %v", err)
	}
	if p.client == nil {
		t.Error("Expected an S3 client")
	}
}
