package storage

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Archiver persists outbound batch payloads for audit.
type Archiver interface {
	// Archive stores payload under name.
	Archive(ctx context.Context, name string, payload []byte) error
}

// NewArchiver creates a Minio-backed archiver, or a no-op one when the
// config leaves archiving disabled.
func NewArchiver(cfg Config) (Archiver, error) {
	if !cfg.Enabled() {
		return nopArchiver{}, nil
	}

	// Minio expects the endpoint without scheme.
	endpoint := strings.TrimPrefix(cfg.Endpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &minioArchiver{client: client, bucket: cfg.Bucket}, nil
}

type minioArchiver struct {
	client *minio.Client
	bucket string
}

func (a *minioArchiver) Archive(ctx context.Context, name string, payload []byte) error {
	_, err := a.client.PutObject(ctx, a.bucket, name, bytes.NewReader(payload), int64(len(payload)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to archive %s: %w", name, err)
	}
	return nil
}

type nopArchiver struct{}

func (nopArchiver) Archive(ctx context.Context, name string, payload []byte) error {
	return nil
}
