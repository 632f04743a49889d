package s3fetch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/eunmann/brc/internal/logctx"
	"github.com/eunmann/brc/pkg/logging"
)

// DownloaderConfig configures the S3 download manager.
type DownloaderConfig struct {
	// Concurrency is the number of parts fetched in parallel.
	// Default: NumCPU clamped to [4, 16].
	Concurrency int

	// PartSize is the byte size of each ranged GET. Default: 16 MiB.
	PartSize int64

	// TempDir receives downloaded files. Empty means os.TempDir().
	TempDir string
}

// DefaultDownloaderConfig returns defaults for the current machine.
func DefaultDownloaderConfig() DownloaderConfig {
	return DownloaderConfig{
		Concurrency: min(max(runtime.NumCPU(), 4), 16),
		PartSize:    16 * 1024 * 1024,
	}
}

// objectDownloader is the subset of manager.Downloader used here.
type objectDownloader interface {
	Download(ctx context.Context, w io.WriterAt, input *s3.GetObjectInput, options ...func(*manager.Downloader)) (int64, error)
}

// Downloader fetches objects with parallel ranged GETs.
type Downloader struct {
	mgr    objectDownloader
	config DownloaderConfig
}

// NewDownloader creates a Downloader on top of an S3 client.
func NewDownloader(client manager.DownloadAPIClient, cfg DownloaderConfig) *Downloader {
	d := DefaultDownloaderConfig()
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = d.Concurrency
	}
	if cfg.PartSize <= 0 {
		cfg.PartSize = d.PartSize
	}

	mgr := manager.NewDownloader(client, func(m *manager.Downloader) {
		m.Concurrency = cfg.Concurrency
		m.PartSize = cfg.PartSize
	})
	return &Downloader{mgr: mgr, config: cfg}
}

// Download is a fetched object on local disk.
type Download struct {
	// Path of the local copy. It keeps the object's base name as a suffix so
	// extension-based detection (e.g. ".zst") still works.
	Path     string
	Bytes    int64
	Duration time.Duration
}

// Remove deletes the local copy.
func (d *Download) Remove() error {
	if err := os.Remove(d.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", d.Path, err)
	}
	return nil
}

// DownloadToTemp downloads s3://bucket/key into a new temp file. The caller
// owns the file and must Remove it.
func (d *Downloader) DownloadToTemp(ctx context.Context, bucket, key string) (*Download, error) {
	start := time.Now()

	f, err := os.CreateTemp(d.config.TempDir, "brc-s3-*-"+filepath.Base(key))
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	n, err := d.mgr.Download(ctx, f, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close temp file: %w", cerr)
	}
	if err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("download s3://%s/%s: %w", bucket, key, err)
	}

	dl := &Download{Path: f.Name(), Bytes: n, Duration: time.Since(start)}
	logging.PhaseComplete(logctx.FromContext(ctx), "download", dl.Duration).
		Str("bucket", bucket).
		Str("key", key).
		Bytes("bytes", n).
		Throughput(n).
		Log("object downloaded")
	return dl, nil
}

// Fetch downloads an s3:// URI with the default AWS configuration.
func Fetch(ctx context.Context, uri string, cfg DownloaderConfig) (*Download, error) {
	bucket, key, err := ParseS3URI(uri)
	if err != nil {
		return nil, err
	}
	client, err := NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return NewDownloader(client, cfg).DownloadToTemp(ctx, bucket, key)
}
