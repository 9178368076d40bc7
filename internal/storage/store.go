// Package storage wraps the S3-compatible object store behind a narrow
// interface so handlers and services can be tested against fakes.
package storage

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MaxListKeys caps a single listing call, mirroring the S3 default page.
const MaxListKeys = 1000

// ListOptions controls a listing call.
type ListOptions struct {
	Prefix string
	// Recursive disables the "/" delimiter, returning every key under the
	// prefix. Non-recursive listings return one entry per common prefix,
	// with Key ending in "/".
	Recursive bool
	MaxKeys   int
}

// ObjectInfo describes a stored object (or a common prefix, when Key ends
// in "/").
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
	ContentType  string
}

// ObjectStore is the subset of the S3 API the gateway uses. All keys are
// relative to a single bucket fixed at construction time.
type ObjectStore interface {
	List(ctx context.Context, opts ListOptions) ([]ObjectInfo, error)
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Copy(ctx context.Context, srcKey, dstKey string) error
	Remove(ctx context.Context, key string) error
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
}

// Options configures the production client.
type Options struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

// Client implements ObjectStore on top of minio-go.
type Client struct {
	mc     *minio.Client
	bucket string
}

// shouldUseSSL returns false for local development endpoints (localhost,
// loopback, bare docker service names); everything else gets TLS.
func shouldUseSSL(endpoint string) bool {
	host := strings.Split(endpoint, ":")[0]
	if host == "localhost" || host == "127.0.0.1" {
		return false
	}
	return strings.Contains(host, ".")
}

// NewClient connects to the configured bucket's object store.
func NewClient(opts Options) (*Client, error) {
	mc, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: shouldUseSSL(opts.Endpoint),
		Region: opts.Region,
	})
	if err != nil {
		return nil, err
	}
	return &Client{mc: mc, bucket: opts.Bucket}, nil
}

func (c *Client) List(ctx context.Context, opts ListOptions) ([]ObjectInfo, error) {
	maxKeys := opts.MaxKeys
	if maxKeys <= 0 {
		maxKeys = MaxListKeys
	}

	// Drain the listing channel into a slice, stopping at the first error.
	var objects []ObjectInfo
	for obj := range c.mc.ListObjects(ctx, c.bucket, minio.ListObjectsOptions{
		Prefix:    opts.Prefix,
		Recursive: opts.Recursive,
		MaxKeys:   maxKeys,
	}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		objects = append(objects, ObjectInfo{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
			ContentType:  obj.ContentType,
		})
		if len(objects) >= maxKeys {
			break
		}
	}
	return objects, nil
}

func (c *Client) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := c.mc.PutObject(ctx, c.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (c *Client) Copy(ctx context.Context, srcKey, dstKey string) error {
	_, err := c.mc.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: c.bucket, Object: dstKey},
		minio.CopySrcOptions{Bucket: c.bucket, Object: srcKey},
	)
	return err
}

func (c *Client) Remove(ctx context.Context, key string) error {
	return c.mc.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{})
}

func (c *Client) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	obj, err := c.mc.GetObject(ctx, c.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	stat, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, ObjectInfo{}, err
	}
	return obj, ObjectInfo{
		Key:          key,
		Size:         stat.Size,
		LastModified: stat.LastModified,
		ContentType:  stat.ContentType,
	}, nil
}
