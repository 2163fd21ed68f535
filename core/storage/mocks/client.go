package mocks

import (
	"bytes"
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of storage.Client
type Client struct {
	mock.Mock
}

func (m *Client) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

// GetObject accepts an io.ReadCloser or a []byte; a []byte yields a fresh
// reader on every call.
func (m *Client) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	args := m.Called(ctx, bucketName, objectName, opts)
	switch v := args.Get(0).(type) {
	case io.ReadCloser:
		return v, args.Error(1)
	case []byte:
		return io.NopCloser(bytes.NewReader(v)), args.Error(1)
	}
	return nil, args.Error(1)
}

// ListObjects accepts either a channel or a function returning a fresh channel
// per call, so the same expectation can serve repeated listings.
func (m *Client) ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	args := m.Called(ctx, bucketName, opts)
	switch v := args.Get(0).(type) {
	case func(context.Context, string, minio.ListObjectsOptions) <-chan minio.ObjectInfo:
		return v(ctx, bucketName, opts)
	case <-chan minio.ObjectInfo:
		return v
	}
	ch := make(chan minio.ObjectInfo)
	close(ch)
	return ch
}

// Objects returns a ListObjects function serving a flat key list as a
// non-recursive folder listing: direct children are objects, deeper keys
// collapse into common prefixes.
func Objects(keys ...string) func(context.Context, string, minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	return func(_ context.Context, _ string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
		ch := make(chan minio.ObjectInfo, len(keys))
		seen := make(map[string]bool)
		for _, key := range keys {
			if len(key) < len(opts.Prefix) || key[:len(opts.Prefix)] != opts.Prefix {
				continue
			}
			rest := key[len(opts.Prefix):]
			for i := 0; i < len(rest); i++ {
				if rest[i] == '/' && i < len(rest)-1 {
					rest = rest[:i+1]
					break
				}
			}
			child := opts.Prefix + rest
			if seen[child] {
				continue
			}
			seen[child] = true
			ch <- minio.ObjectInfo{Key: child, Size: int64(len(child))}
		}
		close(ch)
		return ch
	}
}
