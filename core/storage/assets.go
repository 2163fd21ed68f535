package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Kind classifies an entry of the remote folder tree.
type Kind string

const (
	KindFolder Kind = "folder"
	KindPDF    Kind = "pdf"
	KindImage  Kind = "image"
)

// Entry is one immediate child of a remote folder.
type Entry struct {
	// ID is the opaque handle used to list (folders) or fetch (files) the entry.
	ID string `json:"id"`
	// Name is the entry name as stored remotely.
	Name     string    `json:"name"`
	Kind     Kind      `json:"kind"`
	Size     int64     `json:"size,omitempty"`
	Modified time.Time `json:"modified,omitempty"`
}

// KindOf classifies a file name by extension. Unknown extensions return false.
func KindOf(name string) (Kind, bool) {
	switch strings.ToLower(path.Ext(name)) {
	case ".pdf":
		return KindPDF, true
	case ".png", ".jpg", ".jpeg":
		return KindImage, true
	default:
		return "", false
	}
}

// AssetStore exposes the bucket as a folder tree: list children, fetch bytes.
// Availability is decided once, at construction.
type AssetStore struct {
	client          Client
	bucket          string
	root            string
	available       bool
	downloadTimeout time.Duration
	logger          *zap.Logger
}

// Open resolves credentials, builds the client and probes the bucket. It never
// fails: any problem yields a store whose IsAvailable reports false.
func Open(ctx context.Context, cfg Config, logger *zap.Logger) *AssetStore {
	creds, source, err := ResolveCredentials(cfg)
	if err != nil {
		logger.Warn("Remote storage disabled", zap.Error(err))
		return NewAssetStore(ctx, nil, cfg, logger)
	}

	client, err := NewClient(cfg, creds)
	if err != nil {
		logger.Warn("Remote storage disabled", zap.Error(err))
		return NewAssetStore(ctx, nil, cfg, logger)
	}

	store := NewAssetStore(ctx, client, cfg, logger)
	if store.IsAvailable() {
		logger.Info("Connected to remote storage",
			zap.String("bucket", cfg.Bucket),
			zap.String("credentials", string(source)))
	}
	return store
}

// NewAssetStore wraps client. A nil client produces an unavailable store.
func NewAssetStore(ctx context.Context, client Client, cfg Config, logger *zap.Logger) *AssetStore {
	timeout := cfg.DownloadTimeoutSeconds
	if timeout <= 0 {
		timeout = 120
	}

	s := &AssetStore{
		client:          client,
		bucket:          cfg.Bucket,
		root:            folderPrefix(cfg.RootFolder),
		downloadTimeout: time.Duration(timeout) * time.Second,
		logger:          logger,
	}

	if client == nil {
		return s
	}

	probeTimeout := cfg.TimeoutSeconds
	if probeTimeout <= 0 {
		probeTimeout = 30
	}
	pctx, cancel := context.WithTimeout(ctx, time.Duration(probeTimeout)*time.Second)
	defer cancel()

	exists, err := client.BucketExists(pctx, cfg.Bucket)
	switch {
	case err != nil:
		logger.Warn("Remote storage probe failed", zap.String("bucket", cfg.Bucket), zap.Error(err))
	case !exists:
		logger.Warn("Remote storage bucket does not exist", zap.String("bucket", cfg.Bucket))
	default:
		s.available = true
	}

	return s
}

// IsAvailable reports whether authentication succeeded at construction time.
func (s *AssetStore) IsAvailable() bool {
	return s.available
}

// Root returns the folder id holding one folder per team.
func (s *AssetStore) Root() string {
	return s.root
}

// ListChildren lists the immediate children of folderID, optionally filtered
// by kind. Children with unknown extensions are skipped.
func (s *AssetStore) ListChildren(ctx context.Context, folderID string, kinds ...Kind) ([]Entry, error) {
	if !s.available {
		return nil, ErrUnavailable
	}

	prefix := folderPrefix(folderID)
	opts := minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: false,
	}

	var entries []Entry
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list folder %q: %w", folderID, obj.Err)
		}
		// Folder marker object of the folder itself
		if obj.Key == prefix {
			continue
		}

		entry, ok := entryFromObject(obj)
		if !ok || !wantKind(entry.Kind, kinds) {
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// FindFolder returns the first sub-folder of parentID whose name equals one of
// names, compared case-insensitively.
func (s *AssetStore) FindFolder(ctx context.Context, parentID string, names ...string) (Entry, error) {
	folders, err := s.ListChildren(ctx, parentID, KindFolder)
	if err != nil {
		return Entry{}, err
	}

	for _, folder := range folders {
		for _, name := range names {
			if strings.EqualFold(folder.Name, name) {
				return folder, nil
			}
		}
	}

	return Entry{}, fmt.Errorf("folder %v under %q: %w", names, parentID, ErrNotFound)
}

// FetchBytes downloads the full content of a file. The download is bounded by
// the configured download timeout and is never retried.
func (s *AssetStore) FetchBytes(ctx context.Context, id string) ([]byte, error) {
	if !s.available {
		return nil, ErrUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, s.downloadTimeout)
	defer cancel()

	obj, err := s.client.GetObject(ctx, s.bucket, id, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", id, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && resp.Code == "NoSuchKey" {
			return nil, fmt.Errorf("%q: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to download %q: %w", id, err)
	}

	return data, nil
}

func entryFromObject(obj minio.ObjectInfo) (Entry, bool) {
	if strings.HasSuffix(obj.Key, "/") {
		return Entry{
			ID:   obj.Key,
			Name: path.Base(strings.TrimSuffix(obj.Key, "/")),
			Kind: KindFolder,
		}, true
	}

	name := path.Base(obj.Key)
	kind, ok := KindOf(name)
	if !ok {
		return Entry{}, false
	}

	return Entry{
		ID:       obj.Key,
		Name:     name,
		Kind:     kind,
		Size:     obj.Size,
		Modified: obj.LastModified,
	}, true
}

func wantKind(kind Kind, kinds []Kind) bool {
	if len(kinds) == 0 {
		return true
	}
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// folderPrefix turns a folder id into a listing prefix ("" for the bucket root).
func folderPrefix(id string) string {
	id = strings.TrimPrefix(strings.TrimSpace(id), "/")
	if id == "" {
		return ""
	}
	if !strings.HasSuffix(id, "/") {
		id += "/"
	}
	return id
}
