package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"kawa-inventory/core/reconcile"
	"kawa-inventory/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// payloader is implemented by snapshots that can expose their raw payload.
type payloader interface {
	Payload() any
}

// Archiver writes fetched payloads to object storage. Failures are logged
// and never affect the run.
type Archiver struct {
	client storage.Client
	bucket string
	prefix string
	keep   int
	logger *zap.Logger
	now    func() time.Time
}

// NewArchiver creates an archiver writing to bucket under prefix.
func NewArchiver(client storage.Client, bucket, prefix string, keep int, logger *zap.Logger) *Archiver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Archiver{
		client: client,
		bucket: bucket,
		prefix: prefix,
		keep:   keep,
		logger: logger,
		now:    time.Now,
	}
}

// ObjectName returns the key for a payload fetched at ts.
func (a *Archiver) ObjectName(userID uint, ts time.Time) string {
	return fmt.Sprintf("%s%d.json", a.userPrefix(userID), ts.Unix())
}

func (a *Archiver) userPrefix(userID uint) string {
	if a.prefix == "" {
		return fmt.Sprintf("%d/", userID)
	}
	return fmt.Sprintf("%s/%d/", a.prefix, userID)
}

// Wrap returns a Source that archives every successful fetch for userID.
// A nil archiver returns src unchanged.
func (a *Archiver) Wrap(src reconcile.Source, userID uint) reconcile.Source {
	if a == nil {
		return src
	}
	return &archivingSource{next: src, archiver: a, userID: userID}
}

// Store uploads the payload and prunes old ones.
func (a *Archiver) Store(ctx context.Context, userID uint, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	name := a.ObjectName(userID, a.now())
	_, err = a.client.PutObject(ctx, a.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", name, err)
	}

	return a.prune(ctx, userID)
}

// prune removes all but the newest keep payloads of the user.
func (a *Archiver) prune(ctx context.Context, userID uint) error {
	if a.keep <= 0 {
		return nil
	}

	var keys []string
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{
		Prefix:    a.userPrefix(userID),
		Recursive: true,
	}) {
		if obj.Err != nil {
			return fmt.Errorf("list archive: %w", obj.Err)
		}
		keys = append(keys, obj.Key)
	}
	if len(keys) <= a.keep {
		return nil
	}

	// Unix-second names sort chronologically.
	sort.Strings(keys)
	for _, key := range keys[:len(keys)-a.keep] {
		if err := a.client.RemoveObject(ctx, a.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("remove %s: %w", key, err)
		}
	}
	return nil
}

type archivingSource struct {
	next     reconcile.Source
	archiver *Archiver
	userID   uint
}

func (s *archivingSource) Fetch(ctx context.Context, credential, handle string) (reconcile.Snapshot, error) {
	snap, err := s.next.Fetch(ctx, credential, handle)
	if err != nil {
		return nil, err
	}
	if p, ok := snap.(payloader); ok {
		if err := s.archiver.Store(ctx, s.userID, p.Payload()); err != nil {
			s.archiver.logger.Warn("Snapshot archive failed",
				zap.Uint("user_id", s.userID),
				zap.Error(err))
		}
	}
	return snap, nil
}
