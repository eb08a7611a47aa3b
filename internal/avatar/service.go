package avatar

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pborkovic/bunkermuseum-members/internal/sniff"
)

type metadataStore interface {
	Upsert(ctx context.Context, a Avatar) (Avatar, error)
	Get(ctx context.Context, memberID uuid.UUID) (Avatar, error)
	Delete(ctx context.Context, memberID uuid.UUID) (Avatar, error)
}

type objectStore interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// Service manages the profile-picture lifecycle: validated storage,
// retrieval for serving, and deletion.
type Service struct {
	repo         metadataStore
	objectStore  objectStore
	objectBucket string
	policy       Policy
}

// NewService constructs an avatar service.
func NewService(repo metadataStore, store objectStore, objectBucket string, policy Policy) *Service {
	return &Service{
		repo:         repo,
		objectStore:  store,
		objectBucket: objectBucket,
		policy:       policy,
	}
}

// ValidateUpload applies the configured policy to an upload.
func (s *Service) ValidateUpload(data []byte, declaredType string, declaredSize int64) Verdict {
	return Validate(data, declaredType, declaredSize, s.policy)
}

// Store writes the validated bytes under the member's fixed object key and
// upserts the metadata row. The key never varies per upload, so overwriting
// rewrites the same object in place and can never orphan a previous file;
// object replacement is atomic on the store side, so concurrent uploads for
// one member degrade to last-writer-wins, never a torn file.
func (s *Service) Store(ctx context.Context, memberID uuid.UUID, data []byte, format sniff.Format) (Avatar, error) {
	if memberID == uuid.Nil {
		return Avatar{}, ErrInvalidMember
	}

	objectPath := objectPathFor(memberID)
	contentType := format.ContentType()
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	putOpts := minio.PutObjectOptions{ContentType: contentType}
	if _, err := s.objectStore.PutObject(ctx, s.objectBucket, objectPath, bytes.NewReader(data), int64(len(data)), putOpts); err != nil {
		return Avatar{}, fmt.Errorf("store avatar object: %w", err)
	}

	stored, err := s.repo.Upsert(ctx, Avatar{
		MemberID:    memberID,
		ObjectPath:  objectPath,
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
	})
	if err != nil {
		return Avatar{}, fmt.Errorf("store avatar metadata: %w", err)
	}

	return stored, nil
}

// Resolve returns the stored avatar metadata, or ErrAvatarNotFound when the
// member has never uploaded one. Absence is not an error condition for
// callers; presentation is decided by the URL resolver.
func (s *Service) Resolve(ctx context.Context, memberID uuid.UUID) (Avatar, error) {
	if memberID == uuid.Nil {
		return Avatar{}, ErrAvatarNotFound
	}
	return s.repo.Get(ctx, memberID)
}

// Open fetches metadata and a reader over the stored bytes for serving.
func (s *Service) Open(ctx context.Context, memberID uuid.UUID) (Avatar, io.ReadCloser, error) {
	a, err := s.Resolve(ctx, memberID)
	if err != nil {
		return Avatar{}, nil, err
	}

	object, err := s.objectStore.GetObject(ctx, s.objectBucket, a.ObjectPath, minio.GetObjectOptions{})
	if err != nil {
		return Avatar{}, nil, fmt.Errorf("fetch avatar object: %w", err)
	}

	return a, object, nil
}

// Delete removes the member's avatar metadata and backing object.
func (s *Service) Delete(ctx context.Context, memberID uuid.UUID) error {
	a, err := s.repo.Delete(ctx, memberID)
	if err != nil {
		return err
	}

	if err := s.objectStore.RemoveObject(ctx, s.objectBucket, a.ObjectPath, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove avatar object: %w", err)
	}

	return nil
}

func objectPathFor(memberID uuid.UUID) string {
	return fmt.Sprintf("avatars/%s", memberID.String())
}
