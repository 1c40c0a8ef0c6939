package service

import (
	"fmt"
	"strings"
	"time"

	"document-viewer/internal/domain"

	storage_go "github.com/supabase-community/storage-go"
)

// storageScheme marks source URIs that point into a Supabase storage
// bucket: storage://<bucket>/<path>.
const storageScheme = "storage://"

// objectSigner is the part of the storage client used to sign downloads.
type objectSigner interface {
	CreateSignedUrl(bucketId string, filePath string, expiresIn int) (storage_go.SignedUrlResponse, error)
}

// StorageFallbackResolver signs private storage objects so the hosted
// fallback viewer can fetch them, then hands the signed URL to next.
// Other source URIs pass straight through.
type StorageFallbackResolver struct {
	signer    objectSigner
	baseURL   string
	expiresIn time.Duration
	next      domain.FallbackResolver
	logger    domain.Logger
}

// NewStorageFallbackResolver creates a resolver that signs storage:// sources
// for expiresIn before delegating to next.
func NewStorageFallbackResolver(
	signer objectSigner,
	supabaseURL string,
	expiresIn time.Duration,
	next domain.FallbackResolver,
	logger domain.Logger,
) *StorageFallbackResolver {
	return &StorageFallbackResolver{
		signer:    signer,
		baseURL:   strings.TrimRight(supabaseURL, "/"),
		expiresIn: expiresIn,
		next:      next,
		logger:    logger,
	}
}

// Resolve returns the fallback viewer URL for ref. Signing failures are
// reported as a FallbackError carrying the storage error.
func (s *StorageFallbackResolver) Resolve(ref domain.DocumentRef) (string, error) {
	if !strings.HasPrefix(ref.SourceURI, storageScheme) {
		return s.next.Resolve(ref)
	}

	bucket, path, ok := strings.Cut(strings.TrimPrefix(ref.SourceURI, storageScheme), "/")
	if !ok || bucket == "" || path == "" {
		return "", &domain.FallbackError{
			SourceURI: ref.SourceURI,
			Cause:     fmt.Errorf("storage uri must be storage://bucket/path"),
		}
	}

	resp, err := s.signer.CreateSignedUrl(bucket, path, int(s.expiresIn.Seconds()))
	if err != nil {
		s.logger.Warn("Failed to sign storage object", "bucket", bucket, "path", path, "error", err)
		return "", &domain.FallbackError{SourceURI: ref.SourceURI, Cause: err}
	}

	signed := resp.SignedURL
	// Older storage APIs return the path relative to the storage endpoint.
	if strings.HasPrefix(signed, "/") {
		signed = s.baseURL + "/storage/v1" + signed
	}
	s.logger.Debug("Signed storage object for fallback viewer", "bucket", bucket, "path", path)

	ref.SourceURI = signed
	return s.next.Resolve(ref)
}
