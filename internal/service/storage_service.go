package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/asrayg/betterforms/config"
	"github.com/asrayg/betterforms/internal/apperror"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
)

// MaxAudioBytes is the largest audio payload accepted for upload. Checked
// before any bytes go to storage.
const MaxAudioBytes = 10 * 1024 * 1024

// StorageService stores respondent audio recordings in object storage and
// hands back a publicly resolvable URL.
type StorageService interface {
	UploadAudio(ctx context.Context, formID, questionID uint, data []byte, contentType string) (*StoredObject, error)
	// Download fetches an object by the public URL previously returned from
	// UploadAudio.
	Download(ctx context.Context, publicURL string) ([]byte, error)
}

// StoredObject locates an uploaded recording.
type StoredObject struct {
	URL  string
	Path string
}

type storageService struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
}

func NewStorageService(cfg *config.Config) (StorageService, error) {
	client, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object storage client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %q: %w", cfg.Storage.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Storage.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %q: %w", cfg.Storage.Bucket, err)
		}
		log.Info().Str("bucket", cfg.Storage.Bucket).Msg("Created storage bucket")
	}

	publicBase := strings.TrimRight(cfg.Storage.PublicBaseURL, "/")
	if publicBase == "" {
		scheme := "http"
		if cfg.Storage.UseSSL {
			scheme = "https"
		}
		publicBase = fmt.Sprintf("%s://%s/%s", scheme, cfg.Storage.Endpoint, cfg.Storage.Bucket)
	}

	return &storageService{
		client:        client,
		bucket:        cfg.Storage.Bucket,
		publicBaseURL: publicBase,
	}, nil
}

func (s *storageService) UploadAudio(ctx context.Context, formID, questionID uint, data []byte, contentType string) (*StoredObject, error) {
	if len(data) == 0 {
		return nil, apperror.New(apperror.KindInvalid, "audio payload is empty")
	}
	if len(data) > MaxAudioBytes {
		return nil, apperror.Newf(apperror.KindInvalid, "audio payload exceeds the %d MB limit", MaxAudioBytes/(1024*1024))
	}
	if contentType == "" {
		contentType = "audio/webm"
	}

	objectPath := fmt.Sprintf("forms/%d/responses/%s/%d.webm", formID, uuid.NewString(), questionID)
	_, err := s.client.PutObject(ctx, s.bucket, objectPath, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		log.Error().Err(err).Str("path", objectPath).Msg("Storage: upload failed")
		return nil, apperror.Wrap(apperror.KindUpstream, "audio upload failed", err)
	}

	log.Info().Str("path", objectPath).Int("bytes", len(data)).Msg("Audio uploaded")
	return &StoredObject{
		URL:  s.publicBaseURL + "/" + objectPath,
		Path: objectPath,
	}, nil
}

func (s *storageService) Download(ctx context.Context, publicURL string) ([]byte, error) {
	objectPath, ok := strings.CutPrefix(publicURL, s.publicBaseURL+"/")
	if !ok {
		return nil, apperror.New(apperror.KindInvalid, "audio URL does not reference this service's storage")
	}

	obj, err := s.client.GetObject(ctx, s.bucket, objectPath, minio.GetObjectOptions{})
	if err != nil {
		return nil, apperror.Wrap(apperror.KindUpstream, "failed to fetch audio object", err)
	}
	defer obj.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(obj); err != nil {
		log.Error().Err(err).Str("path", objectPath).Msg("Storage: download failed")
		return nil, apperror.Wrap(apperror.KindUpstream, "failed to read audio object", err)
	}
	return buf.Bytes(), nil
}
