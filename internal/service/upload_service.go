package service

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/campus-go-api/internal/dto"
	"github.com/noah-isme/campus-go-api/internal/models"
	"github.com/noah-isme/campus-go-api/internal/observability"
	"github.com/noah-isme/campus-go-api/internal/repository"
)

var (
	// ErrUploadTooLarge indicates the payload exceeded the configured limit.
	ErrUploadTooLarge = errors.New("file exceeds maximum allowed size")
	// ErrUploadTypeNotAllowed indicates the filename extension is not accepted.
	ErrUploadTypeNotAllowed = errors.New("only .xlsx and .csv files are accepted")
)

// allowedImportExtensions is checked against the filename suffix only; the
// file content is recorded but never used to accept or reject.
var allowedImportExtensions = map[string]struct{}{
	".xlsx": {},
	".csv":  {},
}

// ImportStorage abstracts upload destinations.
type ImportStorage interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// UploadService validates and stores roster/result import files.
type UploadService interface {
	Import(ctx context.Context, file *multipart.FileHeader, userID *uint, purpose string) (dto.UploadResponse, error)
}

type uploadService struct {
	storage ImportStorage
	repo    repository.UploadRepository
	logger  zerolog.Logger
	maxSize int64
	tracer  trace.Tracer
}

// NewUploadService constructs an upload service.
func NewUploadService(storage ImportStorage, repo repository.UploadRepository, maxSizeMB int, logger zerolog.Logger) UploadService {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	return &uploadService{
		storage: storage,
		repo:    repo,
		logger:  logger.With().Str("component", "upload_service").Logger(),
		maxSize: int64(maxSizeMB) * 1024 * 1024,
		tracer:  otel.Tracer("github.com/noah-isme/campus-go-api/internal/service/upload"),
	}
}

func (s *uploadService) Import(ctx context.Context, file *multipart.FileHeader, userID *uint, purpose string) (dto.UploadResponse, error) {
	ctx, span := s.tracer.Start(ctx, "upload.import")
	defer span.End()

	start := time.Now()
	defer func() {
		observability.UploadLatency().Observe(time.Since(start).Seconds())
	}()

	if s.storage == nil {
		err := errors.New("no upload storage configured")
		span.RecordError(err)
		span.SetStatus(codes.Error, "storage_unavailable")
		return dto.UploadResponse{}, err
	}

	if file == nil {
		err := errors.New("file is required")
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.UploadResponse{}, err
	}

	name := strings.TrimSpace(file.Filename)
	span.SetAttributes(
		attribute.String("upload.original_name", name),
		attribute.Int64("upload.request_size", file.Size),
	)

	extension := strings.ToLower(filepath.Ext(name))
	if _, ok := allowedImportExtensions[extension]; !ok {
		observability.UploadRejected().WithLabelValues("extension").Inc()
		span.RecordError(ErrUploadTypeNotAllowed)
		span.SetStatus(codes.Error, "extension_not_allowed")
		return dto.UploadResponse{}, ErrUploadTypeNotAllowed
	}

	if file.Size > s.maxSize {
		observability.UploadRejected().WithLabelValues("size").Inc()
		span.RecordError(ErrUploadTooLarge)
		span.SetStatus(codes.Error, "payload_too_large")
		return dto.UploadResponse{}, ErrUploadTooLarge
	}

	source, err := file.Open()
	if err != nil {
		return dto.UploadResponse{}, err
	}
	defer source.Close()

	// informational only; acceptance was decided by the suffix above
	detected := ""
	if kind, err := mimetype.DetectReader(source); err == nil {
		detected = kind.String()
	}
	if _, err := source.Seek(0, io.SeekStart); err != nil {
		return dto.UploadResponse{}, err
	}

	url, err := s.storage.Upload(ctx, name, source)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "storage_failed")
		return dto.UploadResponse{}, err
	}

	record := models.UploadRecord{
		UserID:       userID,
		FileName:     name,
		Extension:    extension,
		Purpose:      strings.TrimSpace(purpose),
		URL:          url,
		DetectedMime: detected,
		SizeBytes:    file.Size,
	}

	if err := s.repo.Create(ctx, &record); err != nil {
		return dto.UploadResponse{}, err
	}

	s.logger.Info().
		Str("file", name).
		Str("extension", extension).
		Int64("size", file.Size).
		Msg("import file stored")

	return dto.NewUploadResponse(record), nil
}
