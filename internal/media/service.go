package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rmartell/inventra-backend/pkg/config"
	pkgerrors "github.com/rmartell/inventra-backend/pkg/errors"
	"github.com/rmartell/inventra-backend/pkg/storage/gcs"
)

// sniffLen is how many leading bytes http.DetectContentType inspects.
const sniffLen = 512

var extensionByType = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// UploadResult carries the stored object's public location.
type UploadResult struct {
	URL string `json:"url"`
}

// Service stores asset images in the object store and hands back a public
// URL. The asset model treats that URL as an opaque attribute.
type Service interface {
	UploadImage(ctx context.Context, userID uuid.UUID, body io.Reader) (*UploadResult, error)
}

type service struct {
	uploader gcs.Uploader
	maxBytes int64
	now      func() time.Time
}

// NewService builds the media service.
func NewService(uploader gcs.Uploader, cfg config.MediaConfig) (Service, error) {
	if uploader == nil {
		return nil, fmt.Errorf("uploader required")
	}
	maxMB := cfg.MaxUploadMB
	if maxMB <= 0 {
		maxMB = 10
	}
	return &service{
		uploader: uploader,
		maxBytes: int64(maxMB) << 20,
		now:      time.Now,
	}, nil
}

func (s *service) UploadImage(ctx context.Context, userID uuid.UUID, body io.Reader) (*UploadResult, error) {
	if body == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "image payload is required")
	}

	// Read one byte past the cap so oversize payloads are detected without
	// buffering the excess.
	data, err := io.ReadAll(io.LimitReader(body, s.maxBytes+1))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read image payload")
	}
	if len(data) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "image payload is empty")
	}
	if int64(len(data)) > s.maxBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("image exceeds the %d MB limit", s.maxBytes>>20))
	}

	contentType := detectImageType(data)
	if contentType == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payload is not a supported image")
	}

	object := fmt.Sprintf("assets/%s-%d.%s", userID, s.now().UnixNano(), extensionByType[contentType])
	url, err := s.uploader.Upload(ctx, object, contentType, bytes.NewReader(data))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "upload image")
	}
	return &UploadResult{URL: url}, nil
}

func detectImageType(data []byte) string {
	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	contentType := http.DetectContentType(head)
	if !strings.HasPrefix(contentType, "image/") {
		return ""
	}
	if _, ok := extensionByType[contentType]; !ok {
		return ""
	}
	return contentType
}
