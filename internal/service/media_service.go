package service

import (
	"Quill/internal/api/dto"
	"Quill/internal/pkg/consts"
	"Quill/internal/pkg/util"
	"context"
	"fmt"
	"io"
	log "log/slog"
	"strings"

	"github.com/google/uuid"
)

const DefaultUploadMaxSize int64 = 10 << 20

// ObjectStorage 对象存储
type ObjectStorage interface {
	PutObject(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	PublicURL(objectName string) string
}

type MediaService interface {
	UploadImage(ctx context.Context, actor Actor, filename string, size int64, reader io.ReadSeeker) (*dto.MediaUploadDTO, error)
}

type mediaServiceImpl struct {
	storage ObjectStorage
	maxSize int64
}

func NewMediaService(storage ObjectStorage, maxSize int64) MediaService {
	if maxSize <= 0 {
		maxSize = DefaultUploadMaxSize
	}
	return &mediaServiceImpl{storage: storage, maxSize: maxSize}
}

// UploadImage 校验大小与真实类型后上传，对象名为 <user_id>/<uuid><ext>
func (s *mediaServiceImpl) UploadImage(ctx context.Context, actor Actor, filename string, size int64, reader io.ReadSeeker) (*dto.MediaUploadDTO, error) {
	if !actor.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}
	if size <= 0 || reader == nil {
		return nil, ErrParamInvalid
	}
	if size > s.maxSize {
		return nil, ErrFileTooLarge
	}

	contentType, err := util.GetSafeContentType(reader)
	if err != nil {
		log.WarnContext(ctx, "detect content type failed", "err", err)
		return nil, ErrParamInvalid
	}
	if !strings.HasPrefix(contentType, consts.MimePrefixImage) {
		return nil, ErrFileNotSupported
	}

	objectName := fmt.Sprintf("%d/%s%s", actor.UserID, uuid.NewString(), util.ExtensionFor(contentType, filename))
	key, err := s.storage.PutObject(ctx, objectName, reader, size, contentType)
	if err != nil {
		return nil, storeErr("media.put", err)
	}

	log.InfoContext(ctx, "media upload success", "key", key, "type", contentType, "size", size)
	return &dto.MediaUploadDTO{
		Key:      key,
		URL:      s.storage.PublicURL(key),
		MimeType: contentType,
		Size:     size,
		Original: filename,
	}, nil
}
