package handler

import (
	"Quill/internal/api/middleware"
	"Quill/internal/pkg/response"
	"Quill/internal/service"
	log "log/slog"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	mediaSvc service.MediaService
}

func NewMediaHandler(mediaSvc service.MediaService) *MediaHandler {
	return &MediaHandler{mediaSvc: mediaSvc}
}

// Upload 上传评论配图
func (s *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	reader, err := file.Open()
	if err != nil {
		log.WarnContext(c.Request.Context(), "open upload failed", "err", err)
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	res, err := s.mediaSvc.UploadImage(c.Request.Context(), middleware.CurrentActor(c), file.Filename, file.Size, reader)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
