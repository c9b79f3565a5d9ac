package dto

// MediaUploadDTO 上传结果
type MediaUploadDTO struct {
	Key      string `json:"key"`
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
	Original string `json:"original"`
}
