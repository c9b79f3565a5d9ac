package util

import (
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// GetSafeContentType 按文件头嗅探类型，读取后把 reader 复位到开头
func GetSafeContentType(reader io.ReadSeeker) (string, error) {
	mime, err := mimetype.DetectReader(reader)
	if err != nil {
		return "", err
	}
	if _, err = reader.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	contentType, _, _ := strings.Cut(mime.String(), ";")
	return contentType, nil
}

// ExtensionFor 以嗅探结果为准的扩展名，未知类型回退到原文件名后缀
func ExtensionFor(contentType, filename string) string {
	if m := mimetype.Lookup(contentType); m != nil && m.Extension() != "" {
		return m.Extension()
	}
	if i := strings.LastIndexByte(filename, '.'); i >= 0 && i < len(filename)-1 {
		return strings.ToLower(filename[i:])
	}
	return ""
}
