// Package image decodes base64 data-URI images supplied by clients.
package image

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const magicNumberSeek = 512

// allowedImageTypes lists the simple MIME types we accept.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

var mimeTypeSuffix = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

var (
	ErrNotDataURI          = errors.New("expected a data URI image")
	ErrUnsupportedMimeType = errors.New("unsupported mime type")
)

type Image struct {
	Size     int64
	Data     []byte
	Suffix   string
	MimeType string
}

// DecodeDataURI decodes a "data:image/...;base64,..." payload. The MIME
// type is taken from the decoded bytes, not from the declared prefix.
func DecodeDataURI(s string) (*Image, error) {
	if !strings.HasPrefix(s, "data:image") {
		return nil, ErrNotDataURI
	}

	_, encoded, found := strings.Cut(s, ";base64,")
	if !found {
		return nil, ErrNotDataURI
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decoding base64 image: %w", err)
	}

	contentType := http.DetectContentType(data[:min(len(data), magicNumberSeek)])
	if !allowedImageTypes[contentType] {
		return nil, fmt.Errorf("mime type %q: %w", contentType, ErrUnsupportedMimeType)
	}

	return &Image{
		Size:     int64(len(data)),
		Data:     data,
		Suffix:   mimeTypeSuffix[contentType],
		MimeType: contentType,
	}, nil
}
