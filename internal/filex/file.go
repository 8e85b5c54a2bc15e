// Package filex wraps filesystem access used by the CLI when attaching
// images to a report.
package filex

import (
	"fmt"
	"net/http"
	"os"
)

// maxImageSize caps attachments at 10 MiB, matching the backend limit.
const maxImageSize = 10 << 20

// ReadImage loads an image file from disk and sniffs its content type.
// Oversized or unreadable files are rejected.
func ReadImage(path string) (data []byte, contentType string, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > maxImageSize {
		return nil, "", fmt.Errorf("file %s too large: %d bytes", path, info.Size())
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}

	return data, http.DetectContentType(data), nil
}
