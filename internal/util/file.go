package util

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// ValidateMimeType sniffs the first 512 bytes and matches them against allowedTypes,
// given as prefixes ("text/") or full types.
func ValidateMimeType(reader io.Reader, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	mimeType := http.DetectContentType(buffer[:n])

	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) || mimeType == allowed {
			return mimeType, nil
		}
	}

	return mimeType, errors.New("invalid file type: " + mimeType)
}

// CheckCSVUpload rejects files that are too large, lack a .csv extension or
// do not look like text.
func CheckCSVUpload(header *multipart.FileHeader, maxBytes int64) error {
	if maxBytes > 0 && header.Size > maxBytes {
		return ErrFileTooLarge
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	allowed := false
	for _, e := range AllowedCSVExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return BadRequestError("Only .csv files are accepted")
	}

	f, err := header.Open()
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := ValidateMimeType(f, AllowedCSVMimeTypes); err != nil {
		return BadRequestError(err.Error())
	}
	return nil
}
