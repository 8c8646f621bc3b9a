package service

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// SpreadsheetTypes are the content types accepted for .xlsx uploads. Some
// browsers send a generic type, so the extension is checked as well.
var SpreadsheetTypes = []string{
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/octet-stream",
}

func InArray[T comparable](val T, array []T) bool {
	for _, v := range array {
		if val == v {
			return true
		}
	}
	return false
}

// OpenUpload checks the content type and extension of an uploaded file and
// opens it. The caller closes the returned file.
func OpenUpload(file *multipart.FileHeader, expectedContentType []string, extension string) (multipart.File, error) {
	if file == nil {
		return nil, fmt.Errorf("file is required")
	}

	incomeContentType := file.Header.Get("Content-Type")
	if incomeContentType != "" && !InArray(incomeContentType, expectedContentType) {
		return nil, fmt.Errorf("invalid file type, expected: %v, got: %s", expectedContentType, incomeContentType)
	}

	if extension != "" && !strings.EqualFold(filepath.Ext(file.Filename), extension) {
		return nil, fmt.Errorf("invalid file extension, expected %s", extension)
	}

	return file.Open()
}
