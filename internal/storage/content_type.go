package storage

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
)

// SniffLen is how many leading bytes DetectContentType looks at.
const SniffLen = 512

// allowedTypes maps each accepted extension to its canonical content type and
// the sniffed types its bytes may produce.
var allowedTypes = map[string]struct {
	contentType string
	sniffed     []string
}{
	".pdf":  {"application/pdf", []string{"application/pdf"}},
	".png":  {"image/png", []string{"image/png"}},
	".jpg":  {"image/jpeg", []string{"image/jpeg"}},
	".jpeg": {"image/jpeg", []string{"image/jpeg"}},
	".webp": {"image/webp", []string{"image/webp"}},
	".csv":  {"text/csv", []string{"text/plain", "text/csv"}},
	// xlsx files are zip archives
	".xlsx": {"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", []string{"application/zip"}},
}

// DetectContentType checks the file's extension and leading bytes against
// the whitelist and returns the content type to store it under.
func DetectContentType(fileName string, head []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	allowed, ok := allowedTypes[ext]
	if !ok {
		return "", fmt.Errorf("file type %q is not allowed", ext)
	}
	sniffed := http.DetectContentType(head)
	if i := strings.Index(sniffed, ";"); i >= 0 {
		sniffed = sniffed[:i]
	}
	for _, t := range allowed.sniffed {
		if sniffed == t {
			return allowed.contentType, nil
		}
	}
	return "", fmt.Errorf("file content (%s) does not match extension %q", sniffed, ext)
}

// SafeExtension returns the lower-cased extension of an accepted file name.
func SafeExtension(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if _, ok := allowedTypes[ext]; !ok {
		return ""
	}
	return ext
}
