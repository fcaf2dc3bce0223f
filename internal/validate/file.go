package validate

import (
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// MaxFileSize is the upload ceiling enforced before dispatch. The analysis
// service rejects anything larger with a 413, so catching it locally saves a
// wasted upload.
const MaxFileSize = 10 << 20 // 10 MiB

const (
	msgMissingFile  = "Please select a file."
	msgBadFileType  = "Unsupported file type. Allowed: PDF, DOC, DOCX, TXT, RTF."
	msgFileTooLarge = "File is too large. Maximum size is 10MB."
)

// AllowedExtensions lists the document formats the analysis service accepts.
var AllowedExtensions = []string{".pdf", ".doc", ".docx", ".txt", ".rtf"}

var mimeByExtension = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
	".rtf":  "application/rtf",
}

var allowedMIMETypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"text/plain":      true,
	"application/rtf": true,
	"text/rtf":        true,
}

// File describes a document selected for analysis.
type File struct {
	Name     string
	MIMEType string
	Size     int64
	Path     string
}

// ValidateFile checks a selected document against the accepted type set and
// the size ceiling. A nil file is reported as missing input.
func ValidateFile(file *File) Result {
	if file == nil {
		return Result{Message: msgMissingFile}
	}
	if !allowedMIMETypes[file.MIMEType] {
		return Result{Message: msgBadFileType}
	}
	if file.Size > MaxFileSize {
		return Result{Message: msgFileTooLarge}
	}
	return Result{Valid: true}
}

// MIMETypeForPath maps a file extension onto the MIME type the analysis
// service expects. Unknown extensions yield an empty string, which
// ValidateFile rejects.
func MIMETypeForPath(path string) string {
	return mimeByExtension[strings.ToLower(filepath.Ext(path))]
}

// StatFile builds a File by re-reading the path from disk, so validity always
// reflects the current state of the file rather than a stale handle.
func StatFile(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return &File{
		Name:     filepath.Base(path),
		MIMEType: MIMETypeForPath(path),
		Size:     info.Size(),
		Path:     path,
	}, nil
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders a byte count using base-1024 units, rounded to at
// most two decimal places. Zero bytes is special-cased so the unit math never
// sees log(0).
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	exp := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if exp >= len(sizeUnits) {
		exp = len(sizeUnits) - 1
	}
	value := float64(bytes) / math.Pow(1024, float64(exp))
	rounded := math.Round(value*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + sizeUnits[exp]
}
