package validate_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amehta/credlens/internal/validate"
)

func TestValidateFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		file  *validate.File
		valid bool
	}{
		{"nil file", nil, false},
		{"pdf", &validate.File{Name: "a.pdf", MIMEType: "application/pdf", Size: 1024}, true},
		{"docx", &validate.File{Name: "a.docx", MIMEType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", Size: 1024}, true},
		{"legacy doc", &validate.File{Name: "a.doc", MIMEType: "application/msword", Size: 1024}, true},
		{"plain text", &validate.File{Name: "a.txt", MIMEType: "text/plain", Size: 1024}, true},
		{"rtf", &validate.File{Name: "a.rtf", MIMEType: "application/rtf", Size: 1024}, true},
		{"rtf alternate mime", &validate.File{Name: "a.rtf", MIMEType: "text/rtf", Size: 1024}, true},
		{"image rejected", &validate.File{Name: "a.png", MIMEType: "image/png", Size: 1024}, false},
		{"unknown mime", &validate.File{Name: "a.bin", MIMEType: "", Size: 1024}, false},
		{"at size ceiling", &validate.File{Name: "a.pdf", MIMEType: "application/pdf", Size: validate.MaxFileSize}, true},
		{"over size ceiling", &validate.File{Name: "a.pdf", MIMEType: "application/pdf", Size: validate.MaxFileSize + 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := validate.ValidateFile(tt.file)
			require.Equal(t, tt.valid, result.Valid, "result: %+v", result)
			if !tt.valid {
				assert.NotEmpty(t, result.Message)
			}
		})
	}
}

func TestMIMETypeForPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "application/pdf", validate.MIMETypeForPath("/tmp/report.pdf"))
	assert.Equal(t, "application/pdf", validate.MIMETypeForPath("REPORT.PDF"))
	assert.Equal(t, "application/msword", validate.MIMETypeForPath("old.doc"))
	assert.Equal(t, "text/plain", validate.MIMETypeForPath("notes.txt"))
	assert.Empty(t, validate.MIMETypeForPath("image.png"))
	assert.Empty(t, validate.MIMETypeForPath("noextension"))
}

func TestStatFileReflectsDisk(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sample.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o644))

	file, err := validate.StatFile(path)
	require.NoError(t, err)
	assert.Equal(t, "sample.txt", file.Name)
	assert.Equal(t, "text/plain", file.MIMEType)
	assert.Equal(t, int64(11), file.Size)

	_, err = validate.StatFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestFormatFileSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 Bytes"},
		{1, "1 Bytes"},
		{512, "512 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1024 * 1024, "1 MB"},
		{int64(2.5 * 1024 * 1024), "2.5 MB"},
		{10 << 20, "10 MB"},
		{1 << 30, "1 GB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, validate.FormatFileSize(tt.in), "bytes=%d", tt.in)
	}
}
