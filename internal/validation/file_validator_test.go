package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInputDirectory(t *testing.T) {
	v := NewFileValidator(nil)

	dir := t.TempDir()
	assert.NoError(t, v.ValidateInputDirectory(dir))
	assert.Error(t, v.ValidateInputDirectory(filepath.Join(dir, "missing")))

	file := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	assert.Error(t, v.ValidateInputDirectory(file), "a file is not a directory")
}

func TestValidateOutputDirectoryCreates(t *testing.T) {
	v := NewFileValidator(nil)

	dir := filepath.Join(t.TempDir(), "nested", "reports")
	require.NoError(t, v.ValidateOutputDirectory(dir))
	assert.DirExists(t, dir)
}

func TestValidateLogFile(t *testing.T) {
	v := NewFileValidator(nil)
	dir := t.TempDir()

	path := filepath.Join(dir, "well.csv")
	require.NoError(t, os.WriteFile(path, []byte("depth,density\n"), 0o644))
	assert.NoError(t, v.ValidateLogFile(path))

	assert.Error(t, v.ValidateLogFile(filepath.Join(dir, "missing.csv")))

	bad := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(bad, []byte("x"), 0o644))
	assert.Error(t, v.ValidateLogFile(bad), "unsupported extension")
}

func TestValidateFilename(t *testing.T) {
	v := NewFileValidator(nil)

	tests := []struct {
		name    string
		wantErr bool
	}{
		{"well.csv", false},
		{"Well_01.XLSX", false},
		{"legacy.xls", false},
		{"", true},
		{"notes.txt", true},
		{"../escape.csv", true},
		{"dir/well.csv", true},
	}
	for _, tt := range tests {
		err := v.ValidateFilename(tt.name)
		if tt.wantErr {
			assert.Error(t, err, tt.name)
		} else {
			assert.NoError(t, err, tt.name)
		}
	}
}

func TestValidateUploadSize(t *testing.T) {
	v := NewFileValidator(nil)

	assert.NoError(t, v.ValidateUploadSize(1024, 2048))
	assert.Error(t, v.ValidateUploadSize(4096, 2048))
	assert.Error(t, v.ValidateUploadSize(0, 2048))
}
