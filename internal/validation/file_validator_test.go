package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tommurray222/candid-hospitality/internal/errors"
)

func TestFileValidator_ValidateInputDirectory(t *testing.T) {
	tests := []struct {
		name          string
		setupFunc     func(t *testing.T) string
		wantErr       bool
		errorContains string
	}{
		{
			name: "valid directory",
			setupFunc: func(t *testing.T) string {
				return t.TempDir()
			},
		},
		{
			name: "non-existent directory",
			setupFunc: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "missing")
			},
			wantErr:       true,
			errorContains: "does not exist",
		},
		{
			name: "path is file not directory",
			setupFunc: func(t *testing.T) string {
				file := filepath.Join(t.TempDir(), "users.csv")
				require.NoError(t, os.WriteFile(file, []byte("user_id\n"), 0644))
				return file
			},
			wantErr:       true,
			errorContains: "is not a directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewFileValidator(nil)
			err := v.ValidateInputDirectory(tt.setupFunc(t))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	v := NewFileValidator(nil)
	dir := filepath.Join(t.TempDir(), "a", "b")

	require.NoError(t, v.ValidateOutputDirectory(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "write probe should be removed")
}

func TestFileValidator_ValidateInputFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
		return path
	}
	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0644))

	tests := []struct {
		name          string
		path          string
		wantErr       bool
		errorContains string
	}{
		{name: "csv", path: write("users.csv")},
		{name: "upper case xlsx", path: write("MATCHES.XLSX")},
		{name: "tsv", path: write("chats.tsv")},
		{name: "json rejected", path: write("users.json"), wantErr: true, errorContains: "unsupported extension"},
		{name: "excel lock file", path: write("~$users.xlsx"), wantErr: true, errorContains: "temporary Excel file"},
		{name: "missing", path: filepath.Join(dir, "nope.csv"), wantErr: true, errorContains: "does not exist"},
		{name: "directory", path: dir, wantErr: true, errorContains: "is a directory"},
		{name: "empty", path: empty, wantErr: true, errorContains: "is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewFileValidator(nil).ValidateInputFile(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				assert.NotEmpty(t, apperrors.TypeOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFileValidator_ErrorTypes(t *testing.T) {
	v := NewFileValidator(nil)
	dir := t.TempDir()

	err := v.ValidateFile(filepath.Join(dir, "users.csv"))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))

	err = v.ValidateFile(dir)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))

	err = v.ValidateInputDirectory(filepath.Join(dir, "exports"))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
}
