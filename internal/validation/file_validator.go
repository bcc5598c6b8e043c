package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/tommurray222/candid-hospitality/internal/errors"
)

// InputExtensions are the file types the loader can read.
var InputExtensions = []string{".csv", ".tsv", ".txt", ".xlsx"}

// FileValidator checks table exports and the output directory before a
// run starts, so a bad path fails fast instead of midway through cleaning.
// Errors are typed: missing paths are ErrTypeNotFound, unusable files are
// ErrTypeValidation and directory problems are ErrTypeStorage.
type FileValidator struct {
	logger *slog.Logger
}

func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{logger: logger}
}

// ValidateInputDirectory checks that the export directory exists
func (v *FileValidator) ValidateInputDirectory(dir string) error {
	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		v.logger.Error("Input directory does not exist", slog.String("directory", dir))
		return apperrors.NewAppError(apperrors.ErrTypeNotFound,
			fmt.Sprintf("input directory %s does not exist", dir), nil)
	case err != nil:
		return apperrors.NewStorageError(fmt.Sprintf("failed to stat directory %s", dir), err)
	case !info.IsDir():
		v.logger.Error("Input path is not a directory", slog.String("path", dir))
		return apperrors.NewAppValidationError(fmt.Sprintf("%s is not a directory", dir))
	}
	return nil
}

// ValidateOutputDirectory creates dir if needed and probes that the
// cleaned tables can be written there.
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("failed to create output directory %s", dir), err)
	}

	probe, err := os.CreateTemp(dir, ".candid-write-*")
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("output directory %s is not writable", dir), err)
	}
	probe.Close()
	os.Remove(probe.Name())

	v.logger.Debug("Output directory validated", slog.String("directory", dir))
	return nil
}

// ValidateFile checks that path is a readable regular file
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		v.logger.Error("File does not exist", slog.String("file", path))
		return apperrors.NewAppError(apperrors.ErrTypeNotFound,
			fmt.Sprintf("file %s does not exist", path), nil)
	case err != nil:
		return apperrors.NewStorageError(fmt.Sprintf("failed to stat file %s", path), err)
	case info.IsDir():
		v.logger.Error("Path is a directory, not a file", slog.String("path", path))
		return apperrors.NewAppValidationError(fmt.Sprintf("%s is a directory, not a file", path))
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("file %s is not readable", path), err)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateInputFile checks a users, matches or chats export. Beyond
// ValidateFile it rejects Excel lock files, unknown extensions and empty
// files, which the loader would otherwise report as a missing header.
func (v *FileValidator) ValidateInputFile(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	if strings.HasPrefix(filepath.Base(path), "~$") {
		v.logger.Warn("Skipping temporary Excel file", slog.String("file", path))
		return apperrors.NewAppValidationError(fmt.Sprintf("file %s is a temporary Excel file", path))
	}

	if !IsInputExtension(path) {
		ext := strings.ToLower(filepath.Ext(path))
		v.logger.Error("Unsupported input file type",
			slog.String("file", path),
			slog.String("extension", ext))
		return apperrors.NewAppValidationError(fmt.Sprintf("file %s has unsupported extension %q", path, ext))
	}

	if info, err := os.Stat(path); err == nil && info.Size() == 0 {
		v.logger.Error("Input file is empty", slog.String("file", path))
		return apperrors.NewAppValidationError(fmt.Sprintf("file %s is empty", path))
	}

	return nil
}

// IsInputExtension reports whether path has one of InputExtensions
func IsInputExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range InputExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
