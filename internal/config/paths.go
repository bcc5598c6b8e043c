package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths resolves every file the pipeline reads or writes
type Paths struct {
	DataDir   string
	OutputDir string
	LogsDir   string

	UsersFile   string
	MatchesFile string
	ChatsFile   string
}

// NewPaths resolves configured paths to absolute ones
func NewPaths(cfg PathsConfig) (*Paths, error) {
	p := &Paths{
		UsersFile:   cfg.UsersFile,
		MatchesFile: cfg.MatchesFile,
		ChatsFile:   cfg.ChatsFile,
	}

	dirs := []struct {
		dst *string
		src string
	}{
		{&p.DataDir, cfg.DataDir},
		{&p.OutputDir, cfg.OutputDir},
		{&p.LogsDir, cfg.LogsDir},
	}
	for _, d := range dirs {
		abs, err := filepath.Abs(d.src)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", d.src, err)
		}
		*d.dst = abs
	}

	return p, nil
}

// HasInputs reports whether all three input files are set explicitly
func (p *Paths) HasInputs() bool {
	return p.UsersFile != "" && p.MatchesFile != "" && p.ChatsFile != ""
}

// EnsureDirectories creates the output and log directories
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.OutputDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
		slog.Debug("Ensured directory exists", slog.String("directory", dir))
	}
	return nil
}

// GetOutputPath returns the path for an output file
func (p *Paths) GetOutputPath(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(p.OutputDir, filename)
}

// GetLogPath returns the path for a log file
func (p *Paths) GetLogPath(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(p.LogsDir, filename)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
