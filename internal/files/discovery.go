package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tommurray222/candid-hospitality/internal/dataprocessing"
	apperrors "github.com/tommurray222/candid-hospitality/internal/errors"
	"github.com/tommurray222/candid-hospitality/internal/validation"
)

// Keywords matched against file names during input discovery.
const (
	UsersKeyword   = "user"
	MatchesKeyword = "match"
	ChatsKeyword   = "chat"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

func (d *Discovery) resolve(dir string) string {
	if filepath.IsAbs(dir) || d.basePath == "" {
		return dir
	}
	return filepath.Join(d.basePath, dir)
}

// FindTableFiles lists readable table files in dir, oldest first
func (d *Discovery) FindTableFiles(dir string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasPrefix(name, "~$") || !validation.IsInputExtension(name) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	// Sort by modification time (oldest first), name as tie-breaker
	sort.Slice(files, func(i, j int) bool {
		if files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].Name < files[j].Name
		}
		return files[i].ModTime.Before(files[j].ModTime)
	})

	return files, nil
}

// GetLatestFile returns the newest table file whose name contains keyword
func (d *Discovery) GetLatestFile(dir, keyword string) (FileInfo, error) {
	files, err := d.FindTableFiles(dir)
	if err != nil {
		return FileInfo{}, err
	}

	keyword = strings.ToLower(keyword)
	for i := len(files) - 1; i >= 0; i-- {
		if strings.Contains(strings.ToLower(files[i].Name), keyword) {
			return files[i], nil
		}
	}
	return FileInfo{}, apperrors.NewNotFoundError(fmt.Sprintf("%s table in %s", keyword, d.resolve(dir)))
}

// DiscoverInputs finds the newest users, matches and chats files in dir
func (d *Discovery) DiscoverInputs(dir string) (dataprocessing.Inputs, error) {
	var in dataprocessing.Inputs

	targets := []struct {
		dst     *string
		keyword string
	}{
		{&in.Users, UsersKeyword},
		{&in.Matches, MatchesKeyword},
		{&in.Chats, ChatsKeyword},
	}
	for _, target := range targets {
		f, err := d.GetLatestFile(dir, target.keyword)
		if err != nil {
			return dataprocessing.Inputs{}, err
		}
		*target.dst = f.Path
	}

	return in, nil
}

// ResolveInputs keeps explicit paths and discovers the rest in dir
func (d *Discovery) ResolveInputs(explicit dataprocessing.Inputs, dir string) (dataprocessing.Inputs, error) {
	out := explicit

	targets := []struct {
		dst     *string
		keyword string
	}{
		{&out.Users, UsersKeyword},
		{&out.Matches, MatchesKeyword},
		{&out.Chats, ChatsKeyword},
	}
	for _, target := range targets {
		if *target.dst != "" {
			continue
		}
		f, err := d.GetLatestFile(dir, target.keyword)
		if err != nil {
			return dataprocessing.Inputs{}, err
		}
		*target.dst = f.Path
	}

	return out, nil
}
