// Package content loads the game's narrative data: one yaml scene script
// per scene and the tengo program behind the terminal. Everything is
// embedded; a file of the same name in the content directory on disk wins,
// so writers can iterate without rebuilding.
package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotFound is returned when neither disk nor the embedded set has the
// requested file.
var ErrNotFound = errors.New("content: not found")

//go:embed *.yaml
var scenesFS embed.FS

//go:embed scripts/*.tengo
var programsFS embed.FS

// Source resolves content files, preferring Dir over the embedded copies.
type Source struct {
	Dir string
}

// Load reads a scene script such as "boot.yaml". The extension may be
// omitted.
func (s Source) Load(name string) ([]byte, error) {
	clean := cleanScenePath(name)
	return s.read(scenesFS, clean)
}

// LoadProgram reads a tengo program such as "terminal".
func (s Source) LoadProgram(name string) ([]byte, error) {
	clean := cleanProgramPath(name)
	return s.read(programsFS, clean)
}

func (s Source) read(embedded embed.FS, clean string) ([]byte, error) {
	if s.Dir != "" {
		if data, err := os.ReadFile(s.diskPath(clean)); err == nil {
			return data, nil
		}
	}
	data, err := embedded.ReadFile(clean)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, clean)
	}
	return data, err
}

// ModTime reports when the disk override of name last changed.
func (s Source) ModTime(name string) (time.Time, bool) {
	if s.Dir == "" {
		return time.Time{}, false
	}
	info, err := os.Stat(s.diskPath(cleanScenePath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func (s Source) diskPath(clean string) string {
	return filepath.Join(s.Dir, filepath.FromSlash(clean))
}

func cleanScenePath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	s = strings.TrimPrefix(s, "content/")
	if filepath.Ext(s) == "" {
		s += ".yaml"
	}
	return s
}

func cleanProgramPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "content/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}
	if filepath.Ext(s) == "" {
		s += ".tengo"
	}
	return "scripts/" + s
}
