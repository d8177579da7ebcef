// Package download writes exported files into the downloads directory.
package download

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/zerr"
)

// Saver implements ports.FileSaver. Existing files are never overwritten;
// a numbered suffix is added instead.
type Saver struct {
	fs  afero.Fs
	dir string
}

// NewSaver creates a Saver writing below dir.
func NewSaver(fsys afero.Fs, dir string) *Saver {
	return &Saver{fs: fsys, dir: dir}
}

// Save writes data under name and returns the path it used.
func (s *Saver) Save(name string, data []byte) (string, error) {
	name = filepath.Base(filepath.Clean("/" + name))
	if name == "/" || name == "." {
		return "", zerr.With(zerr.Wrap(domain.ErrDownloadFailed, "empty file name"), "dir", s.dir)
	}

	if err := s.fs.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrDownloadFailed, err.Error()), "dir", s.dir)
	}

	path, err := s.free(name)
	if err != nil {
		return "", err
	}
	if err := afero.WriteFile(s.fs, path, data, domain.FilePerm); err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrDownloadFailed, err.Error()), "path", path)
	}
	return path, nil
}

// free returns the first unused path for name: report.xlsx, report (1).xlsx, ...
func (s *Saver) free(name string) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for i := 0; ; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, i, ext)
		}
		path := filepath.Join(s.dir, candidate)
		exists, err := afero.Exists(s.fs, path)
		if err != nil {
			return "", zerr.With(zerr.Wrap(domain.ErrDownloadFailed, err.Error()), "path", path)
		}
		if !exists {
			return path, nil
		}
	}
}
