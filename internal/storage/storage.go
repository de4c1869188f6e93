package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"time"

	"go.uber.org/multierr"
	billy "gopkg.in/src-d/go-billy.v4"

	"github.com/OCharnyshevich/terragen/internal/config"
	"github.com/OCharnyshevich/terragen/pkg/erosion"
)

// ManifestName is the run manifest written next to the outputs.
const ManifestName = "run.json"

// timestampLayout is used in generated output names.
const timestampLayout = "20060102-150405"

// Manifest records how a run's outputs were produced.
type Manifest struct {
	Created  time.Time      `json:"created"`
	Backend  string         `json:"backend"`
	Config   *config.Config `json:"config"`
	Erosion  erosion.Stats  `json:"erosion"`
	Outputs  []string       `json:"outputs"`
	Duration string         `json:"duration"`
}

// Storage writes run outputs into a directory of fs.
type Storage struct {
	fs  billy.Filesystem
	log *slog.Logger
	now func() time.Time
}

// New creates a Storage rooted at fs. Directories are created on first write.
func New(fs billy.Filesystem, log *slog.Logger) *Storage {
	return &Storage{fs: fs, log: log, now: time.Now}
}

// Name returns a generated output name such as
// 2d_perlin2d_s1337_20261019-153000.png.
func (s *Storage) Name(dim int, backend string, seed int64, ext string) string {
	return fmt.Sprintf("%dd_%s_s%d_%s.%s", dim, backend, seed, s.now().Format(timestampLayout), ext)
}

// WriteFile streams write into name atomically using a temp file + rename.
// name may contain directories; they are created.
func (s *Storage) WriteFile(name string, write func(io.Writer) error) error {
	if dir := path.Dir(name); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	tmp := name + ".tmp"
	f, err := s.fs.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if err := write(f); err != nil {
		err = multierr.Append(err, f.Close())
		return fmt.Errorf("write %s: %w", name, multierr.Append(err, s.fs.Remove(tmp)))
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, multierr.Append(err, s.fs.Remove(tmp)))
	}
	if err := s.fs.Rename(tmp, name); err != nil {
		return fmt.Errorf("rename temp file: %w", multierr.Append(err, s.fs.Remove(tmp)))
	}

	s.log.Debug("wrote output", "path", s.fs.Join(s.fs.Root(), name))
	return nil
}

// SaveManifest writes m to run.json atomically.
func (s *Storage) SaveManifest(m *Manifest) error {
	return s.atomicWriteJSON(ManifestName, m)
}

// LoadManifest reads run.json, or returns nil if there is none.
func (s *Storage) LoadManifest() (*Manifest, error) {
	f, err := s.fs.Open(ManifestName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	defer f.Close()

	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

// atomicWriteJSON marshals v to indented JSON and writes it atomically.
func (s *Storage) atomicWriteJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')

	return s.WriteFile(name, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}
