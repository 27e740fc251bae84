// Package fs provides a file-backed chain layer.
//
// A fs.Layer loads a JSON or YAML document's top-level mapping into an
// insertion-ordered map and exposes it as a layer for
// Chain[string, any]. Edits made through the chain stay in memory
// until Save, which writes atomically (temp file + rename). Watch
// reloads the layer when the file changes on disk, so chains over the
// layer observe external edits without being rebuilt.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/yacchi/kasane/format"
	"github.com/yacchi/kasane/format/json"
	"github.com/yacchi/kasane/format/yaml"
	"github.com/yacchi/kasane/layer"
	"github.com/yacchi/kasane/layer/ordered"
)

// Default permission modes.
const (
	DefaultFileMode = 0644
	DefaultDirMode  = 0755
)

// Layer is a chain layer backed by a file.
//
// Reads and in-memory writes are synchronized internally, so a Watch
// reload can run while a chain reads the layer. The chain itself
// remains single-threaded; the lock only protects the layer's own
// data swap.
type Layer struct {
	name     layer.Name
	path     string
	parser   format.Parser
	fileMode os.FileMode
	dirMode  os.FileMode

	mu    sync.RWMutex
	data  *ordered.Map[string, any]
	dirty bool
}

// Ensure Layer implements the layer.Layer and layer.Named interfaces.
var (
	_ layer.Layer[string, any] = (*Layer)(nil)
	_ layer.Named              = (*Layer)(nil)
)

// Option configures a Layer.
type Option func(*Layer)

// WithName sets the layer name. Default is the file's base name.
func WithName(name layer.Name) Option {
	return func(l *Layer) {
		l.name = name
	}
}

// WithParser sets the document parser explicitly, overriding
// extension-based detection.
func WithParser(p format.Parser) Option {
	return func(l *Layer) {
		l.parser = p
	}
}

// WithFileMode sets the file permission mode used when saving.
// Default is 0644.
func WithFileMode(mode os.FileMode) Option {
	return func(l *Layer) {
		l.fileMode = mode
	}
}

// WithDirMode sets the directory permission mode used when creating
// parent directories. Default is 0755.
func WithDirMode(mode os.FileMode) Option {
	return func(l *Layer) {
		l.dirMode = mode
	}
}

// New creates a file-backed layer for the given path. The parser is
// chosen by file extension unless WithParser is given; unknown
// extensions are an error.
//
// The layer is empty until Load is called.
//
// Example:
//
//	user, err := fs.New("~/.config/app/config.yaml")
//	if err != nil {
//	    return err
//	}
//	if err := user.Load(ctx); err != nil {
//	    return err
//	}
//	chain := kasane.New[string, any](user, defaults)
func New(path string, opts ...Option) (*Layer, error) {
	l := &Layer{
		path:     path,
		fileMode: DefaultFileMode,
		dirMode:  DefaultDirMode,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.name == "" {
		l.name = layer.Name(filepath.Base(path))
	}
	if l.parser == nil {
		p, ok := DefaultParser(path)
		if !ok {
			return nil, fmt.Errorf("no parser for file %q (use fs.WithParser)", path)
		}
		l.parser = p
	}
	return l, nil
}

// DefaultParser returns the parser registered for the path's
// extension: .json, .yaml, and .yml are recognized.
func DefaultParser(path string) (format.Parser, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.New(), true
	case ".yaml", ".yml":
		return yaml.New(), true
	default:
		return nil, false
	}
}

// Name returns the layer's name.
func (l *Layer) Name() layer.Name {
	return l.name
}

// Path returns the file path backing this layer.
func (l *Layer) Path() string {
	return l.path
}

// Format returns the document format name.
func (l *Layer) Format() string {
	return l.parser.Format()
}

// Load reads and parses the file, replacing the layer's contents.
// Uncommitted in-memory edits are discarded and the dirty flag is
// cleared.
func (l *Layer) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return fmt.Errorf("load %q: %w", l.path, err)
	}
	parsed, err := l.parser.Parse(data)
	if err != nil {
		return fmt.Errorf("load %q: %w", l.path, err)
	}

	l.mu.Lock()
	l.data = parsed
	l.dirty = false
	l.mu.Unlock()
	return nil
}

// Loaded returns whether the layer has been loaded.
func (l *Layer) Loaded() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.data != nil
}

// Dirty returns whether the layer has in-memory edits not yet saved.
func (l *Layer) Dirty() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.dirty
}

// Get returns the value for key and whether the key is present.
// An unloaded layer has no keys.
func (l *Layer) Get(key string) (any, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.data == nil {
		return nil, false
	}
	return l.data.Get(key)
}

// Set stores value under key in memory. Call Save to persist.
func (l *Layer) Set(key string, value any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.data == nil {
		l.data = ordered.New[string, any]()
	}
	l.data.Set(key, value)
	l.dirty = true
}

// Delete removes key in memory and reports whether it was present.
// Call Save to persist.
func (l *Layer) Delete(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.data == nil {
		return false
	}
	if !l.data.Delete(key) {
		return false
	}
	l.dirty = true
	return true
}

// Len returns the number of keys.
func (l *Layer) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.data == nil {
		return 0
	}
	return l.data.Len()
}

// Keys returns all keys in document order.
func (l *Layer) Keys() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.data == nil {
		return nil
	}
	return l.data.Keys()
}

// Save writes the layer's contents back to its file. The write is
// atomic: data goes to a temporary file in the same directory which is
// then renamed over the target. Parent directories are created if
// missing. The dirty flag is cleared on success.
func (l *Layer) Save(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.RLock()
	data := l.data
	l.mu.RUnlock()
	if data == nil {
		return fmt.Errorf("save %q: layer has not been loaded", l.path)
	}

	out, err := l.parser.Marshal(data)
	if err != nil {
		return fmt.Errorf("save %q: %w", l.path, err)
	}

	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, l.dirMode); err != nil {
		return fmt.Errorf("save %q: %w", l.path, err)
	}

	tmp, err := os.CreateTemp(dir, ".kasane-*.tmp")
	if err != nil {
		return fmt.Errorf("save %q: %w", l.path, err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		return fmt.Errorf("save %q: %w", l.path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("save %q: %w", l.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save %q: %w", l.path, err)
	}
	if err := os.Chmod(tmpPath, l.fileMode); err != nil {
		return fmt.Errorf("save %q: %w", l.path, err)
	}
	if err := os.Rename(tmpPath, l.path); err != nil {
		return fmt.Errorf("save %q: %w", l.path, err)
	}
	success = true

	l.mu.Lock()
	l.dirty = false
	l.mu.Unlock()
	return nil
}
