package fs_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"golang.org/x/tools/txtar"

	kjson "github.com/yacchi/kasane/format/json"
	"github.com/yacchi/kasane/kstest"
	"github.com/yacchi/kasane/layer"
	"github.com/yacchi/kasane/layer/ordered"
	"github.com/yacchi/kasane/source/fs"
)

// extractFixture writes a txtar archive into a temp dir and returns
// the dir.
func extractFixture(t *testing.T, archive string) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range txtar.Parse([]byte(archive)).Files {
		path := filepath.Join(dir, f.Name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir for %s: %v", f.Name, err)
		}
		if err := os.WriteFile(path, f.Data, 0644); err != nil {
			t.Fatalf("write %s: %v", f.Name, err)
		}
	}
	return dir
}

const configFixture = `
-- config.json --
{"zebra": 1, "apple": 2, "mango": 3}
-- config.yaml --
host: localhost
port: 8080
debug: true
-- scalar.yaml --
just a scalar
`

func loadLayer(t *testing.T, path string, opts ...fs.Option) *fs.Layer {
	t.Helper()
	l, err := fs.New(path, opts...)
	if err != nil {
		t.Fatalf("New(%s) error = %v", path, err)
	}
	if err := l.Load(context.Background()); err != nil {
		t.Fatalf("Load(%s) error = %v", path, err)
	}
	return l
}

func TestNew_ParserDetection(t *testing.T) {
	tests := []struct {
		path       string
		wantFormat string
		wantErr    bool
	}{
		{path: "config.json", wantFormat: "json"},
		{path: "config.yaml", wantFormat: "yaml"},
		{path: "config.yml", wantFormat: "yaml"},
		{path: "Config.JSON", wantFormat: "json"},
		{path: "config.toml", wantErr: true},
		{path: "config", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			l, err := fs.New(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("New returned nil error for unknown extension")
				}
				return
			}
			if err != nil {
				t.Fatalf("New error = %v", err)
			}
			if got := l.Format(); got != tt.wantFormat {
				t.Errorf("Format() = %q, want %q", got, tt.wantFormat)
			}
		})
	}
}

func TestNew_WithParserOverride(t *testing.T) {
	l, err := fs.New("settings.conf", fs.WithParser(kjson.New()))
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	if got := l.Format(); got != "json" {
		t.Errorf("Format() = %q, want json", got)
	}
}

func TestLayer_Name(t *testing.T) {
	dir := extractFixture(t, configFixture)

	l, err := fs.New(filepath.Join(dir, "config.json"))
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	if got := l.Name(); got != layer.Name("config.json") {
		t.Errorf("Name() = %q, want base name config.json", got)
	}

	named, err := fs.New(filepath.Join(dir, "config.json"), fs.WithName("defaults"))
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	if got := named.Name(); got != layer.Name("defaults") {
		t.Errorf("Name() = %q, want defaults", got)
	}
}

func TestLayer_LoadJSON(t *testing.T) {
	dir := extractFixture(t, configFixture)
	l := loadLayer(t, filepath.Join(dir, "config.json"))

	want := []string{"zebra", "apple", "mango"}
	if got := l.Keys(); !slices.Equal(got, want) {
		t.Errorf("Keys() = %v, want document order %v", got, want)
	}
	if l.Len() != 3 {
		t.Errorf("Len() = %d, want 3", l.Len())
	}

	v, ok := l.Get("apple")
	if !ok {
		t.Fatal("Get(apple) returned ok=false")
	}
	if n, ok := v.(json.Number); !ok || n.String() != "2" {
		t.Errorf("Get(apple) = %v (%T), want json.Number 2", v, v)
	}
}

func TestLayer_LoadYAML(t *testing.T) {
	dir := extractFixture(t, configFixture)
	l := loadLayer(t, filepath.Join(dir, "config.yaml"))

	want := []string{"host", "port", "debug"}
	if got := l.Keys(); !slices.Equal(got, want) {
		t.Errorf("Keys() = %v, want document order %v", got, want)
	}
	if v, _ := l.Get("port"); v != 8080 {
		t.Errorf("Get(port) = %v (%T), want int 8080", v, v)
	}
}

func TestLayer_LoadErrors(t *testing.T) {
	dir := extractFixture(t, configFixture)

	t.Run("missing file", func(t *testing.T) {
		l, err := fs.New(filepath.Join(dir, "nope.json"))
		if err != nil {
			t.Fatalf("New error = %v", err)
		}
		if err := l.Load(context.Background()); err == nil {
			t.Error("Load of missing file returned nil error")
		}
	})

	t.Run("non-mapping document", func(t *testing.T) {
		l, err := fs.New(filepath.Join(dir, "scalar.yaml"))
		if err != nil {
			t.Fatalf("New error = %v", err)
		}
		if err := l.Load(context.Background()); err == nil {
			t.Error("Load of scalar document returned nil error")
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		l, err := fs.New(filepath.Join(dir, "config.json"))
		if err != nil {
			t.Fatalf("New error = %v", err)
		}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := l.Load(ctx); err == nil {
			t.Error("Load with canceled context returned nil error")
		}
	})
}

func TestLayer_Unloaded(t *testing.T) {
	dir := extractFixture(t, configFixture)
	l, err := fs.New(filepath.Join(dir, "config.json"))
	if err != nil {
		t.Fatalf("New error = %v", err)
	}

	if l.Loaded() {
		t.Error("Loaded() = true before Load")
	}
	if _, ok := l.Get("zebra"); ok {
		t.Error("Get on unloaded layer returned ok=true")
	}
	if l.Len() != 0 || l.Keys() != nil {
		t.Errorf("Len() = %d, Keys() = %v on unloaded layer, want 0, nil", l.Len(), l.Keys())
	}
	if err := l.Save(context.Background()); err == nil {
		t.Error("Save on unloaded layer returned nil error")
	}

	// Set works before Load; the layer starts from empty.
	l.Set("x", 1)
	if v, _ := l.Get("x"); v != 1 {
		t.Errorf("Get(x) = %v after Set on unloaded layer, want 1", v)
	}
}

func TestLayer_SetSaveReload(t *testing.T) {
	dir := extractFixture(t, configFixture)
	path := filepath.Join(dir, "config.json")
	ctx := context.Background()

	l := loadLayer(t, path)
	if l.Dirty() {
		t.Error("Dirty() = true right after Load")
	}

	l.Set("apple", 20)
	l.Set("kiwi", 4)
	if !l.Dirty() {
		t.Error("Dirty() = false after Set")
	}

	if err := l.Save(ctx); err != nil {
		t.Fatalf("Save error = %v", err)
	}
	if l.Dirty() {
		t.Error("Dirty() = true after Save")
	}

	// A fresh layer sees the saved state, with the new key appended.
	reloaded := loadLayer(t, path)
	want := []string{"zebra", "apple", "mango", "kiwi"}
	if got := reloaded.Keys(); !slices.Equal(got, want) {
		t.Errorf("Keys() = %v after reload, want %v", got, want)
	}
	v, _ := reloaded.Get("apple")
	if n, ok := v.(json.Number); !ok || n.String() != "20" {
		t.Errorf("Get(apple) = %v after reload, want 20", v)
	}
}

func TestLayer_SaveCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deep", "config.json")
	ctx := context.Background()

	l, err := fs.New(path)
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	l.Set("x", 1)
	if err := l.Save(ctx); err != nil {
		t.Fatalf("Save error = %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("saved file missing: %v", err)
	}
}

func TestLayer_LoadDiscardsEdits(t *testing.T) {
	dir := extractFixture(t, configFixture)
	l := loadLayer(t, filepath.Join(dir, "config.json"))

	l.Set("zebra", 100)
	l.Delete("mango")

	if err := l.Load(context.Background()); err != nil {
		t.Fatalf("Load error = %v", err)
	}

	v, _ := l.Get("zebra")
	if n, ok := v.(json.Number); !ok || n.String() != "1" {
		t.Errorf("Get(zebra) = %v after reload, want file value 1", v)
	}
	if _, ok := l.Get("mango"); !ok {
		t.Error("mango missing after reload, deletes should be discarded")
	}
	if l.Dirty() {
		t.Error("Dirty() = true after Load")
	}
}

func TestLayer_Compliance(t *testing.T) {
	parser := kjson.New()

	factory := func(entries []kstest.KV) layer.Layer[string, any] {
		m := ordered.New[string, any]()
		for _, e := range entries {
			m.Set(e.Key, e.Value)
		}
		data, err := parser.Marshal(m)
		if err != nil {
			t.Fatalf("marshal seed: %v", err)
		}
		path := filepath.Join(t.TempDir(), "seed.json")
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatalf("write seed: %v", err)
		}
		return loadLayer(t, path)
	}
	kstest.NewLayerTester(t, factory).TestAll()
}

func TestLayer_Watch(t *testing.T) {
	dir := extractFixture(t, configFixture)
	path := filepath.Join(dir, "config.yaml")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := loadLayer(t, path)

	reloaded := make(chan error, 16)
	stop, err := l.Watch(ctx, func(err error) {
		reloaded <- err
	})
	if err != nil {
		t.Fatalf("Watch error = %v", err)
	}
	defer stop()

	// Replace atomically the way Save does, so only one event fires
	// with complete contents.
	tmp := filepath.Join(dir, ".tmp-rewrite")
	if err := os.WriteFile(tmp, []byte("host: localhost\nport: 9090\ndebug: true\n"), 0644); err != nil {
		t.Fatalf("write replacement: %v", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("rename replacement: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		if v, ok := l.Get("port"); ok && v == 9090 {
			break
		}
		select {
		case <-reloaded:
			// Re-check the value at the top of the loop.
		case <-deadline:
			v, _ := l.Get("port")
			t.Fatalf("port = %v after 5s, want reloaded value 9090", v)
		}
	}

	// stop is idempotent.
	stop()
	stop()
}
