package loader

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dshills/csve/internal/vfs"
)

func TestTOMLLoader_Load(t *testing.T) {
	memfs := vfs.NewMemFS()
	memfs.AddFile("/config.toml", `
[editor]
column_width = 14
confirm_discard = false

[csv]
delimiter = ";"
`)

	config, err := NewTOMLLoader(memfs, "/config.toml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	editor, ok := config["editor"].(map[string]any)
	if !ok {
		t.Fatal("expected editor to be a map")
	}
	if editor["column_width"] != int64(14) {
		t.Errorf("column_width = %v (%T), want 14", editor["column_width"], editor["column_width"])
	}
	if editor["confirm_discard"] != false {
		t.Errorf("confirm_discard = %v, want false", editor["confirm_discard"])
	}
	if v, _ := GetByPath(config, "csv.delimiter"); v != ";" {
		t.Errorf("csv.delimiter = %v, want ;", v)
	}
}

func TestTOMLLoader_ParseErrorPosition(t *testing.T) {
	memfs := vfs.NewMemFS()
	memfs.AddFile("/bad.toml", "[editor]\ncolumn_width = = 3\n")

	_, err := NewTOMLLoader(memfs, "/bad.toml").Load()

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T (%v)", err, err)
	}
	if perr.Path != "/bad.toml" {
		t.Errorf("Path = %q, want /bad.toml", perr.Path)
	}
	if perr.Line != 2 {
		t.Errorf("Line = %d, want 2", perr.Line)
	}
}

func TestLoader_MissingFile(t *testing.T) {
	memfs := vfs.NewMemFS()

	for _, path := range []string{"/none.toml", "/none.yaml"} {
		l, err := ForPath(memfs, path)
		if err != nil {
			t.Fatalf("ForPath(%s): %v", path, err)
		}
		config, err := l.Load()
		if err != nil || config != nil {
			t.Errorf("%s: expected nil, nil, got %v, %v", path, config, err)
		}
	}
}

func TestYAMLLoader_Load(t *testing.T) {
	memfs := vfs.NewMemFS()
	memfs.AddFile("/config.yml", `
editor:
  column_width: 20
keys:
  file.save: [ctrl+s, F10]
`)

	config, err := NewYAMLLoader(memfs, "/config.yml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if v, _ := GetByPath(config, "editor.column_width"); v != 20 {
		t.Errorf("column_width = %v (%T), want 20", v, v)
	}
	keys, ok := config["keys"].(map[string]any)
	if !ok {
		t.Fatalf("expected keys map, got %T", config["keys"])
	}
	want := []any{"ctrl+s", "F10"}
	if !reflect.DeepEqual(keys["file.save"], want) {
		t.Errorf("file.save = %v, want %v", keys["file.save"], want)
	}
}

func TestYAMLLoader_Empty(t *testing.T) {
	config, err := ParseYAML("<test>", nil)
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}
	if config == nil || len(config) != 0 {
		t.Errorf("expected empty map, got %v", config)
	}
}

func TestYAMLLoader_ParseError(t *testing.T) {
	_, err := ParseYAML("/bad.yaml", []byte("editor: [unclosed\n"))

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T (%v)", err, err)
	}
}

func TestForPath_Unsupported(t *testing.T) {
	_, err := ForPath(vfs.NewMemFS(), "/config.ini")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"editor": map[string]any{"column_width": 12, "confirm_discard": true},
		"log":    map[string]any{"level": "info"},
	}
	src := map[string]any{
		"editor": map[string]any{"column_width": 20},
		"csv":    map[string]any{"delimiter": ";"},
	}

	got := DeepMerge(dst, src)

	want := map[string]any{
		"editor": map[string]any{"column_width": 20, "confirm_discard": true},
		"log":    map[string]any{"level": "info"},
		"csv":    map[string]any{"delimiter": ";"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DeepMerge = %v, want %v", got, want)
	}

	// src must not alias into the result.
	src["csv"].(map[string]any)["delimiter"] = "|"
	if v, _ := GetByPath(got, "csv.delimiter"); v != ";" {
		t.Errorf("merged value aliased src: %v", v)
	}
}

func TestEnvLoader(t *testing.T) {
	env := []string{
		"CSVE_LOG_LEVEL=debug",
		"CSVE_EDITOR_COLUMN_WIDTH=18",
		"CSVE_EDITOR_CONFIRM_DISCARD=off",
		"CSVE_CONFIG=/ignored.toml",
		"CSVE_TAB=x",
		"HOME=/home/user",
	}
	l := NewEnvLoader("CSVE_").WithEnviron(func() []string { return env })
	l.AddMapping("CSVE_TAB", "csv.delimiter")

	config, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		path string
		want any
	}{
		{"log.level", "debug"},
		{"editor.column_width", int64(18)},
		{"editor.confirm_discard", false},
		{"csv.delimiter", "x"},
	}
	for _, tt := range tests {
		got, ok := GetByPath(config, tt.path)
		if !ok || got != tt.want {
			t.Errorf("%s = %v (%T), want %v", tt.path, got, got, tt.want)
		}
	}
	if _, ok := config["config"]; ok {
		t.Error("CSVE_CONFIG has no setting part and should be ignored")
	}
	if _, ok := config["home"]; ok {
		t.Error("variables without the prefix should be ignored")
	}
}
