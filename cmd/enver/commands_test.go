package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	modellib "github.com/ygrebnov/model"

	"github.com/ygrebnov/enver"
	"github.com/ygrebnov/enver/envstore"
)

const schemaYAML = `- name: LOGLEVEL
  title: Log level
  description: The required level for a message to be logged
  options: debug | info
  default: info
  importance: error
- name: API_TOKEN
  title: API token
  importance: error
- name: REGION
  title: Region
  importance: warn
`

func writeFile(t *testing.T, p, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func run(t *testing.T, store envstore.Store, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := newRootCmd(store)
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestInitCmd(t *testing.T) {
	td := t.TempDir()
	schema := filepath.Join(td, "schema.yaml")
	writeFile(t, schema, schemaYAML)
	dir := filepath.Join(td, "config")

	out, _, err := run(t, envstore.Map(nil), "init", "--schema", schema, "--dir", dir)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	path := filepath.Join(dir, "production.env")
	if !strings.Contains(out, "created "+path) {
		t.Fatalf("stdout = %q", out)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(b), "LOGLEVEL=info\n") || !strings.Contains(string(b), "API_TOKEN=\n") {
		t.Fatalf("template content = %q", string(b))
	}

	_, _, err = run(t, envstore.Map(nil), "init", "--schema", schema, "--dir", dir)
	if !errors.Is(err, enver.ErrFileExists) {
		t.Fatalf("expected ErrFileExists on second init, got %v", err)
	}
}

func TestInitCmd_DryRun(t *testing.T) {
	td := t.TempDir()
	schema := filepath.Join(td, "schema.yaml")
	writeFile(t, schema, schemaYAML)
	dir := filepath.Join(td, "config")

	out, _, err := run(t, envstore.Map(nil), "init", "--dry-run", "--schema", schema, "--dir", dir)
	if err != nil {
		t.Fatalf("init --dry-run: %v", err)
	}
	entries, err := enver.LoadEntries(schema)
	if err != nil {
		t.Fatalf("LoadEntries: %v", err)
	}
	if out != enver.Render(entries) {
		t.Fatalf("dry-run output mismatch: %q", out)
	}
	if _, err := os.Stat(dir); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("dry-run must not create %s", dir)
	}
}

func TestCheckCmd(t *testing.T) {
	td := t.TempDir()
	schema := filepath.Join(td, "schema.yaml")
	writeFile(t, schema, schemaYAML)

	tests := []struct {
		name       string
		files      map[string]string
		args       []string
		seed       map[string]string
		wantErrIs  error
		wantOut    []string
		wantErrOut []string
	}{
		{
			name:  "all present",
			files: map[string]string{"production.env": "LOGLEVEL=info\nAPI_TOKEN=t\nREGION=eu\n"},
			wantOut: []string{
				"Verified config\n",
			},
		},
		{
			name:      "missing required",
			files:     map[string]string{"production.env": "LOGLEVEL=info\nREGION=eu\n"},
			wantErrIs: errMissingRequired,
			wantErrOut: []string{
				"error: In ",
				"Property 'API_TOKEN' is missing",
				"error: Failed to verify config. 1 error, 0 warnings, 0 ignored",
			},
		},
		{
			name:  "missing warning only",
			files: map[string]string{"production.env": "LOGLEVEL=info\nAPI_TOKEN=t\n"},
			wantOut: []string{
				"warning: In ",
				"Property 'REGION' is missing",
				"warning: Verified config. 1 warnings, 0 ignored",
			},
		},
		{
			name:  "environment already satisfies entries",
			files: map[string]string{"production.env": ""},
			seed:  map[string]string{"API_TOKEN": "t", "REGION": "eu", "LOGLEVEL": "debug"},
			wantOut: []string{
				"Verified config\n",
			},
		},
		{
			name:  "fallback",
			files: map[string]string{"default.env": "LOGLEVEL=info\nAPI_TOKEN=t\nREGION=eu\n"},
			args:  []string{"--fallback", "default.env"},
			wantOut: []string{
				"warning: Couldn't find ",
				"Falling back to ",
				"Verified config\n",
			},
		},
		{
			name:      "fallback missing",
			args:      []string{"--fallback", "default.env"},
			wantErrIs: enver.ErrFallbackNotFound,
		},
		{
			name:      "file missing",
			wantErrIs: enver.ErrFileNotFound,
		},
		{
			name:      "bad file name",
			args:      []string{"--file", "Prod.env"},
			wantErrIs: enver.ErrInvalidFileName,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "config")
			if err := os.MkdirAll(dir, 0o755); err != nil {
				t.Fatalf("mkdir: %v", err)
			}
			for name, data := range tt.files {
				writeFile(t, filepath.Join(dir, name), data)
			}
			args := append([]string{"check", "--schema", schema, "--dir", dir}, tt.args...)

			out, errOut, err := run(t, envstore.Map(tt.seed), args...)
			if tt.wantErrIs != nil {
				if !errors.Is(err, tt.wantErrIs) {
					t.Fatalf("expected %v, got %v", tt.wantErrIs, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, want := range tt.wantOut {
				if !strings.Contains(out, want) {
					t.Fatalf("stdout %q does not contain %q", out, want)
				}
			}
			for _, want := range tt.wantErrOut {
				if !strings.Contains(errOut, want) {
					t.Fatalf("stderr %q does not contain %q", errOut, want)
				}
			}
		})
	}
}

func TestCheckCmd_Structured(t *testing.T) {
	td := t.TempDir()
	schema := filepath.Join(td, "schema.yaml")
	writeFile(t, schema, schemaYAML)
	dir := filepath.Join(td, "config")
	writeFile(t, filepath.Join(dir, "production.env"), "LOGLEVEL=info\nAPI_TOKEN=t\n")

	_, errOut, err := run(t, envstore.Map(nil), "check", "--structured", "--schema", schema, "--dir", dir)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(errOut, "level=WARN") || !strings.Contains(errOut, "Property 'REGION' is missing") {
		t.Fatalf("stderr = %q", errOut)
	}
}

func TestSettingsResolve(t *testing.T) {
	s := settings{Schema: "schema.yaml"}
	if err := s.resolve(); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if s.Dir != "config" || s.File != "production.env" {
		t.Fatalf("defaults not applied: %+v", s)
	}

	s = settings{}
	err := s.resolve()
	var ve *modellib.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *model.ValidationError, got %T: %v", err, err)
	}
	if !strings.Contains(ve.Error(), "nonempty") {
		t.Fatalf("validation error does not mention nonempty: %q", ve.Error())
	}
}

func TestRootCmd_SchemaRequired(t *testing.T) {
	_, _, err := run(t, envstore.Map(nil), "check")
	var ve *modellib.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *model.ValidationError, got %T: %v", err, err)
	}
}
