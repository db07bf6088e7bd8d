package enver

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ygrebnov/enver/dotenv"
	"github.com/ygrebnov/enver/envstore"
	"github.com/ygrebnov/enver/sinks"
)

const defaultDir = "config"

// Exported error categories returned by this package. Callers detect them with
// errors.Is; the message text is stable as well.
var (
	ErrInvalidFileName  = errors.New("filename must only have lowercase letters and end with .env")
	ErrFileExists       = errors.New("file already exists")
	ErrNoEntries        = errors.New("no entries given")
	ErrInvalidName      = errors.New("invalid value for 'name'. May only have uppercase letters and underscores")
	ErrInvalidTitle     = errors.New("invalid value for 'title'. May only have letters and spaces")
	ErrDuplicateEntry   = errors.New("duplicate entry")
	ErrAlreadySet       = errors.New("already set in environment")
	ErrFileNotFound     = errors.New("file not found")
	ErrFallbackNotFound = errors.New("fallback file not found")
	ErrLoad             = errors.New("load config file")
	ErrWrite            = errors.New("write to config file")

	ErrEnsureConfigDir           = errors.New("ensure config dir")
	ErrCannotCreateDirectories   = errors.New("cannot create directories")
	ErrUnsupportedSchemaFileType = errors.New("unsupported schema file type")
	ErrParse                     = errors.New("parse schema file")
	ErrInvalidImportance         = errors.New("invalid importance")
)

// Loader merges a dotenv file into a store without overwriting present keys.
// dotenv.Loader is the default implementation.
type Loader interface {
	Load(path string, store envstore.Store) error
}

// Config is the fixed description a Manager works from.
type Config struct {
	// Entries are the declared variables, in the order they are written and checked.
	Entries []Entry
	// File is the config file name inside the config directory, e.g. "production.env".
	File string
	// Fallback is an optional file loaded when File is absent. It is not validated.
	Fallback string
	// Logger receives notifications. Missing sinks are silent.
	Logger sinks.Logger
}

// Manager scaffolds and loads one config file.
type Manager struct {
	entries  []Entry
	file     string
	fallback string
	logger   sinks.Logger

	dir    string
	store  envstore.Store
	fs     FS
	loader Loader
}

// Option configures a Manager at construction time.
type Option func(*Manager)

// WithDir sets the config directory (default "config"). Panics if dir is empty.
func WithDir(dir string) Option {
	return func(m *Manager) {
		if dir == "" {
			panic("enver: WithDir: dir cannot be empty")
		}
		m.dir = dir
	}
}

// WithStore sets the environment store (default envstore.OS()). Panics if s is nil.
func WithStore(s envstore.Store) Option {
	return func(m *Manager) {
		if s == nil {
			panic("enver: WithStore: store cannot be nil")
		}
		m.store = s
	}
}

// WithFS sets the file system collaborator (default OSFS()). Panics if fsys is nil.
func WithFS(fsys FS) Option {
	return func(m *Manager) {
		if fsys == nil {
			panic("enver: WithFS: fs cannot be nil")
		}
		m.fs = fsys
	}
}

// WithLoader sets the dotenv loader (default dotenv.New()). Panics if l is nil.
func WithLoader(l Loader) Option {
	return func(m *Manager) {
		if l == nil {
			panic("enver: WithLoader: loader cannot be nil")
		}
		m.loader = l
	}
}

// New returns a Manager for cfg. It fails with ErrInvalidFileName when cfg.File
// is not lowercase letters followed by ".env"; nothing else is checked here.
func New(cfg Config, opts ...Option) (*Manager, error) {
	if !fileNamePattern.MatchString(cfg.File) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFileName, cfg.File)
	}
	m := &Manager{
		entries:  cfg.Entries,
		file:     cfg.File,
		fallback: cfg.Fallback,
		logger:   cfg.Logger,
		dir:      defaultDir,
		store:    envstore.OS(),
		fs:       OSFS(),
		loader:   dotenv.New(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Path returns the location of the primary config file.
func (m *Manager) Path() string { return filepath.Join(m.dir, m.file) }

func (m *Manager) fallbackPath() string { return filepath.Join(m.dir, m.fallback) }

// Init writes a commented template for the declared entries. It never overwrites
// an existing file, and every entry is checked before anything is written.
func (m *Manager) Init() error {
	if err := EnsureDir(m.fs, m.dir); err != nil {
		return err
	}
	path := m.Path()
	if m.fs.Exists(path) {
		return fmt.Errorf("%w: %s", ErrFileExists, path)
	}
	if len(m.entries) == 0 {
		return ErrNoEntries
	}
	if err := m.checkEntries(); err != nil {
		return err
	}

	if err := m.fs.Append(path, templateHeader); err != nil {
		return errors.Join(ErrWrite, err)
	}
	for _, e := range m.entries {
		if err := m.fs.Append(path, renderEntry(e)); err != nil {
			return errors.Join(ErrWrite, err)
		}
	}
	return nil
}

func (m *Manager) checkEntries() error {
	seen := make(map[string]struct{}, len(m.entries))
	for _, e := range m.entries {
		if !namePattern.MatchString(e.Name) {
			return fmt.Errorf("%w: %q", ErrInvalidName, e.Name)
		}
		if !titlePattern.MatchString(e.Title) {
			return fmt.Errorf("%w: %q", ErrInvalidTitle, e.Title)
		}
		if _, dup := seen[e.Name]; dup {
			return fmt.Errorf("%w '%s'", ErrDuplicateEntry, e.Name)
		}
		if m.store.Get(e.Name) != "" {
			return fmt.Errorf("entry '%s' is %w", e.Name, ErrAlreadySet)
		}
		seen[e.Name] = struct{}{}
	}
	return nil
}

// Load merges the config file (or the fallback when the file is absent) into the
// store, then reports every declared entry that is unset or empty. Missing
// entries are counted in the returned Tally, never returned as an error.
func (m *Manager) Load() (Tally, error) {
	if err := m.resolveAndLoad(); err != nil {
		return Tally{}, err
	}

	var t Tally
	for _, e := range m.entries {
		if m.store.Get(e.Name) != "" {
			continue
		}
		msg := fmt.Sprintf("In %s: Property '%s' is missing", m.Path(), e.Name)
		switch e.Importance {
		case Error:
			t.Errors++
			notify(m.logger.Error, msg)
		case Warn:
			t.Warnings++
			notify(m.logger.Warn, msg)
		case Ignore:
			t.Ignored++
			notify(m.logger.Info, msg)
		}
	}

	switch {
	case t.Errors > 0 && m.logger.Error != nil:
		m.logger.Error(fmt.Sprintf("Failed to verify config. %d error, %d warnings, %d ignored", t.Errors, t.Warnings, t.Ignored))
	case t.Warnings > 0 && m.logger.Warn != nil:
		m.logger.Warn(fmt.Sprintf("Verified config. %d warnings, %d ignored", t.Warnings, t.Ignored))
	case t.Ignored > 0 && m.logger.Info != nil:
		m.logger.Info(fmt.Sprintf("Verified config. %d ignored", t.Ignored))
	case m.logger.Info != nil:
		m.logger.Info("Verified config")
	}
	return t, nil
}

func (m *Manager) resolveAndLoad() error {
	path := m.Path()
	switch {
	case m.fs.Exists(path):
		return m.load(path)
	case m.fallback != "" && m.fs.Exists(m.fallbackPath()):
		if err := m.load(m.fallbackPath()); err != nil {
			return err
		}
		notify(m.logger.Warn, fmt.Sprintf("Couldn't find %s. Falling back to %s", path, m.fallbackPath()))
		return nil
	case m.fallback != "":
		return ErrFallbackNotFound
	default:
		return ErrFileNotFound
	}
}

func (m *Manager) load(path string) error {
	if err := m.loader.Load(path, m.store); err != nil {
		return errors.Join(ErrLoad, err)
	}
	return nil
}

func notify(sink func(string), msg string) {
	if sink != nil {
		sink(msg)
	}
}
