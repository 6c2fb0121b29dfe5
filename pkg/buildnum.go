package buildnum

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/bcomnes/buildnum/internal/logger"
)

var (
	// ErrNotFound is returned when the version file does not exist.
	ErrNotFound = errors.New("version file not found")
	// ErrMalformed is returned when the version file is not a JSON object,
	// its "version" member is not an object, "version" or "version.build"
	// appears more than once, or its build number is not a non-negative
	// integer.
	ErrMalformed = errors.New("malformed version file")
)

// BuildMeta holds metadata about a build number update.
type BuildMeta struct {
	Path     string // Path of the version file.
	OldBuild int64  // Build number before the update (0 when it was absent).
	NewBuild int64  // Build number after the update.
	HadBuild bool   // Whether version.build was present before the update.
	Content  []byte // Rendered file content that was (or would be) written.
}

// Updater increments the build number of version files.
type Updater struct {
	fs     afero.Fs
	logger *zap.Logger
	indent string
}

// Option configures an Updater.
type Option func(*Updater)

// WithFs sets the filesystem the Updater reads and writes through.
func WithFs(fs afero.Fs) Option {
	return func(u *Updater) {
		u.fs = fs
	}
}

// WithLogger sets the logger used for debug and failure events.
func WithLogger(l *zap.Logger) Option {
	return func(u *Updater) {
		if l != nil {
			u.logger = l
		}
	}
}

// WithIndent overrides the indentation used when rendering the file.
func WithIndent(indent string) Option {
	return func(u *Updater) {
		u.indent = indent
	}
}

// New returns an Updater backed by the OS filesystem unless configured otherwise.
func New(opts ...Option) *Updater {
	u := &Updater{
		fs:     afero.NewOsFs(),
		logger: logger.Nop(),
		indent: DefaultIndent,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Run increments version.build in the JSON file at path and rewrites the
// file in place. A missing "version" object or "build" field counts as 0,
// so the first run writes 1. All other fields are preserved.
//
// The file is truncated and rewritten directly with no locking. Callers
// must not run two updates against the same file concurrently.
func (u *Updater) Run(path string) (BuildMeta, error) {
	meta, perm, err := u.plan(path)
	if err != nil {
		return meta, err
	}

	if err := afero.WriteFile(u.fs, path, meta.Content, perm); err != nil {
		return meta, fmt.Errorf("writing version file %s: %w", path, err)
	}
	u.logger.Debug("wrote version file",
		zap.String("path", path),
		zap.Int64("build", meta.NewBuild),
	)
	return meta, nil
}

// DryRun computes the update Run would make without writing anything.
func (u *Updater) DryRun(path string) (BuildMeta, error) {
	meta, _, err := u.plan(path)
	return meta, err
}

// plan reads the file at path and renders its updated content. It also
// returns the file's permission bits so the rewrite keeps them.
func (u *Updater) plan(path string) (BuildMeta, os.FileMode, error) {
	meta := BuildMeta{Path: path}

	exists, err := afero.Exists(u.fs, path)
	if err != nil {
		return meta, 0, fmt.Errorf("checking version file %s: %w", path, err)
	}
	if !exists {
		return meta, 0, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	info, err := u.fs.Stat(path)
	if err != nil {
		return meta, 0, fmt.Errorf("checking version file %s: %w", path, err)
	}
	data, err := afero.ReadFile(u.fs, path)
	if err != nil {
		return meta, 0, fmt.Errorf("reading version file %s: %w", path, err)
	}
	u.logger.Debug("read version file", zap.String("path", path), zap.Int("bytes", len(data)))

	doc, err := parseDocument(data)
	if err != nil {
		return meta, 0, fmt.Errorf("%w %s: %v", ErrMalformed, path, err)
	}

	meta.OldBuild, meta.HadBuild, err = doc.build()
	if err != nil {
		return meta, 0, fmt.Errorf("%w %s: %v", ErrMalformed, path, err)
	}
	if !meta.HadBuild {
		u.logger.Debug("no build number present, starting from 0", zap.String("path", path))
	}

	meta.NewBuild, err = nextBuild(meta.OldBuild)
	if err != nil {
		return meta, 0, fmt.Errorf("%w %s: %v", ErrMalformed, path, err)
	}

	updated, err := doc.withBuild(meta.NewBuild)
	if err != nil {
		return meta, 0, err
	}
	meta.Content = updated.render(u.indent)

	return meta, info.Mode().Perm(), nil
}

// Run increments the build number in the version file at path using the
// OS filesystem.
func Run(path string) (BuildMeta, error) {
	return New().Run(path)
}

// DryRun reports the update Run would make to the version file at path
// without modifying it.
func DryRun(path string) (BuildMeta, error) {
	return New().DryRun(path)
}
