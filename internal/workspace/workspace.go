// Package workspace resolves the numbered document directories under the
// documents root.
//
// Generated documents live in directories named {NNN}_{suffix}, where NNN is a
// zero-padded three-digit index. The very first directory is
// 001_initialization; every later one uses the feature suffix. Running the
// workflow's first stage always creates a fresh directory; every other stage
// reuses the latest existing one.
//
// Key types:
//   - [Workspace] - Resolver bound to a documents root and first-stage name
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
)

// DefaultDocsDir is the documents root directory name, created lazily
// relative to the project working directory.
const DefaultDocsDir = "docs-for-works"

const (
	initializationSuffix = "initialization"
	featureSuffix        = "feature"
)

// numberedDirPattern matches stage directory names like 001_initialization.
// Indexes beyond 999 break the zero-padded ordering; that limit is accepted.
var numberedDirPattern = regexp.MustCompile(`^\d{3}_`)

// ErrNotFound is a sentinel error indicating that no numbered stage directory
// exists yet. It signals that the workflow's first stage has to run before
// the requested one.
var ErrNotFound = errors.New("no stage directories found")

// Workspace resolves stage directories beneath a documents root.
//
// Create with [New]. The zero value is not usable.
type Workspace struct {
	root       string
	firstStage string
}

// New creates a [Workspace] rooted at workDir/docs-for-works.
//
// firstStage is the name of the workflow's first stage (the head of the
// configured stage list); resolving it creates a new numbered directory,
// while every other stage resolves to the latest existing one.
func New(workDir, firstStage string) *Workspace {
	return &Workspace{
		root:       filepath.Join(workDir, DefaultDocsDir),
		firstStage: firstStage,
	}
}

// Root returns the documents root path. The directory may not exist yet; it
// is created on first resolution.
func (w *Workspace) Root() string {
	return w.root
}

// Resolve returns the target directory for the given stage, creating the
// documents root and (for the first stage) a fresh numbered directory as
// needed.
//
// For non-first stages, returns [ErrNotFound] when no numbered directory
// exists yet.
func (w *Workspace) Resolve(stage string) (string, error) {
	if err := os.MkdirAll(w.root, 0o755); err != nil {
		return "", fmt.Errorf("failed to create documents root: %w", err)
	}

	if stage == w.firstStage {
		return w.createNext()
	}
	return w.latest()
}

// DocumentPath returns the path of a stage's document inside dir.
func DocumentPath(dir, stage string) string {
	return filepath.Join(dir, stage+".md")
}

// createNext creates and returns the next numbered directory. The first
// directory ever created gets the initialization suffix; later ones are
// feature directories. Re-running the first stage intentionally creates yet
// another directory rather than reusing the last one.
func (w *Workspace) createNext() (string, error) {
	existing, err := w.numberedDirs()
	if err != nil {
		return "", err
	}

	suffix := featureSuffix
	if len(existing) == 0 {
		suffix = initializationSuffix
	}
	name := fmt.Sprintf("%03d_%s", len(existing)+1, suffix)

	dir := filepath.Join(w.root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create stage directory: %w", err)
	}
	return dir, nil
}

// latest returns the numbered directory with the highest index. Ordering is
// lexicographic, which matches numeric order thanks to the zero padding.
func (w *Workspace) latest() (string, error) {
	existing, err := w.numberedDirs()
	if err != nil {
		return "", err
	}
	if len(existing) == 0 {
		return "", fmt.Errorf("%w: run the %q stage first", ErrNotFound, w.firstStage)
	}

	sort.Strings(existing)
	return filepath.Join(w.root, existing[len(existing)-1]), nil
}

func (w *Workspace) numberedDirs() ([]string, error) {
	entries, err := os.ReadDir(w.root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan documents root: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() && numberedDirPattern.MatchString(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
