package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"media-scribe-go/internal/logger"
)

// Workspace is the shared scratch directory for transient audio
// artifacts. Filenames are unique per run, so concurrent runs never
// need to coordinate beyond this type.
type Workspace struct {
	dir string
	log *logger.Logger
}

// New ensures dir exists and returns a workspace rooted there.
func New(dir string, log *logger.Logger) (*Workspace, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace dir %s: %w", dir, err)
	}
	return &Workspace{dir: dir, log: log}, nil
}

func (w *Workspace) Dir() string {
	return w.dir
}

// Path joins name onto the workspace root.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// UniquePath returns a collision-free path <prefix>_<uuid><ext>.
// ext must include the leading dot when non-empty.
func (w *Workspace) UniquePath(prefix, ext string) string {
	return filepath.Join(w.dir, fmt.Sprintf("%s_%s%s", prefix, uuid.New().String(), ext))
}

// Remove deletes the given artifacts, deduplicated by cleaned path.
// A missing file is not an error; anything else is logged and
// swallowed, since the run's outcome is already decided by the time
// cleanup happens.
func (w *Workspace) Remove(paths ...string) {
	seen := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		clean := filepath.Clean(p)
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		if err := os.Remove(clean); err != nil && !os.IsNotExist(err) {
			w.log.WithComponent("workspace").WithField("path", clean).
				WithField("error", err.Error()).Warn("artifact cleanup failed")
		}
	}
}
