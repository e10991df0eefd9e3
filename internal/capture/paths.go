package capture

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/arrvision/stereorig/internal/fleet"
)

// TagFormat is the timestamp layout embedded in artifact file names.
const TagFormat = "20060102_150405"

// Dirs holds the per-camera artifact directory tree.
type Dirs struct {
	// Root is <outputDir>/<prefix>.
	Root string
	PNG  string
	PGM  string
	PLY  string
}

// PlanDirs computes the artifact directories for one camera prefix. The
// sub-directory names come from the fleet configuration (dirPNG etc), so a
// rig can relayout its artifact tree without code changes.
func PlanDirs(cfg *fleet.FleetConfig, prefix string) Dirs {
	root := filepath.Join(cfg.OutputDir, prefix)
	return Dirs{
		Root: root,
		PNG:  filepath.Join(root, cfg.DirPNG),
		PGM:  filepath.Join(root, cfg.DirPGM),
		PLY:  filepath.Join(root, cfg.DirPLY),
	}
}

// Ensure creates the directory tree, including parents. Existing
// directories are fine.
func (d Dirs) Ensure() error {
	for _, dir := range []string{d.PNG, d.PGM, d.PLY} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create artifact dir %s: %w", dir, err)
		}
	}
	return nil
}

// EnsureAll creates the artifact trees for every assignment in a plan.
func EnsureAll(cfg *fleet.FleetConfig, plan []Assignment) error {
	for _, a := range plan {
		if err := PlanDirs(cfg, a.Prefix).Ensure(); err != nil {
			return err
		}
	}
	return nil
}

// Tag formats a capture timestamp for use in artifact names.
func Tag(t time.Time) string {
	return t.Format(TagFormat)
}

// ArtifactName builds a file name of the form <prefix>_<tag>.<ext>.
func ArtifactName(prefix, tag, ext string) string {
	return prefix + "_" + tag + "." + ext
}
