package capture

import (
	"github.com/arrvision/stereorig/internal/fleet"
	"github.com/arrvision/stereorig/internal/logging"
	"go.uber.org/zap"
)

// Assignment is one camera's share of a capture run: the identity the
// operator sees, the sensor control values to apply, and the processing
// parameters the pipeline downstream will use. Assignments are derived
// from the fleet configuration and never written back to it.
type Assignment struct {
	// Slot is the device's position in the fleet config (0-based).
	Slot int

	Serial      string
	Name        string
	Orientation string

	Mount   fleet.MountGeometry
	Params  fleet.ProcessingParams
	Control fleet.ControlSettings

	// Prefix is the filesystem-safe tag used for this camera's artifact
	// directory and file names.
	Prefix string
}

// Plan builds the capture assignments for a fleet: one per slot that is
// enabled and has a serial bound. A serial that appears in more than one
// enabled slot is planned once; later slots are skipped with a warning,
// matching the reconciler's earlier-slot-wins rule.
func Plan(cfg *fleet.FleetConfig) []Assignment {
	plan := make([]Assignment, 0, len(cfg.Devices))
	claimed := make(map[string]int, len(cfg.Devices))

	for i, rec := range cfg.Devices {
		if !rec.Enabled || !rec.Assigned() {
			continue
		}
		if prev, dup := claimed[rec.Serial]; dup {
			logging.Warn("Duplicate serial in enabled slots, skipping",
				zap.String("serial", rec.Serial),
				zap.Int("slot", i),
				zap.Int("planned_slot", prev),
			)
			continue
		}
		claimed[rec.Serial] = i

		plan = append(plan, Assignment{
			Slot:        i,
			Serial:      rec.Serial,
			Name:        rec.Name,
			Orientation: rec.Orientation,
			Mount:       rec.Mount,
			Params:      rec.Params,
			Control:     rec.Control,
			Prefix:      Prefix(cfg, rec, i),
		})
	}

	return plan
}

// Prefix derives the artifact tag for one device. Serial-bound devices use
// prefix+serial; otherwise the configured name; otherwise the unassigned
// placeholder. The orientation is appended when present, and the whole tag
// is sanitized for filesystem use.
func Prefix(cfg *fleet.FleetConfig, rec fleet.DeviceRecord, slot int) string {
	base := rec.Name
	if rec.Serial != "" {
		base = cfg.NamePrefix + rec.Serial
	}
	if base == "" {
		base = cfg.AutoName("", slot+1)
	}
	if rec.Orientation != "" {
		base += "_" + rec.Orientation
	}
	return fleet.SanitizeTag(base)
}
