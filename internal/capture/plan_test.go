package capture

import (
	"context"
	"errors"
	"testing"

	"github.com/arrvision/stereorig/internal/fleet"
)

func newTestFleet(t *testing.T, serials ...string) *fleet.FleetConfig {
	t.Helper()
	cfg := fleet.New()
	cfg.Reconcile(serials)
	return cfg
}

func TestPlanSkipsDisabledAndUnassigned(t *testing.T) {
	cfg := newTestFleet(t, "SN1", "SN2")
	cfg.Devices[1].Enabled = false
	// Slot 2 is an unassigned placeholder after reconcile.

	plan := Plan(cfg)
	if len(plan) != 1 {
		t.Fatalf("len(plan) = %d, want 1", len(plan))
	}
	if plan[0].Serial != "SN1" || plan[0].Slot != 0 {
		t.Errorf("plan[0] = %+v, want SN1 in slot 0", plan[0])
	}
}

func TestPlanSkipsDuplicateSerials(t *testing.T) {
	cfg := newTestFleet(t, "SN1")
	// Force a duplicate by hand; Reconcile would normally clear it.
	cfg.Devices[1].Serial = "SN1"
	cfg.Devices[1].Enabled = true

	plan := Plan(cfg)
	if len(plan) != 1 {
		t.Fatalf("len(plan) = %d, want 1 (duplicate skipped)", len(plan))
	}
	if plan[0].Slot != 0 {
		t.Errorf("plan[0].Slot = %d, want 0 (earlier slot wins)", plan[0].Slot)
	}
}

func TestPlanCopiesResolvedSettings(t *testing.T) {
	cfg := newTestFleet(t, "SN1")
	cfg.Devices[0].Params.MaxRangeM = 4.5
	cfg.Devices[0].Control.GainDb = 6

	plan := Plan(cfg)
	if len(plan) == 0 {
		t.Fatal("empty plan")
	}
	a := plan[0]
	if a.Params.MaxRangeM != 4.5 {
		t.Errorf("Params.MaxRangeM = %v, want 4.5", a.Params.MaxRangeM)
	}
	if a.Control.GainDb != 6 {
		t.Errorf("Control.GainDb = %v, want 6", a.Control.GainDb)
	}
	if a.Mount != cfg.DefaultMount {
		t.Errorf("Mount = %+v, want fleet default", a.Mount)
	}
}

func TestPrefix(t *testing.T) {
	cfg := fleet.New()

	tests := []struct {
		name string
		rec  fleet.DeviceRecord
		slot int
		want string
	}{
		{
			name: "serial bound",
			rec:  fleet.DeviceRecord{Serial: "SN1", Name: "ignored", Orientation: "left"},
			slot: 0,
			want: "CAMSN1_left",
		},
		{
			name: "name only",
			rec:  fleet.DeviceRecord{Name: "north rig", Orientation: "top"},
			slot: 1,
			want: "north_rig_top",
		},
		{
			name: "nothing bound falls back to placeholder",
			rec:  fleet.DeviceRecord{},
			slot: 2,
			want: "CAMUNASSIGNED3",
		},
		{
			name: "no orientation",
			rec:  fleet.DeviceRecord{Serial: "SN9"},
			slot: 0,
			want: "CAMSN9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Prefix(cfg, tt.rec, tt.slot); got != tt.want {
				t.Errorf("Prefix() = %q, want %q", got, tt.want)
			}
		})
	}
}

type fakeSession struct {
	serial string
	closed bool
}

func (s *fakeSession) Serial() string { return s.serial }
func (s *fakeSession) Close() error   { s.closed = true; return nil }

type fakeDriver struct {
	failOn   string
	sessions []*fakeSession
}

func (d *fakeDriver) Open(_ context.Context, a Assignment) (Session, error) {
	if a.Serial == d.failOn {
		return nil, errors.New("open failed")
	}
	s := &fakeSession{serial: a.Serial}
	d.sessions = append(d.sessions, s)
	return s, nil
}

func TestOpenAll(t *testing.T) {
	cfg := newTestFleet(t, "SN1", "SN2")
	plan := Plan(cfg)

	drv := &fakeDriver{}
	sessions, err := OpenAll(context.Background(), drv, plan)
	if err != nil {
		t.Fatalf("OpenAll() error = %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("len(sessions) = %d, want 2", len(sessions))
	}
	if sessions[0].Serial() != "SN1" || sessions[1].Serial() != "SN2" {
		t.Error("sessions out of plan order")
	}
}

func TestOpenAllClosesOnFailure(t *testing.T) {
	cfg := newTestFleet(t, "SN1", "SN2")
	plan := Plan(cfg)

	drv := &fakeDriver{failOn: "SN2"}
	_, err := OpenAll(context.Background(), drv, plan)
	if err == nil {
		t.Fatal("OpenAll() should fail when a head fails to open")
	}
	if len(drv.sessions) != 1 {
		t.Fatalf("driver opened %d sessions, want 1", len(drv.sessions))
	}
	if !drv.sessions[0].closed {
		t.Error("already opened session should be closed on failure")
	}
}
