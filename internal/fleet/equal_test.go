package fleet

import "testing"

func TestParamsEqualRelativeTolerance(t *testing.T) {
	base := New().DefaultParams

	same := base
	if !ParamsEqual(base, same) {
		t.Error("identical params should compare equal")
	}

	// A large value with a tiny relative difference is still equal.
	a := base
	b := base
	a.MaxRangeM = 1000
	b.MaxRangeM = 1000.0005 // diff 5e-4 <= 1e-6 * 1000
	if !ParamsEqual(a, b) {
		t.Error("relative tolerance should absorb small drift on large values")
	}

	// The same absolute difference near 1.0 is a real difference.
	a.MaxRangeM = 1
	b.MaxRangeM = 1.0005
	if ParamsEqual(a, b) {
		t.Error("5e-4 difference at magnitude 1 should not compare equal")
	}

	// Integer and boolean fields compare exactly.
	c := base
	c.DecimationFactor++
	if ParamsEqual(base, c) {
		t.Error("integer field difference should not compare equal")
	}
	d := base
	d.PLYBinary = !d.PLYBinary
	if ParamsEqual(base, d) {
		t.Error("boolean field difference should not compare equal")
	}
}

func TestControlEqualAbsoluteTolerance(t *testing.T) {
	a := ControlSettings{ExposureUs: 15000, GainDb: 0}
	b := a

	b.ExposureUs = 15000.0000005
	if !ControlEqual(a, b) {
		t.Error("sub-tolerance exposure difference should compare equal")
	}

	// Control uses an absolute tolerance: the same relative drift that
	// ParamsEqual absorbs is a difference here. Changing this would change
	// which control sections get persisted.
	b.ExposureUs = 15000.01
	if ControlEqual(a, b) {
		t.Error("0.01us exposure difference should not compare equal (absolute tolerance)")
	}

	b = a
	b.GainDb = 2e-6
	if ControlEqual(a, b) {
		t.Error("2e-6 gain difference exceeds the absolute tolerance")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := New()
	rec := DeviceRecord{Serial: "SN1", Name: "keep me", Orientation: OrientTop}
	rec.Params.MaxRangeM = 99

	cfg.ApplyDefaults(&rec)

	if rec.Params != cfg.DefaultParams {
		t.Error("ApplyDefaults should overwrite params with fleet defaults")
	}
	if rec.Mount != cfg.DefaultMount {
		t.Error("ApplyDefaults should overwrite mount with fleet defaults")
	}
	if rec.Control != cfg.DefaultControl {
		t.Error("ApplyDefaults should overwrite control with fleet defaults")
	}
	if rec.Serial != "SN1" || rec.Name != "keep me" || rec.Orientation != OrientTop {
		t.Error("ApplyDefaults must not touch identity fields")
	}
}
