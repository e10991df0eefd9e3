package fleet

import (
	"fmt"
	"io"
	"os"
	"strconv"
)

// Load reads the fleet configuration from an INI file.
//
// Two failure modes are distinguishable for the caller:
//   - the file cannot be opened or read: the returned error wraps the
//     underlying fs error (errors.Is with fs.ErrNotExist works), and the
//     caller is expected to fall back to New() and persist that;
//   - a numeric key holds non-numeric text: the returned error is a
//     *ValueError and the load is fatal.
//
// Missing keys and absent sections are not errors; every field defaults to
// the factory value from New().
func Load(path string) (*FleetConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return cfg, nil
}

// Read parses a fleet configuration from r. See Load for the error contract.
func Read(r io.Reader) (*FleetConfig, error) {
	kv, err := Parse(r)
	if err != nil {
		return nil, err
	}

	cfg := New()

	readStr(kv, "general.outputDir", &cfg.OutputDir)
	readStr(kv, "general.dirPNG", &cfg.DirPNG)
	readStr(kv, "general.dirPGM", &cfg.DirPGM)
	readStr(kv, "general.dirPLY", &cfg.DirPLY)
	if err := readUint64(kv, "general.captureTimeoutMs", &cfg.CaptureTimeoutMs); err != nil {
		return nil, err
	}
	if err := readInt(kv, "general.maxFleetSize", &cfg.MaxSize); err != nil {
		return nil, err
	}
	readBool(kv, "general.autoAddDetected", &cfg.AutoAddDetected)
	readBool(kv, "general.autoNameFromSerial", &cfg.AutoNameFromSerial)
	readStr(kv, "general.namePrefix", &cfg.NamePrefix)

	cfg.ClampSize()

	if err := loadMount(kv, "defaults", &cfg.DefaultMount); err != nil {
		return nil, err
	}
	if err := loadParams(kv, "defaults.params", &cfg.DefaultParams); err != nil {
		return nil, err
	}
	if err := loadControl(kv, "defaults.control", &cfg.DefaultControl); err != nil {
		return nil, err
	}

	cfg.Devices = make([]DeviceRecord, 0, cfg.MaxSize)

	for i := 0; i < cfg.MaxSize; i++ {
		base := "device." + strconv.Itoa(i)

		// Any of the identity keys marks the slot as explicitly configured;
		// without them the slot is a default-enabled placeholder.
		hasAny := hasKey(kv, base+".serial") ||
			hasKey(kv, base+".name") ||
			hasKey(kv, base+".enabled") ||
			hasKey(kv, base+".orient") ||
			hasKey(kv, base+".side")

		rec := DeviceRecord{
			Enabled:     true,
			Orientation: DefaultOrientation(i),
		}
		cfg.ApplyDefaults(&rec)

		if hasAny {
			readBool(kv, base+".enabled", &rec.Enabled)
			readStr(kv, base+".serial", &rec.Serial)
			readStr(kv, base+".name", &rec.Name)

			// orient is the current key; side is accepted for files written
			// before the rename.
			if hasKey(kv, base+".orient") {
				readStr(kv, base+".orient", &rec.Orientation)
			} else {
				readStr(kv, base+".side", &rec.Orientation)
			}
			rec.Orientation = CanonicalOrientation(rec.Orientation)

			if err := loadMount(kv, base, &rec.Mount); err != nil {
				return nil, err
			}
			if err := loadParams(kv, base+".params", &rec.Params); err != nil {
				return nil, err
			}
			if err := loadControl(kv, base+".control", &rec.Control); err != nil {
				return nil, err
			}
		}

		if rec.Orientation == "" {
			rec.Orientation = DefaultOrientation(i)
		}
		if rec.Name == "" {
			rec.Name = cfg.AutoName(rec.Serial, i+1)
		}

		cfg.Devices = append(cfg.Devices, rec)
	}

	return cfg, nil
}

// Save writes the configuration to path. The on-disk fleet always holds
// exactly MaxSize device sections, so Save normalizes a copy first (pad with
// defaulted slots, truncate from the tail) and leaves the caller's value
// untouched. The write is atomic: a temp file in the same directory is
// renamed over the destination.
func Save(path string, cfg *FleetConfig) error {
	c := cfg.Clone()
	c.ClampSize()
	c.Normalize()

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}

	if err := writeConfig(f, c); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write config: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write config: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// Normalize pads the device list with fresh defaulted records up to MaxSize
// and truncates anything beyond it. Returns true when the list changed.
func (c *FleetConfig) Normalize() bool {
	changed := false
	for len(c.Devices) < c.MaxSize {
		c.Devices = append(c.Devices, c.newSlotRecord(len(c.Devices)))
		changed = true
	}
	if len(c.Devices) > c.MaxSize {
		c.Devices = c.Devices[:c.MaxSize]
		changed = true
	}
	return changed
}

func writeConfig(w io.Writer, cfg *FleetConfig) error {
	iw := newINIWriter(w)

	iw.section("General")
	iw.str("outputDir", cfg.OutputDir)
	iw.str("dirPNG", cfg.DirPNG)
	iw.str("dirPGM", cfg.DirPGM)
	iw.str("dirPLY", cfg.DirPLY)
	iw.u64("captureTimeoutMs", cfg.CaptureTimeoutMs)
	iw.num("maxFleetSize", cfg.MaxSize)
	iw.boolean("autoAddDetected", cfg.AutoAddDetected)
	iw.boolean("autoNameFromSerial", cfg.AutoNameFromSerial)
	iw.str("namePrefix", cfg.NamePrefix)
	iw.blank()

	iw.section("Defaults")
	writeMount(iw, cfg.DefaultMount)
	iw.blank()

	iw.section("Defaults.Params")
	writeParams(iw, cfg.DefaultParams)
	iw.blank()

	iw.section("Defaults.Control")
	writeControl(iw, cfg.DefaultControl)
	iw.blank()

	for i := 0; i < cfg.MaxSize && i < len(cfg.Devices); i++ {
		rec := cfg.Devices[i]

		if rec.Orientation == "" {
			rec.Orientation = DefaultOrientation(i)
		}
		rec.Orientation = CanonicalOrientation(rec.Orientation)

		if rec.Name == "" && cfg.AutoNameFromSerial {
			rec.Name = cfg.AutoName(rec.Serial, i+1)
		}

		slot := strconv.Itoa(i)

		iw.section("Device." + slot)
		iw.boolean("enabled", rec.Enabled)
		iw.str("serial", rec.Serial)
		iw.str("name", rec.Name)
		iw.str("orient", rec.Orientation)
		writeMount(iw, rec.Mount)
		iw.blank()

		// Override sections are written only when the device actually
		// diverges from the fleet defaults, keeping the file minimal.
		if !ParamsEqual(rec.Params, cfg.DefaultParams) {
			iw.section("Device." + slot + ".Params")
			writeParams(iw, rec.Params)
			iw.blank()
		}
		if !ControlEqual(rec.Control, cfg.DefaultControl) {
			iw.section("Device." + slot + ".Control")
			writeControl(iw, rec.Control)
			iw.blank()
		}
	}

	return iw.flush()
}

func loadMount(kv map[string]string, prefix string, m *MountGeometry) error {
	if err := readFloat32(kv, prefix+".heightM", &m.HeightM); err != nil {
		return err
	}
	if err := readFloat32(kv, prefix+".arcOffsetM", &m.ArcOffsetM); err != nil {
		return err
	}
	return readFloat32(kv, prefix+".pitchDeg", &m.PitchDeg)
}

func writeMount(iw *iniWriter, m MountGeometry) {
	iw.f32("heightM", m.HeightM)
	iw.f32("arcOffsetM", m.ArcOffsetM)
	iw.f32("pitchDeg", m.PitchDeg)
}

func loadParams(kv map[string]string, prefix string, p *ProcessingParams) error {
	type step func() error
	steps := []step{
		func() error { return readFloat32(kv, prefix+".minRangeM", &p.MinRangeM) },
		func() error { return readFloat32(kv, prefix+".maxRangeM", &p.MaxRangeM) },
		func() error { return readInt(kv, prefix+".roiMinXPct", &p.ROIMinXPct) },
		func() error { return readInt(kv, prefix+".roiMaxXPct", &p.ROIMaxXPct) },
		func() error { return readInt(kv, prefix+".roiMinYPct", &p.ROIMinYPct) },
		func() error { return readInt(kv, prefix+".roiMaxYPct", &p.ROIMaxYPct) },
		func() error { return readInt(kv, prefix+".decimationFactor", &p.DecimationFactor) },
		func() error { return readInt(kv, prefix+".maxSpeckleSize", &p.MaxSpeckleSize) },
		func() error { return readInt(kv, prefix+".speckleThreshold", &p.SpeckleThreshold) },
		func() error { return readFloat32(kv, prefix+".voxelLeafM", &p.VoxelLeafM) },
		func() error { return readFloat32(kv, prefix+".outlierRadiusM", &p.OutlierRadiusM) },
		func() error { return readInt(kv, prefix+".outlierMinNeighbors", &p.OutlierMinNeighbors) },
		func() error { return readFloat32(kv, prefix+".groundBandPct", &p.GroundBandPct) },
		func() error { return readFloat32(kv, prefix+".groundRansacThrM", &p.GroundRANSACThrM) },
		func() error { return readInt(kv, prefix+".groundRansacIters", &p.GroundRANSACIters) },
		func() error { return readFloat32(kv, prefix+".groundCutMarginM", &p.GroundCutMarginM) },
		func() error { return readFloat32(kv, prefix+".frontFacePercentile", &p.FrontFacePercentile) },
		func() error { return readFloat32(kv, prefix+".frontDepthBandM", &p.FrontDepthBandM) },
		func() error { return readFloat32(kv, prefix+".faceSlabM", &p.FaceSlabM) },
		func() error { return readFloat32(kv, prefix+".dimPercentileLow", &p.DimPercentileLow) },
		func() error { return readFloat32(kv, prefix+".dimPercentileHigh", &p.DimPercentileHigh) },
		func() error { return readInt(kv, prefix+".colorMode", &p.ColorMode) },
		func() error { return readFloat32(kv, prefix+".hardMaxZM", &p.HardMaxZM) },
		func() error { return readFloat32(kv, prefix+".groundMinHeightM", &p.GroundMinHeightM) },
		func() error { return readFloat32(kv, prefix+".objectFacePercentile", &p.ObjectFacePercentile) },
	}
	for _, s := range steps {
		if err := s(); err != nil {
			return err
		}
	}

	readBool(kv, prefix+".applySpeckleFilter", &p.ApplySpeckleFilter)
	readBool(kv, prefix+".applyMedian3x3", &p.ApplyMedian3x3)
	readBool(kv, prefix+".keepLargestCluster", &p.KeepLargestCluster)
	readBool(kv, prefix+".enableGroundPlaneFilter", &p.EnableGroundPlaneFilter)
	readBool(kv, prefix+".enableFrontDepthClamp", &p.EnableFrontDepthClamp)
	readBool(kv, prefix+".plyBinary", &p.PLYBinary)
	return nil
}

func writeParams(iw *iniWriter, p ProcessingParams) {
	iw.f32("minRangeM", p.MinRangeM)
	iw.f32("maxRangeM", p.MaxRangeM)

	iw.num("roiMinXPct", p.ROIMinXPct)
	iw.num("roiMaxXPct", p.ROIMaxXPct)
	iw.num("roiMinYPct", p.ROIMinYPct)
	iw.num("roiMaxYPct", p.ROIMaxYPct)

	iw.num("decimationFactor", p.DecimationFactor)

	iw.boolean("applySpeckleFilter", p.ApplySpeckleFilter)
	iw.num("maxSpeckleSize", p.MaxSpeckleSize)
	iw.num("speckleThreshold", p.SpeckleThreshold)

	iw.boolean("applyMedian3x3", p.ApplyMedian3x3)

	iw.f32("voxelLeafM", p.VoxelLeafM)

	iw.f32("outlierRadiusM", p.OutlierRadiusM)
	iw.num("outlierMinNeighbors", p.OutlierMinNeighbors)

	iw.boolean("keepLargestCluster", p.KeepLargestCluster)

	iw.boolean("enableGroundPlaneFilter", p.EnableGroundPlaneFilter)
	iw.f32("groundBandPct", p.GroundBandPct)
	iw.f32("groundRansacThrM", p.GroundRANSACThrM)
	iw.num("groundRansacIters", p.GroundRANSACIters)
	iw.f32("groundCutMarginM", p.GroundCutMarginM)

	iw.boolean("enableFrontDepthClamp", p.EnableFrontDepthClamp)
	iw.f32("frontFacePercentile", p.FrontFacePercentile)
	iw.f32("frontDepthBandM", p.FrontDepthBandM)

	iw.f32("faceSlabM", p.FaceSlabM)

	iw.f32("dimPercentileLow", p.DimPercentileLow)
	iw.f32("dimPercentileHigh", p.DimPercentileHigh)

	iw.num("colorMode", p.ColorMode)
	iw.boolean("plyBinary", p.PLYBinary)

	iw.f32("hardMaxZM", p.HardMaxZM)
	iw.f32("groundMinHeightM", p.GroundMinHeightM)

	iw.f32("objectFacePercentile", p.ObjectFacePercentile)
}

func loadControl(kv map[string]string, prefix string, c *ControlSettings) error {
	if err := readFloat64(kv, prefix+".exposureUs", &c.ExposureUs); err != nil {
		return err
	}
	return readFloat64(kv, prefix+".gainDb", &c.GainDb)
}

func writeControl(iw *iniWriter, c ControlSettings) {
	iw.f64("exposureUs", c.ExposureUs)
	iw.f64("gainDb", c.GainDb)
}
