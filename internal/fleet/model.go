package fleet

import "strconv"

// Fleet size bounds. The capture rig has mounting points for at most three
// stereo heads (left, right, top), and a single head is the minimum useful
// configuration.
const (
	MinFleetSize = 1
	MaxFleetSize = 3
)

// MountGeometry describes how a camera is physically mounted on the rig.
type MountGeometry struct {
	// HeightM is the camera height above the ground plane, in meters.
	HeightM float32
	// ArcOffsetM is the horizontal offset from the reference arc, in meters.
	ArcOffsetM float32
	// PitchDeg is the downward pitch angle, in degrees.
	PitchDeg float32
}

// ProcessingParams controls the point-cloud and depth processing applied by
// the capture pipeline. The fields mirror the pipeline stages in order:
// range clamp, ROI crop, decimation, speckle/median filtering, voxel
// downsampling, outlier rejection, clustering, ground-plane removal, front
// face clamping and the final dimension percentiles.
type ProcessingParams struct {
	MinRangeM float32
	MaxRangeM float32

	ROIMinXPct int
	ROIMaxXPct int
	ROIMinYPct int
	ROIMaxYPct int

	DecimationFactor int

	ApplySpeckleFilter bool
	MaxSpeckleSize     int
	SpeckleThreshold   int

	ApplyMedian3x3 bool

	VoxelLeafM float32

	OutlierRadiusM      float32
	OutlierMinNeighbors int

	KeepLargestCluster bool

	EnableGroundPlaneFilter bool
	GroundBandPct           float32
	GroundRANSACThrM        float32
	GroundRANSACIters       int
	GroundCutMarginM        float32

	EnableFrontDepthClamp bool
	FrontFacePercentile   float32
	FrontDepthBandM       float32

	FaceSlabM float32

	DimPercentileLow  float32
	DimPercentileHigh float32

	ColorMode int
	PLYBinary bool

	HardMaxZM        float32
	GroundMinHeightM float32

	// ObjectFacePercentile selects the depth percentile used for the
	// object-distance measurement downstream.
	ObjectFacePercentile float32
}

// ControlSettings holds the sensor control values applied to a camera before
// capture.
type ControlSettings struct {
	ExposureUs float64 // exposure time in microseconds
	GainDb     float64 // analog gain in dB
}

// DeviceRecord is the persisted identity and behavior of one camera slot.
// An empty Serial marks an unassigned slot.
type DeviceRecord struct {
	Enabled     bool
	Serial      string
	Name        string
	Orientation string
	Mount       MountGeometry
	Params      ProcessingParams
	Control     ControlSettings
}

// Assigned reports whether the record has a serial number bound to it.
func (d *DeviceRecord) Assigned() bool {
	return d.Serial != ""
}

// FleetConfig is the root configuration for the capture rig: global output
// settings, the fleet-wide defaults, and one DeviceRecord per slot. After
// Load, Reconcile or Save the Devices slice is always exactly MaxSize long;
// the index position is the device's stable slot.
type FleetConfig struct {
	OutputDir        string
	DirPNG           string
	DirPGM           string
	DirPLY           string
	CaptureTimeoutMs uint64

	MaxSize            int
	AutoAddDetected    bool
	AutoNameFromSerial bool
	NamePrefix         string

	DefaultMount   MountGeometry
	DefaultParams  ProcessingParams
	DefaultControl ControlSettings

	Devices []DeviceRecord
}

// New returns a FleetConfig populated with the factory defaults: a three-slot
// fleet, auto-add and auto-naming enabled, and processing parameters tuned
// for the standard rig geometry.
func New() *FleetConfig {
	return &FleetConfig{
		DirPNG:           "PNG",
		DirPGM:           "PGM",
		DirPLY:           "PLY",
		CaptureTimeoutMs: 5000,

		MaxSize:            MaxFleetSize,
		AutoAddDetected:    true,
		AutoNameFromSerial: true,
		NamePrefix:         "CAM",

		DefaultMount: MountGeometry{
			HeightM:    2.2,
			ArcOffsetM: 0,
			PitchDeg:   0,
		},
		DefaultParams: ProcessingParams{
			MinRangeM: 1.0,
			MaxRangeM: 6.0,

			ROIMinXPct: 35,
			ROIMaxXPct: 65,
			ROIMinYPct: 35,
			ROIMaxYPct: 65,

			DecimationFactor: 2,

			ApplySpeckleFilter: false,
			MaxSpeckleSize:     200,
			SpeckleThreshold:   4,

			ApplyMedian3x3: false,

			VoxelLeafM: 0.01,

			OutlierRadiusM:      0.05,
			OutlierMinNeighbors: 8,

			KeepLargestCluster: true,

			EnableGroundPlaneFilter: true,
			GroundBandPct:           20,
			GroundRANSACThrM:        0.02,
			GroundRANSACIters:       200,
			GroundCutMarginM:        0.02,

			EnableFrontDepthClamp: true,
			FrontFacePercentile:   5,
			FrontDepthBandM:       0.4,

			FaceSlabM: 0.1,

			DimPercentileLow:  2,
			DimPercentileHigh: 98,

			ColorMode: 0,
			PLYBinary: true,

			HardMaxZM:        8.0,
			GroundMinHeightM: 0.05,

			ObjectFacePercentile: 10,
		},
		DefaultControl: ControlSettings{
			ExposureUs: 15000,
			GainDb:     0,
		},
	}
}

// ClampSize forces MaxSize into the valid [MinFleetSize, MaxFleetSize] range.
func (c *FleetConfig) ClampSize() {
	if c.MaxSize < MinFleetSize {
		c.MaxSize = MinFleetSize
	}
	if c.MaxSize > MaxFleetSize {
		c.MaxSize = MaxFleetSize
	}
}

// AutoName derives a display name for a device. Assigned devices are named
// prefix+serial; unassigned slots get prefix+"UNASSIGNED"+slot number
// (1-based, so slot 0 reads as UNASSIGNED1).
func (c *FleetConfig) AutoName(serial string, slot1Based int) string {
	if serial != "" {
		return c.NamePrefix + serial
	}
	return c.NamePrefix + "UNASSIGNED" + strconv.Itoa(slot1Based)
}

// ApplyDefaults copies the fleet-wide default mount, params and control onto
// a record. Per-slot override keys are layered on top of this during Load, so
// overrides win field by field rather than record by record.
func (c *FleetConfig) ApplyDefaults(rec *DeviceRecord) {
	rec.Mount = c.DefaultMount
	rec.Params = c.DefaultParams
	rec.Control = c.DefaultControl
}

// newSlotRecord builds a fully defaulted, enabled record for the given slot.
func (c *FleetConfig) newSlotRecord(slot int) DeviceRecord {
	rec := DeviceRecord{
		Enabled:     true,
		Orientation: DefaultOrientation(slot),
		Name:        c.AutoName("", slot+1),
	}
	c.ApplyDefaults(&rec)
	return rec
}

// Clone returns a deep copy of the configuration. Devices is the only
// reference field.
func (c *FleetConfig) Clone() *FleetConfig {
	out := *c
	out.Devices = make([]DeviceRecord, len(c.Devices))
	copy(out.Devices, c.Devices)
	return &out
}
