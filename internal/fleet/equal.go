package fleet

import "math"

// floatTolerance is shared by both comparison modes below.
const floatTolerance = 1e-6

// nearlyEqual compares two float32 values with a relative tolerance:
// equal when |a-b| <= tol * max(1, |a|, |b|).
func nearlyEqual(a, b float32) bool {
	da := math.Abs(float64(a) - float64(b))
	m := math.Max(1, math.Max(math.Abs(float64(a)), math.Abs(float64(b))))
	return da <= floatTolerance*m
}

// ControlEqual reports whether two control settings are equal within an
// absolute tolerance of 1e-6. Note the asymmetry with ParamsEqual, which
// uses a relative tolerance; both are kept as-is because unifying them
// would change which devices get an override section written at save time.
func ControlEqual(a, b ControlSettings) bool {
	return math.Abs(a.ExposureUs-b.ExposureUs) <= floatTolerance &&
		math.Abs(a.GainDb-b.GainDb) <= floatTolerance
}

// ParamsEqual reports whether two processing parameter sets are equal,
// comparing float fields with a relative tolerance and everything else
// exactly. Save uses this to decide whether a device needs its own
// Device.N.Params section or can inherit Defaults.Params.
func ParamsEqual(a, b ProcessingParams) bool {
	return nearlyEqual(a.MinRangeM, b.MinRangeM) &&
		nearlyEqual(a.MaxRangeM, b.MaxRangeM) &&
		a.ROIMinXPct == b.ROIMinXPct &&
		a.ROIMaxXPct == b.ROIMaxXPct &&
		a.ROIMinYPct == b.ROIMinYPct &&
		a.ROIMaxYPct == b.ROIMaxYPct &&
		a.DecimationFactor == b.DecimationFactor &&
		a.ApplySpeckleFilter == b.ApplySpeckleFilter &&
		a.MaxSpeckleSize == b.MaxSpeckleSize &&
		a.SpeckleThreshold == b.SpeckleThreshold &&
		a.ApplyMedian3x3 == b.ApplyMedian3x3 &&
		nearlyEqual(a.VoxelLeafM, b.VoxelLeafM) &&
		nearlyEqual(a.OutlierRadiusM, b.OutlierRadiusM) &&
		a.OutlierMinNeighbors == b.OutlierMinNeighbors &&
		a.KeepLargestCluster == b.KeepLargestCluster &&
		a.EnableGroundPlaneFilter == b.EnableGroundPlaneFilter &&
		nearlyEqual(a.GroundBandPct, b.GroundBandPct) &&
		nearlyEqual(a.GroundRANSACThrM, b.GroundRANSACThrM) &&
		a.GroundRANSACIters == b.GroundRANSACIters &&
		nearlyEqual(a.GroundCutMarginM, b.GroundCutMarginM) &&
		a.EnableFrontDepthClamp == b.EnableFrontDepthClamp &&
		nearlyEqual(a.FrontFacePercentile, b.FrontFacePercentile) &&
		nearlyEqual(a.FrontDepthBandM, b.FrontDepthBandM) &&
		nearlyEqual(a.FaceSlabM, b.FaceSlabM) &&
		nearlyEqual(a.DimPercentileLow, b.DimPercentileLow) &&
		nearlyEqual(a.DimPercentileHigh, b.DimPercentileHigh) &&
		a.ColorMode == b.ColorMode &&
		a.PLYBinary == b.PLYBinary &&
		nearlyEqual(a.HardMaxZM, b.HardMaxZM) &&
		nearlyEqual(a.GroundMinHeightM, b.GroundMinHeightM) &&
		nearlyEqual(a.ObjectFacePercentile, b.ObjectFacePercentile)
}
