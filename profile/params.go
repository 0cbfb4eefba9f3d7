package profile

// GSParams collects the numerical tolerances that control how accurately
// profiles are rendered and shot. Profiles built with the same *GSParams
// pointer and the same shape parameter share cached derived quantities,
// so the pointer itself is part of the cache key: two structurally equal
// GSParams values are still distinct keys.
type GSParams struct {
	// FoldingThreshold is the fraction of flux allowed to alias past
	// the image boundary; it sets StepK.
	FoldingThreshold float64
	// MaxkThreshold is the largest ignorable Fourier amplitude; it sets
	// MaxK.
	MaxkThreshold float64
	// ShootAccuracy is the fraction of flux photon shooting may
	// misplace through truncation or smoothing of the sampled profile.
	ShootAccuracy float64
	// StepKMinimumHLR forces the folding radius out to at least this
	// many half-light radii.
	StepKMinimumHLR float64
	// XTol is the absolute tolerance for flux-radius solves. Spergel
	// profiles can be extremely peaked, so the default is very tight.
	XTol float64
	// MaxSpergelCache bounds how many Spergel indices keep their
	// derived quantities cached.
	MaxSpergelCache int
}

// DefaultGSParams is the shared default tolerance set. Profiles
// constructed with a nil *GSParams use it, and therefore share cache
// entries with each other.
var DefaultGSParams = &GSParams{
	FoldingThreshold: 5e-3,
	MaxkThreshold:    1e-3,
	ShootAccuracy:    1e-5,
	StepKMinimumHLR:  5,
	XTol:             1e-25,
	MaxSpergelCache:  100,
}
