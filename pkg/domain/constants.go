package domain

// View names shared by frames, metrics labels and exports.
const (
	ViewTime      = "time"
	ViewMagnitude = "magnitude"
	ViewPhase     = "phase"
	ViewSurface   = "surface"
)
