package airquality

type constError string

func (e constError) Error() string { return string(e) }

const (
	// ErrPermissionDenied is returned when the user declined to share a location.
	ErrPermissionDenied = constError("location permission denied")

	// ErrLocationUnavailable is returned when no location could be determined.
	ErrLocationUnavailable = constError("location unavailable")

	// ErrNetwork is returned for transport failures and non-success responses.
	ErrNetwork = constError("failed to fetch air quality")

	// ErrNoDataFound is returned when no monitoring station is near the query point.
	ErrNoDataFound = constError("no nearby monitoring data")

	// ErrInvalidCoordinates is returned for out-of-range latitude or longitude.
	ErrInvalidCoordinates = constError("invalid coordinates")
)
