// Package airquality looks up live particulate readings near the user and
// turns them into an AQI report.
//
// Two capabilities are involved: a Locator, which determines where the user
// is, and a Provider, which returns the nearest monitoring station for a
// point. OpenAQClient is the production Provider.
package airquality

import (
	"context"
	"fmt"
	"math"
)

// Coordinates is a WGS84 point in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks that c is a finite point on the globe.
func (c Coordinates) Validate() error {
	switch {
	case math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude):
		return fmt.Errorf("%w: not a number", ErrInvalidCoordinates)
	case c.Latitude < -90 || c.Latitude > 90:
		return fmt.Errorf("%w: latitude %v out of range", ErrInvalidCoordinates, c.Latitude)
	case c.Longitude < -180 || c.Longitude > 180:
		return fmt.Errorf("%w: longitude %v out of range", ErrInvalidCoordinates, c.Longitude)
	}
	return nil
}

// String formats c the way the provider query expects it: "lat,lon" with
// four decimals.
func (c Coordinates) String() string {
	return fmt.Sprintf("%.4f,%.4f", c.Latitude, c.Longitude)
}

// Locator determines the user's current position.
type Locator interface {
	// Locate returns the current coordinates, or ErrPermissionDenied /
	// ErrLocationUnavailable.
	Locate(ctx context.Context) (Coordinates, error)
}

// StaticLocator reports a fixed position, typically taken from flags or
// configuration. A nil Coordinates means no position is known.
type StaticLocator struct {
	Coordinates *Coordinates

	// Denied simulates a user who refused location access.
	Denied bool
}

// Locate implements Locator.
func (l StaticLocator) Locate(ctx context.Context) (Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return Coordinates{}, err
	}
	if l.Denied {
		return Coordinates{}, ErrPermissionDenied
	}
	if l.Coordinates == nil {
		return Coordinates{}, ErrLocationUnavailable
	}
	if err := l.Coordinates.Validate(); err != nil {
		return Coordinates{}, fmt.Errorf("%w: %w", ErrLocationUnavailable, err)
	}
	return *l.Coordinates, nil
}

// LocatorFunc adapts a function to the Locator interface.
type LocatorFunc func(ctx context.Context) (Coordinates, error)

// Locate implements Locator.
func (f LocatorFunc) Locate(ctx context.Context) (Coordinates, error) {
	return f(ctx)
}
