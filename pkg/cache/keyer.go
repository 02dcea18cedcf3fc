package cache

import "fmt"

// Keyer builds cache keys for the values the pipeline stores.
type Keyer interface {
	// GeometryKey keys the geometry of one connector request. The request
	// is hashed as JSON, so it must be a plain serializable value.
	GeometryKey(request any) string
	// PlugKey keys a placed-at-origin plug shape.
	PlugKey(kind string, size float64) string
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default Keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// GeometryKey returns "geometry:<sha256 of request>".
func (DefaultKeyer) GeometryKey(request any) string {
	return hashKey("geometry", request)
}

// PlugKey returns "plug:<kind>:<size>".
func (DefaultKeyer) PlugKey(kind string, size float64) string {
	return fmt.Sprintf("plug:%s:%g", kind, size)
}
