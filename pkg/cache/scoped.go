package cache

// ScopedKeyer wraps a Keyer with a prefix so that several applications or
// tenants can share one Redis instance.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "tenant:abc123:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// GeometryKey generates a prefixed geometry key.
func (k *ScopedKeyer) GeometryKey(request any) string {
	return k.prefix + k.inner.GeometryKey(request)
}

// PlugKey generates a prefixed plug key.
func (k *ScopedKeyer) PlugKey(kind string, size float64) string {
	return k.prefix + k.inner.PlugKey(kind, size)
}
