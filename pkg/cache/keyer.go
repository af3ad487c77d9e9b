package cache

// Keyer derives cache keys.
type Keyer interface {
	// TerrainKey returns the key of a full generation result.
	TerrainKey(inputHash string, opts TerrainKeyOpts) string
	// BaseKey returns the key of a synthesized base field.
	BaseKey(width, height int, seed int64) string
}

// TerrainKeyOpts are the generation settings that change a result.
type TerrainKeyOpts struct {
	Seed       uint64 `json:"seed"`
	ParamsHash string `json:"params_hash"`
	Schema     int    `json:"schema"`
}

// DefaultKeyer hashes every key component with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// TerrainKey implements Keyer.
func (DefaultKeyer) TerrainKey(inputHash string, opts TerrainKeyOpts) string {
	return hashKey("terrain", inputHash, opts)
}

// BaseKey implements Keyer.
func (DefaultKeyer) BaseKey(width, height int, seed int64) string {
	return hashKey("base", width, height, seed)
}

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
//
// Example usage:
//
//	// Keys written by the HTTP API live apart from CLI keys
//	apiKeyer := NewScopedKeyer(NewDefaultKeyer(), "api:")
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
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// TerrainKey implements Keyer.
func (k *ScopedKeyer) TerrainKey(inputHash string, opts TerrainKeyOpts) string {
	return k.prefix + k.inner.TerrainKey(inputHash, opts)
}

// BaseKey implements Keyer.
func (k *ScopedKeyer) BaseKey(width, height int, seed int64) string {
	return k.prefix + k.inner.BaseKey(width, height, seed)
}
