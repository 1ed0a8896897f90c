package assemble

import (
	"github.com/tsawler/layoutkit/layout"
	"github.com/tsawler/layoutkit/model"
	"github.com/tsawler/layoutkit/tables"
)

// Config holds configuration for building the final component list.
type Config struct {
	// Tables configures the table normalizers. DisableCasting also applies
	// to rows rebuilt here.
	Tables tables.Config

	// Layout configures paragraph assembly of fragments outside tables.
	Layout layout.Config

	// DataMode selects how table rows are reshaped.
	// Default: array
	DataMode model.DataMode

	// DataModeKey names the key column for map_key. map_key without a key
	// leaves rows as an array.
	DataModeKey string

	// DataModeValue optionally names the value column for map_key.
	DataModeValue string
}

// DefaultConfig returns the default builder configuration.
func DefaultConfig() Config {
	return Config{
		Tables:   tables.DefaultConfig(),
		Layout:   layout.DefaultConfig(),
		DataMode: model.DataModeArray,
	}
}
