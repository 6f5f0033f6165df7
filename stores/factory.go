package stores

import (
	"fmt"
)

// NewStore creates a trace store based on the configuration. An empty type
// disables tracing.
func NewStore(config *StoreConfig) (TraceStore, error) {
	if config == nil {
		return NopTraceStore{}, nil
	}
	switch config.Type {
	case "", "none":
		return NopTraceStore{}, nil
	case "sqlite":
		return NewSQLiteTraceStore(config.Connection)
	case "postgres":
		return NewPostgresTraceStore(config.Connection)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", config.Type)
	}
}
