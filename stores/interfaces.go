package stores

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Trace modes and statuses.
const (
	ModeChat = "chat"
	ModeTool = "tool"

	StatusOK       = "ok"
	StatusNoAction = "no_action"
	StatusError    = "error"
)

// InteractionTrace records the outcome of one gateway call. It is an audit
// trail only; nothing read back from it feeds into later requests.
type InteractionTrace struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
	RequestID  string         `gorm:"index" json:"request_id,omitempty"`
	Mode       string         `gorm:"not null" json:"mode"`
	ToolName   string         `json:"tool_name,omitempty"`
	ArgsJSON   string         `gorm:"type:text" json:"-"`
	Args       map[string]any `gorm:"-" json:"args,omitempty"` // Not stored, computed from ArgsJSON
	Status     string         `gorm:"not null" json:"status"`
	Error      string         `gorm:"type:text" json:"error,omitempty"`
	DurationMS int64          `json:"duration_ms"`
}

// BeforeSave marshals Args to ArgsJSON
func (t *InteractionTrace) BeforeSave(tx *gorm.DB) error {
	if t.Args != nil {
		data, err := json.Marshal(t.Args)
		if err != nil {
			return err
		}
		t.ArgsJSON = string(data)
	}
	return nil
}

// AfterFind unmarshals ArgsJSON to Args
func (t *InteractionTrace) AfterFind(tx *gorm.DB) error {
	if t.ArgsJSON != "" {
		return json.Unmarshal([]byte(t.ArgsJSON), &t.Args)
	}
	return nil
}

// TraceStore persists interaction traces.
type TraceStore interface {
	SaveTrace(ctx context.Context, trace *InteractionTrace) error
	// DeleteOlderThan removes traces created before cutoff and reports how many.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	Close() error
}

// Pinger is implemented by stores backed by a live database connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StoreConfig holds configuration for database stores
type StoreConfig struct {
	Type       string `json:"type"`       // "sqlite", "postgres", or "" for none
	Connection string `json:"connection"` // file path or DSN
}

// NewStoreConfig creates a new store configuration
func NewStoreConfig(storeType, connection string) *StoreConfig {
	return &StoreConfig{
		Type:       storeType,
		Connection: connection,
	}
}
