package config

// Config is the root configuration structure
type Config struct {
	Engine  EngineConfig  `yaml:"engine" json:"engine"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
	Backend BackendConfig `yaml:"backend" json:"backend"`
}

// EngineConfig tunes the coordination engine
type EngineConfig struct {
	TickIntervalMs      int    `yaml:"tickIntervalMs" json:"tickIntervalMs"`
	Tolerance           int    `yaml:"tolerance" json:"tolerance"` // shared-edge distance in px
	DefaultEasing       string `yaml:"defaultEasing" json:"defaultEasing"`
	UserBoundsTimeoutMs int    `yaml:"userBoundsTimeoutMs" json:"userBoundsTimeoutMs"` // 0 disables
	MinWidth            int    `yaml:"minWidth" json:"minWidth"`
	MinHeight           int    `yaml:"minHeight" json:"minHeight"`
	MaxWidth            int    `yaml:"maxWidth" json:"maxWidth"`
	MaxHeight           int    `yaml:"maxHeight" json:"maxHeight"`
}

// LoggingConfig selects where and how much to log
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file,omitempty" json:"file,omitempty"`
}

// BackendConfig picks the native host
type BackendConfig struct {
	Kind string `yaml:"kind" json:"kind"` // "memory" or "x11"
}

// Backend kinds
const (
	BackendMemory = "memory"
	BackendX11    = "x11"
)
