// internal/classify/config.go
package classify

import "fmt"

// Config controls classification.
type Config struct {
	Threshold          float64 // minimum gene score counted toward an accession, (0,1]
	CheckpointInterval int     // reads between checkpoint writes (>=1)
	LogInterval        int     // reads between progress lines (>=1)
	Threads            int     // worker goroutines (>=1); 1 runs serially
}

// Defaults.
const (
	DefaultThreshold          = 0.40
	DefaultCheckpointInterval = 5
	DefaultLogInterval        = 100
)

// DefaultConfig returns the reference settings.
func DefaultConfig() Config {
	return Config{
		Threshold:          DefaultThreshold,
		CheckpointInterval: DefaultCheckpointInterval,
		LogInterval:        DefaultLogInterval,
		Threads:            1,
	}
}

// Validate checks ranges.
func (c Config) Validate() error {
	if !(c.Threshold > 0 && c.Threshold <= 1) {
		return fmt.Errorf("similarity threshold %v must be in (0, 1]", c.Threshold)
	}
	if c.CheckpointInterval < 1 {
		return fmt.Errorf("checkpoint interval %d must be ≥ 1", c.CheckpointInterval)
	}
	if c.LogInterval < 1 {
		return fmt.Errorf("log interval %d must be ≥ 1", c.LogInterval)
	}
	if c.Threads < 1 {
		return fmt.Errorf("threads %d must be ≥ 1", c.Threads)
	}
	return nil
}
