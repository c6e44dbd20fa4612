// Package config loads the optional vseek JSON configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"vseek/internal/jsonutil"
)

// DefaultPath is read when no --config flag is given.
const DefaultPath = "vseek.json"

// File mirrors the classify flags. Numeric keys are pointers so an absent key
// leaves the flag default in place.
type File struct {
	Reads               string   `json:"reads"`
	Catalog             string   `json:"catalog"`
	Accessions          string   `json:"accessions"`
	Out                 string   `json:"out"`
	Assignments         string   `json:"assignments"`
	SimilarityThreshold *float64 `json:"similarity_threshold"`
	CheckpointInterval  *int     `json:"checkpoint_interval"`
	LogInterval         *int     `json:"log_interval"`
	CheckpointRetries   *int     `json:"checkpoint_retries"`
	Threads             *int     `json:"threads"`
	LogLevel            string   `json:"log_level"`
	LogFile             string   `json:"log_file"`

	// Path is where the file was read from; empty if none was found.
	Path string `json:"-"`
}

// Load reads path, or DefaultPath when path is empty. A missing default file
// yields an empty File; a missing explicit path is an error.
func Load(path string) (*File, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	f, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	var c File
	if err := jsonutil.DecodeStrict(f, &c); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	c.Path = path
	return &c, nil
}
