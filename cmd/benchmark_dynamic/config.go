package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// graphConfig describes one dynamic-dependency benchmark.
type graphConfig struct {
	Name           string  `yaml:"name"`            // friendly name for the test, should be unique
	Width          int64   `yaml:"width"`           // width of dependency graph to construct
	TotalLayers    int64   `yaml:"layers"`          // depth of dependency graph to construct
	StaticFraction float64 `yaml:"static_fraction"` // fraction of nodes that always read the same sources
	NSources       int64   `yaml:"sources"`         // number of sources read by each node
	ReadFraction   float64 `yaml:"read_fraction"`   // fraction of [0, 1] elements in the last layer read each iteration
	Iterations     int64   `yaml:"iterations"`      // number of test iterations
}

type fileConfig struct {
	Repeats int           `yaml:"repeats,omitempty"`
	Graphs  []graphConfig `yaml:"graphs"`
}

var defaultGraphs = []graphConfig{
	{
		Name:           "simple component",
		Width:          10,
		StaticFraction: 1,
		NSources:       2,
		TotalLayers:    5,
		ReadFraction:   0.2,
		Iterations:     600000,
	},
	{
		Name:           "dynamic component",
		Width:          10,
		TotalLayers:    10,
		StaticFraction: 0.75,
		NSources:       6,
		ReadFraction:   0.2,
		Iterations:     15000,
	},
	{
		Name:           "large web app",
		Width:          1000,
		TotalLayers:    12,
		StaticFraction: 0.95,
		NSources:       4,
		ReadFraction:   1,
		Iterations:     7000,
	},
	{
		Name:           "wide dense",
		Width:          1000,
		TotalLayers:    5,
		StaticFraction: 1,
		NSources:       25,
		ReadFraction:   1,
		Iterations:     3000,
	},
	{
		Name:           "deep",
		Width:          5,
		TotalLayers:    500,
		StaticFraction: 1,
		NSources:       3,
		ReadFraction:   1,
		Iterations:     500,
	},
	{
		Name:           "very dynamic",
		Width:          100,
		TotalLayers:    15,
		StaticFraction: 0.5,
		NSources:       6,
		ReadFraction:   1,
		Iterations:     2000,
	},
}

// loadOptional reads the graph configurations from path if it exists,
// falling back to the built-in set.
func loadOptional(path string) (*fileConfig, error) {
	cfg := &fileConfig{Repeats: 5, Graphs: defaultGraphs}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if file.Repeats > 0 {
		cfg.Repeats = file.Repeats
	}
	if len(file.Graphs) > 0 {
		cfg.Graphs = file.Graphs
	}
	for _, g := range cfg.Graphs {
		if g.Width < 1 || g.TotalLayers < 2 || g.NSources < 1 {
			return nil, fmt.Errorf("graph %q: width, layers and sources must be at least 1, 2 and 1", g.Name)
		}
	}
	return cfg, nil
}
