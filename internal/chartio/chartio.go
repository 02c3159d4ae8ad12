// Package chartio serializes charts to and from their on-disk JSON form. It
// backs working-unit export as well as library import in the CLI.
package chartio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"chartkit/internal/chart"
	"chartkit/internal/fileutil"
)

// Encode writes the chart to w as indented UTF-8 JSON.
func Encode(w io.Writer, c *chart.Chart) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode chart: %w", err)
	}
	return nil
}

// Decode reads one chart from r. Missing difficulty or timeline sections are
// backfilled with defaults so a decoded chart is always usable.
func Decode(r io.Reader) (*chart.Chart, error) {
	var c chart.Chart
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("decode chart: %w", err)
	}
	if c.Info == nil {
		c.Info = &chart.Descriptor{}
	}
	if c.Difficulty == nil {
		c.Difficulty = chart.DefaultDifficulty()
	}
	if c.Timeline == nil {
		c.Timeline = &chart.Timeline{}
	}
	return &c, nil
}

// Marshal returns the chart's JSON form as bytes.
func Marshal(c *chart.Chart) ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal chart: %w", err)
	}
	return data, nil
}

// Unmarshal parses a chart from its JSON form.
func Unmarshal(data []byte) (*chart.Chart, error) {
	var c chart.Chart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshal chart: %w", err)
	}
	if c.Info == nil {
		c.Info = &chart.Descriptor{}
	}
	if c.Difficulty == nil {
		c.Difficulty = chart.DefaultDifficulty()
	}
	if c.Timeline == nil {
		c.Timeline = &chart.Timeline{}
	}
	return &c, nil
}

// WriteFile serializes the chart to path. The write is atomic so a crash
// mid-export never leaves a truncated chart behind.
func WriteFile(path string, c *chart.Chart) error {
	data, err := Marshal(c)
	if err != nil {
		return err
	}
	return fileutil.WriteAtomic(path, data, 0o644)
}

// ReadFile loads a chart from path.
func ReadFile(path string) (*chart.Chart, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	return Decode(file)
}
