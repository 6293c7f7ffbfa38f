package dataset

import (
	"embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed samples/catalog.yaml samples/*.csv
var sampleFS embed.FS

// Sample describes one built-in dataset.
type Sample struct {
	Name        string `yaml:"name" json:"name"`
	File        string `yaml:"file" json:"file"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Category    string `yaml:"category" json:"category"`
}

type catalog struct {
	Samples []Sample `yaml:"samples"`
}

// Samples returns the built-in catalog sorted by category then name.
func Samples() ([]Sample, error) {
	b, err := sampleFS.ReadFile("samples/catalog.yaml")
	if err != nil {
		return nil, fmt.Errorf("read sample catalog: %w", err)
	}
	var c catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse sample catalog: %w", err)
	}
	sort.SliceStable(c.Samples, func(i, j int) bool {
		if c.Samples[i].Category == c.Samples[j].Category {
			return c.Samples[i].Name < c.Samples[j].Name
		}
		return c.Samples[i].Category < c.Samples[j].Category
	})
	return c.Samples, nil
}

// LoadSample parses the named sample.
func LoadSample(name string, opt Options) (*Dataset, error) {
	all, err := Samples()
	if err != nil {
		return nil, err
	}
	for _, s := range all {
		if s.Name != name {
			continue
		}
		b, err := sampleFS.ReadFile("samples/" + s.File)
		if err != nil {
			return nil, ingestErr("sample:"+name, "read sample", err)
		}
		ds, err := Parse(s.File, "sample:"+name, b, opt)
		if err != nil {
			return nil, err
		}
		ds.Name = s.Title
		ds.Description = s.Description
		ds.Category = s.Category
		return ds, nil
	}
	return nil, ingestErr("sample:"+name, "", ErrUnknownSample)
}
