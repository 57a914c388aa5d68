// Package worldcfg loads world definition files: YAML decoded, validated
// against an embedded JSON schema, then built into the domain graph.
// A malformed world file is the only fatal error class in the system.
package worldcfg

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaSource string

type Config struct {
	Settings   Settings        `yaml:"settings"`
	Locations  []LocationSpec  `yaml:"locations"`
	Objects    []ObjectSpec    `yaml:"objects"`
	Characters []CharacterSpec `yaml:"characters"`
}

type Settings struct {
	MaxTurns int `yaml:"max_turns"`
}

type LocationSpec struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Connections map[string]string `yaml:"connections,omitempty"`
}

type ObjectSpec struct {
	Name        string         `yaml:"name"`
	Kind        string         `yaml:"kind"`
	Description string         `yaml:"description"`
	Location    string         `yaml:"location,omitempty"`
	Container   string         `yaml:"container,omitempty"`
	Lockable    bool           `yaml:"lockable,omitempty"`
	Open        bool           `yaml:"open,omitempty"`
	Locked      bool           `yaml:"locked,omitempty"`
	Properties  map[string]any `yaml:"properties,omitempty"`
	Blocks      []BlockSpec    `yaml:"blocks,omitempty"`
}

type BlockSpec struct {
	Location  string `yaml:"location"`
	Direction string `yaml:"direction"`
}

type CharacterSpec struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Location    string        `yaml:"location"`
	Inventory   []ObjectSpec  `yaml:"inventory,omitempty"`
	Strategy    *StrategySpec `yaml:"strategy,omitempty"`
}

type StrategySpec struct {
	Kind     string   `yaml:"kind"`
	Commands []string `yaml:"commands,omitempty"`
	Loop     bool     `yaml:"loop,omitempty"`
}

// Load reads, validates and decodes a world definition file.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read world file: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (Config, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Config{}, fmt.Errorf("decode world file: %w", err)
	}
	if err := validate(doc); err != nil {
		return Config{}, fmt.Errorf("invalid world file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode world file: %w", err)
	}
	return cfg, nil
}

func validate(doc any) error {
	schema, err := jsonschema.CompileString("world.schema.json", schemaSource)
	if err != nil {
		return fmt.Errorf("compile world schema: %w", err)
	}
	return schema.Validate(doc)
}
