package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/rgehrsitz/hecmproj/internal/domain"
)

//go:embed example.yaml
var exampleConfiguration []byte

// ExampleYAML returns a commented example input file
func ExampleYAML() []byte {
	out := make([]byte, len(exampleConfiguration))
	copy(out, exampleConfiguration)
	return out
}

// CreateExampleConfiguration returns the parsed example input
func CreateExampleConfiguration() (*domain.Configuration, error) {
	return NewInputParser().LoadFromBytes(exampleConfiguration)
}

// WriteExample writes the example input to path, refusing to overwrite unless force is set
func WriteExample(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := os.WriteFile(path, exampleConfiguration, 0644); err != nil {
		return fmt.Errorf("failed to write example configuration: %w", err)
	}
	return nil
}
