package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/hecmproj/internal/domain"
)

// Formatter renders a projection result
type Formatter interface {
	Name() string
	Format(result *domain.ProjectionResult) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(result *domain.ProjectionResult) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(result *domain.ProjectionResult) ([]byte, error) {
	return f.F(result)
}

var formatters = map[string]Formatter{}

var formatAliases = map[string]string{
	"verbose":         "console",
	"console-verbose": "console",
	"table":           "console",
	"summary":         "console-lite",
	"csv-rows":        "csv",
	"htm":             "html",
}

func register(f Formatter) {
	formatters[f.Name()] = f
}

func init() {
	register(ConsoleFormatter{})
	register(ConsoleVerboseFormatter{})
	register(CSVFormatter{})
	register(JSONFormatter{})
	register(HTMLFormatter{})
}

// NormalizeFormatName lowercases a format name and resolves aliases
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if target, ok := formatAliases[n]; ok {
		return target
	}
	return n
}

// GetFormatterByName returns the formatter for a name or alias, or nil
func GetFormatterByName(name string) Formatter {
	return formatters[NormalizeFormatName(name)]
}

// AvailableFormatterNames lists registered formatter names in sorted order
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists accepted aliases in sorted order
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for alias := range formatAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// WriteFormatted renders result and writes it to a timestamped file in the
// working directory, returning the file name.
func WriteFormatted(f Formatter, result *domain.ProjectionResult, ext string) (string, error) {
	data, err := f.Format(result)
	if err != nil {
		return "", fmt.Errorf("format %s: %w", f.Name(), err)
	}
	filename := fmt.Sprintf("hecm_projection_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}
