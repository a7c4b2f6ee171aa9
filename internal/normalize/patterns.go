package normalize

import (
	"fmt"
	"os"
	"regexp"
	"sort"

	yaml "gopkg.in/yaml.v3"
)

// ShapePattern recognizes one recurring message template and rewrites
// it to a canonical form with typed placeholders. Patterns are tried
// in ascending priority order and the first match wins, so a pattern
// whose text is a superstring of another must carry the lower
// priority value.
type ShapePattern struct {
	Name     string
	Priority int
	Matcher  *regexp.Regexp
	Rewrite  string
}

// shapePatternSpec is the YAML form of a custom shape pattern.
type shapePatternSpec struct {
	Name     string `yaml:"name"`
	Priority int    `yaml:"priority"`
	Match    string `yaml:"match"`
	Rewrite  string `yaml:"rewrite"`
}

func mustShape(name string, priority int, match, rewrite string) ShapePattern {
	return ShapePattern{
		Name:     name,
		Priority: priority,
		Matcher:  regexp.MustCompile(match),
		Rewrite:  rewrite,
	}
}

// defaultShapePatterns is the built-in pattern library. Priorities
// are spaced by 10 so a new pattern slots in between existing ones
// without renumbering.
var defaultShapePatterns = []ShapePattern{
	mustShape("transfer-failed-reason", 10,
		`^transferring file from '(.+?)' to '(.+?)' failed: (.+)$`,
		"transferring file from '<SOURCE>' to '<DEST>' failed: <ERROR>"),
	mustShape("transfer-failed", 20,
		`^transferring file from '(.+?)' to '(.+?)' failed$`,
		"transferring file from '<SOURCE>' to '<DEST>' failed"),
	mustShape("loading-open-failed", 30,
		`^loading '(?:<\?>)?(.+?)' failed: opening file '(.+?)' failed$`,
		"loading '<FILE>' failed: opening file '<FILE>' failed"),
	mustShape("loading-module-failed", 40,
		`^loading module '(.+?)' failed: (.+)$`,
		"loading module failed: <ERROR>"),
	mustShape("enumerate-failed", 50,
		`^error while enumerating (.+?) : (.+)$`,
		"error while enumerating <PATH> : <ERROR>"),
	mustShape("decoding-failed", 60,
		`^decoding '(.+?)' failed(?:: (.+))?$`,
		"decoding '<FILE>' failed: <ERROR>"),
	mustShape("create-directories", 70,
		`^create_directories: (.+): "(.+)"$`,
		"create_directories: <ERROR>"),
	mustShape("directory-iterator", 80,
		`^directory_iterator::directory_iterator: (.+): "(.+)"$`,
		"directory_iterator: <ERROR>"),
	mustShape("authenticating-failed", 90,
		`^authenticating on '(.+?)' failed: (.+)$`,
		"authenticating on '<PATH>' failed: <ERROR>"),
	mustShape("render-task-failed", 100,
		`^updating render task failed: (.+)$`,
		"updating render task failed: <ERROR>"),
	mustShape("encode-frame-failed", 110,
		`^encoding frame failed: (.+)$`,
		"encoding frame failed: <ERROR>"),
	mustShape("assertion-failed", 120,
		`^assertion '(.+?)' failed in (\S+)$`,
		"assertion failed in <LOCATION>"),
	// The parameter block may contain nested parentheses and
	// non-numeric tokens like -nan(ind), so everything after the
	// opening parenthesis is dropped.
	mustShape("projection-matrix", 130,
		`^invalid projection matrix \(LRTB:.*$`,
		"invalid projection matrix"),
	mustShape("texture-disappeared", 140,
		`^automatically reloaded texture '(.+?)' disappeared$`,
		"automatically reloaded texture disappeared"),
	mustShape("display-sync-timeout", 150,
		`^display sync timed out \(.*\)$`,
		"display sync timed out"),
}

// LoadShapePatterns reads additional shape patterns from a YAML file.
// The file holds a list of {name, priority, match, rewrite} records;
// priorities decide where each pattern slots into the built-in order.
func LoadShapePatterns(path string) ([]ShapePattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pattern file: %w", err)
	}

	var specs []shapePatternSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("failed to parse pattern file %s: %w", path, err)
	}

	patterns := make([]ShapePattern, 0, len(specs))
	for _, spec := range specs {
		if spec.Name == "" || spec.Match == "" {
			return nil, fmt.Errorf("pattern in %s needs both name and match", path)
		}
		re, err := regexp.Compile(spec.Match)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", spec.Name, err)
		}
		patterns = append(patterns, ShapePattern{
			Name:     spec.Name,
			Priority: spec.Priority,
			Matcher:  re,
			Rewrite:  spec.Rewrite,
		})
	}
	return patterns, nil
}

// mergePatterns combines the built-in library with extra patterns and
// returns them sorted by priority. Equal priorities keep the built-in
// pattern first.
func mergePatterns(extra []ShapePattern) []ShapePattern {
	merged := make([]ShapePattern, 0, len(defaultShapePatterns)+len(extra))
	merged = append(merged, defaultShapePatterns...)
	merged = append(merged, extra...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Priority < merged[j].Priority
	})
	return merged
}
