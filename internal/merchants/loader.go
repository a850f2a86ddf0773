package merchants

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"finflow/internal/logging"
)

// patternsFile is the YAML shape of an override table:
//
//	patterns:
//	  - keywords: ["STARBUCKS"]
//	    category: "Food & Dining"
//	    subcategory: "Fast Food"
//	    confidence: 0.95
type patternsFile struct {
	Patterns []Pattern `yaml:"patterns"`
}

// FindPatternsFile looks for a merchant patterns file in standard locations:
// the path as given, ./config/, and ~/.finflow/.
func FindPatternsFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".finflow", filename))
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// Load returns a matcher from the given YAML patterns file. A missing or
// empty filename falls back to the built-in table.
func Load(filename string, log logging.Logger) (*Matcher, error) {
	if log == nil {
		log = logging.GetLogger()
	}
	if filename == "" {
		return Default(), nil
	}

	path, err := FindPatternsFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField(logging.FieldFile, filename).
				Warn("Merchant patterns file not found, using built-in table")
			return Default(), nil
		}
		return nil, fmt.Errorf("resolving merchant patterns file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading merchant patterns file: %w", err)
	}

	var file patternsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing merchant patterns file: %w", err)
	}
	if len(file.Patterns) == 0 {
		log.WithField(logging.FieldFile, path).
			Warn("Merchant patterns file has no entries, using built-in table")
		return Default(), nil
	}

	log.WithFields(
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(file.Patterns)},
	).Debug("Loaded merchant patterns")
	return NewMatcher(file.Patterns), nil
}
