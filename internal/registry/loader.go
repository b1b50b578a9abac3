package registry

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"bennypowers.dev/cssom/internal/log"
	"bennypowers.dev/cssom/internal/parser/css"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// File is the document shape of a registry file:
//
//	properties:
//	  - name: --gap
//	    syntax: <length>
//	    inherits: false
//	    initial-value: 0px
type File struct {
	Properties []Definition `yaml:"properties" json:"properties"`
}

// skippedDirs are never searched for registry files
var skippedDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
}

// LoadFiles registers the definitions of every file under root whose
// slash-separated path relative to root matches one of the glob patterns.
// Loading continues past bad files and definitions; all failures are
// returned together.
func (r *Registry) LoadFiles(root string, patterns []string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && skippedDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		for _, pattern := range patterns {
			matched, err := matchGlobPattern(pattern, rel)
			if err != nil {
				return fmt.Errorf("invalid pattern %q: %w", pattern, err)
			}
			if matched {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk directory: %w", err)
	}

	log.Info("Found %d registry files in %s", len(files), root)

	var result *multierror.Error
	for _, path := range files {
		if err := r.LoadFile(path); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// matchGlobPattern matches a glob pattern against a path using doublestar
func matchGlobPattern(pattern, path string) (bool, error) {
	// doublestar.Match expects forward slashes
	return doublestar.Match(pattern, filepath.ToSlash(path))
}

// LoadFile registers every definition in one YAML or JSON(C) registry file
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	file, err := decodeFile(path, data)
	if err != nil {
		return err
	}

	var result *multierror.Error
	loaded := 0
	for i, def := range file.Properties {
		def.Source = fmt.Sprintf("%s#%d", path, i)
		if _, err := r.Register(def); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", path, err))
			continue
		}
		loaded++
	}

	log.Info("Loaded %d property registrations from %s", loaded, path)
	return result.ErrorOrNil()
}

func decodeFile(path string, data []byte) (*File, error) {
	var file File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse YAML %s: %w", path, err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &file); err != nil {
			return nil, fmt.Errorf("failed to parse JSON %s: %w", path, err)
		}
	default:
		return nil, NewUnknownFormatError(path)
	}
	return &file, nil
}

// RegisterRules registers the @property rules of a stylesheet. Every rule
// that fails is reported; the others are still registered.
func (r *Registry) RegisterRules(rules []*css.PropertyRule, source string) error {
	var result *multierror.Error
	for _, rule := range rules {
		def, err := definitionOf(rule)
		if err == nil {
			def.Source = fmt.Sprintf("%s:%d", source, rule.Range.Start.Line+1)
			_, err = r.Register(def)
		}
		if err != nil {
			result = multierror.Append(result, &RuleError{Rule: rule, Err: err})
		}
	}
	return result.ErrorOrNil()
}

// RuleError ties a registration failure to the @property rule that caused it
type RuleError struct {
	Rule *css.PropertyRule
	Err  error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("@property %s: %v", e.Rule.Name, e.Err)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

// definitionOf checks that an @property rule carries the required
// descriptors and converts it to a Definition
func definitionOf(rule *css.PropertyRule) (Definition, error) {
	def := Definition{Name: rule.Name, InitialValue: rule.InitialValue}
	if rule.Syntax == nil {
		return def, NewInvalidRegistrationError(rule.Name, "missing syntax descriptor")
	}
	def.Syntax = *rule.Syntax

	if rule.Inherits == nil {
		return def, NewInvalidRegistrationError(rule.Name, "missing inherits descriptor")
	}
	switch strings.ToLower(*rule.Inherits) {
	case "true":
		def.Inherits = true
	case "false":
	default:
		return def, NewInvalidRegistrationError(rule.Name,
			fmt.Sprintf("inherits must be true or false, got %q", *rule.Inherits))
	}
	return def, nil
}
