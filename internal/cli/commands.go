package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"bennypowers.dev/cssom/internal/checker"
	"bennypowers.dev/cssom/internal/log"
	"bennypowers.dev/cssom/internal/match"
	"bennypowers.dev/cssom/internal/parser/css"
	"bennypowers.dev/cssom/internal/registry"
	"bennypowers.dev/cssom/internal/syntax"
	"bennypowers.dev/cssom/internal/value"
	"bennypowers.dev/cssom/internal/version"
)

// Match matches one value against a syntax.
type Match struct {
	Syntax string `help:"Syntax to match against, e.g. '<length> | auto'" short:"s" required:""`
	Value  string `arg:"" help:"CSS value"`
}

// Run executes the match command.
func (m *Match) Run(ktx *kong.Context) error {
	grammar, err := syntax.Parse(m.Syntax)
	if err != nil {
		return err
	}
	v, err := css.ParseValue(m.Value)
	if err != nil {
		return err
	}

	result := match.Matches(v, grammar)
	log.Debug("%q against %s: %s", m.Value, grammar, result)

	_, err = fmt.Fprintln(ktx.Stdout, result)
	return err
}

// AttrType reports the final type of an attr() value.
type AttrType struct {
	Value string `arg:"" help:"attr() value, e.g. 'attr(data-x type(<length>), 0px)'"`
}

// Run executes the attr-type command.
func (a *AttrType) Run(ktx *kong.Context) error {
	v, err := css.ParseValue(a.Value)
	if err != nil {
		return err
	}
	attr, ok := v.(*value.Attr)
	if !ok {
		return fmt.Errorf("%q is not an attr() value", a.Value)
	}

	_, err = fmt.Fprintf(ktx.Stdout, "%s indeterminate=%t\n", match.FinalType(attr), match.IsIndeterminate(attr))
	return err
}

// Check checks stylesheets. Registry files are loaded first; @property
// rules of each stylesheet are registered as it is checked, so later
// stylesheets see the registrations of earlier ones.
type Check struct {
	Registry []string `help:"Glob patterns of YAML or JSON registry files, relative to --root" short:"r"`
	Root     string   `help:"Directory searched for registry files" default:"." type:"existingdir"`
	Format   string   `help:"Output format (${enum})" default:"text" enum:"text,json"`

	Files []string `arg:"" help:"Stylesheets to check" type:"existingfile"`
}

// fileReport is the JSON output for one stylesheet
type fileReport struct {
	File        string                `json:"file"`
	Diagnostics []protocol.Diagnostic `json:"diagnostics"`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context, ktx *kong.Context) error {
	reg := registry.New()
	if len(c.Registry) > 0 {
		if err := reg.LoadFiles(c.Root, c.Registry); err != nil {
			return fmt.Errorf("failed to load registry: %w", err)
		}
	}

	var reports []fileReport
	failed := false
	for _, path := range c.Files {
		if err := ctx.Err(); err != nil {
			return err
		}

		source, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		diagnostics, err := checker.Check(path, string(source), reg)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if checker.HasErrors(diagnostics) {
			failed = true
		}
		if diagnostics == nil {
			diagnostics = []protocol.Diagnostic{}
		}
		reports = append(reports, fileReport{File: path, Diagnostics: diagnostics})
	}

	if err := c.write(ktx, reports); err != nil {
		return err
	}

	log.Info("Checked %d stylesheets against %d registered properties", len(c.Files), reg.Count())
	if failed {
		return ErrCheckFailed
	}
	return nil
}

func (c *Check) write(ktx *kong.Context, reports []fileReport) error {
	if c.Format == "json" {
		enc := json.NewEncoder(ktx.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	for _, report := range reports {
		for _, d := range report.Diagnostics {
			_, err := fmt.Fprintf(ktx.Stdout, "%s:%d:%d: %s: %s\n",
				report.File, d.Range.Start.Line+1, d.Range.Start.Character+1, severityName(d.Severity), d.Message)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func severityName(s *protocol.DiagnosticSeverity) string {
	if s == nil {
		return "error"
	}
	switch *s {
	case protocol.DiagnosticSeverityWarning:
		return "warning"
	case protocol.DiagnosticSeverityInformation:
		return "info"
	case protocol.DiagnosticSeverityHint:
		return "hint"
	}
	return "error"
}

// Version prints version information.
type Version struct {
	JSON bool `help:"Print build information as JSON"`
}

// Run executes the version command.
func (v *Version) Run(ktx *kong.Context) error {
	if v.JSON {
		enc := json.NewEncoder(ktx.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(version.GetBuildInfo())
	}
	_, err := fmt.Fprintf(ktx.Stdout, "%s %s\n", name, version.GetFullVersion())
	return err
}
