// Package checker reports how the custom properties of a stylesheet fare
// against their registered syntax.
package checker

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"bennypowers.dev/cssom/internal/log"
	"bennypowers.dev/cssom/internal/match"
	"bennypowers.dev/cssom/internal/parser/css"
	"bennypowers.dev/cssom/internal/registry"
	"bennypowers.dev/cssom/internal/resolver"
	"github.com/hashicorp/go-multierror"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Source is the source field of every diagnostic
const Source = "cssom"

// Check parses a stylesheet, registers its @property rules into reg and
// returns diagnostics for:
//   - @property rules that cannot be registered (Error)
//   - registered custom properties whose value does not match (Error) or
//     can only be checked at computed-value time (Information)
//   - var() fallbacks that do not match the referenced property (Warning)
//   - custom properties on a var() cycle (Warning)
//
// name identifies the stylesheet in registration sources.
func Check(name, source string, reg *registry.Registry) ([]protocol.Diagnostic, error) {
	parser := css.AcquireParser()
	defer css.ReleaseParser(parser)
	result, err := parser.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSS: %w", err)
	}

	var diagnostics []protocol.Diagnostic

	if err := reg.RegisterRules(result.Properties, name); err != nil {
		diagnostics = append(diagnostics, ruleDiagnostics(err)...)
	}

	matcher := match.New(match.WithRegistry(reg))

	for _, variable := range result.Variables {
		if d, ok := checkVariable(matcher, reg, variable); ok {
			diagnostics = append(diagnostics, d)
		}
	}

	for _, call := range result.VarCalls {
		if d, ok := checkFallback(matcher, reg, call); ok {
			diagnostics = append(diagnostics, d)
		}
	}

	diagnostics = append(diagnostics, cycleDiagnostics(result.Variables)...)

	sort.SliceStable(diagnostics, func(i, j int) bool {
		a, b := diagnostics[i].Range.Start, diagnostics[j].Range.Start
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Character < b.Character
	})

	log.Debug("Checked %s: %d diagnostics", name, len(diagnostics))
	return diagnostics, nil
}

// HasErrors reports whether any diagnostic has Error severity
func HasErrors(diagnostics []protocol.Diagnostic) bool {
	for _, d := range diagnostics {
		if d.Severity != nil && *d.Severity == protocol.DiagnosticSeverityError {
			return true
		}
	}
	return false
}

func ruleDiagnostics(err error) []protocol.Diagnostic {
	var errs []error
	var merr *multierror.Error
	if errors.As(err, &merr) {
		errs = merr.Errors
	} else {
		errs = []error{err}
	}

	var diagnostics []protocol.Diagnostic
	for _, e := range errs {
		var ruleErr *registry.RuleError
		if !errors.As(e, &ruleErr) {
			log.Warn("Unexpected registration error: %v", e)
			continue
		}
		diagnostics = append(diagnostics, newDiagnostic(ruleErr.Rule.Range, protocol.DiagnosticSeverityError, ruleErr.Error()))
	}
	return diagnostics
}

func checkVariable(matcher *match.Matcher, reg *registry.Registry, variable *css.Variable) (protocol.Diagnostic, bool) {
	registration, ok := reg.Lookup(variable.Name)
	if !ok {
		return protocol.Diagnostic{}, false
	}

	rng := variable.ValueRange
	if variable.Value == "" {
		rng = variable.Range
	}

	v, err := css.ParseValue(variable.Value)
	if err != nil {
		return newDiagnostic(rng, protocol.DiagnosticSeverityError,
			fmt.Sprintf("%s: %v", variable.Name, err)), true
	}

	switch matcher.Matches(v, registration.Syntax) {
	case match.False:
		return newDiagnostic(rng, protocol.DiagnosticSeverityError,
			fmt.Sprintf("%s: %q does not match the registered syntax %s", variable.Name, variable.Value, registration.Syntax)), true
	case match.Pending:
		return newDiagnostic(rng, protocol.DiagnosticSeverityInformation,
			fmt.Sprintf("%s: %q is deferred to computed-value time", variable.Name, variable.Value)), true
	}
	return protocol.Diagnostic{}, false
}

func checkFallback(matcher *match.Matcher, reg *registry.Registry, call *css.VarCall) (protocol.Diagnostic, bool) {
	if call.Fallback == nil {
		return protocol.Diagnostic{}, false
	}
	registration, ok := reg.Lookup(call.Name)
	if !ok {
		return protocol.Diagnostic{}, false
	}

	fallback, err := css.ParseValue(*call.Fallback)
	if err != nil {
		return protocol.Diagnostic{}, false
	}
	if matcher.Matches(fallback, registration.Syntax) != match.False {
		return protocol.Diagnostic{}, false
	}
	return newDiagnostic(call.Range, protocol.DiagnosticSeverityWarning,
		fmt.Sprintf("fallback %q does not match the registered syntax of %s: %s", *call.Fallback, call.Name, registration.Syntax)), true
}

func cycleDiagnostics(variables []*css.Variable) []protocol.Diagnostic {
	graph := resolver.BuildDependencyGraph(variables)
	cyclic := graph.Cyclic()
	if len(cyclic) == 0 {
		return nil
	}

	var diagnostics []protocol.Diagnostic
	for _, variable := range variables {
		if !cyclic.Has(variable.Name) {
			continue
		}
		deps := graph.GetDependencies(variable.Name)
		diagnostics = append(diagnostics, newDiagnostic(variable.Range, protocol.DiagnosticSeverityWarning,
			fmt.Sprintf("%s is part of a var() cycle (references %s) and is invalid at computed-value time",
				variable.Name, strings.Join(deps, ", "))))
	}
	return diagnostics
}

func newDiagnostic(r css.Range, severity protocol.DiagnosticSeverity, message string) protocol.Diagnostic {
	source := Source
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{
				Line:      r.Start.Line,
				Character: r.Start.Character,
			},
			End: protocol.Position{
				Line:      r.End.Line,
				Character: r.End.Character,
			},
		},
		Severity: &severity,
		Source:   &source,
		Message:  message,
	}
}
