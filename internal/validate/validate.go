// Package validate checks documentation files against the modular-writing
// conventions and produces severity-tagged reports. Validation is a pure
// function from text to Report: malformed input is what the rules describe,
// never a Go error, and identical input always yields an identical report.
package validate

import (
	"strings"

	"git.home.luguber.info/inful/moddoc/internal/classify"
	"git.home.luguber.info/inful/moddoc/internal/doctype"
)

// Validate runs every applicable rule over the document and returns the
// report. file is used for classification by file-name prefix and as the
// report's file identity; it does not have to exist on disk.
//
// All rules are evaluated; nothing short-circuits. The report lists core
// findings first, then the content-type rule findings in rule order with
// ascending line numbers within each rule, and finally the single
// "no issues found" information entry when nothing else was reported.
func Validate(file, content string) Report {
	res := classify.ClassifyFile(file, content)

	var diags []Diagnostic
	diags = append(diags, coreFindings(res)...)
	diags = append(diags, typeFindings(res, content)...)

	clean := true
	for _, d := range diags {
		if d.Severity != Information {
			clean = false
			break
		}
	}
	if clean {
		diags = append(diags, Diagnostic{Severity: Information, Message: "No issues found."})
	}

	return Report{File: file, Diagnostics: diags}
}

// coreFindings are the content-type-independent rules. Snippets are exempt
// from the title, anchor, and abstract rules: the snippet skeleton carries
// none of those by design.
func coreFindings(res classify.Result) []Diagnostic {
	var diags []Diagnostic
	snippet := res.Type == doctype.Snippet

	if res.Meta.Title == "" && !snippet {
		diags = append(diags, Diagnostic{Severity: Error, Message: "No title or heading found."})
	}
	if res.Meta.Anchor == "" && !snippet {
		diags = append(diags, Diagnostic{Severity: Error, Message: "No anchor found."})
	}
	if res.Type == doctype.Unknown {
		diags = append(diags, Diagnostic{Severity: Error, Message: "Cannot determine the content type."})
	}
	if !res.Meta.HasAbstract && res.Type != doctype.Unknown && !snippet {
		diags = append(diags, Diagnostic{Severity: Warning, Message: "The abstract marker is missing."})
	}

	return diags
}

// typeFindings apply the rule set selected by the detected content type.
func typeFindings(res classify.Result, content string) []Diagnostic {
	lines := strings.Split(content, "\n")

	var diags []Diagnostic
	switch res.Type {
	case doctype.Assembly:
		diags = append(diags, applyRules(assemblyRules, lines)...)
		diags = append(diags, applyRules(titleRules, lines)...)
	case doctype.Concept, doctype.Procedure, doctype.Reference:
		diags = append(diags, applyRules(moduleRules, lines)...)
		diags = append(diags, applyRules(titleRules, lines)...)
		diags = append(diags, attributePlacement(res)...)
		diags = append(diags, moduleIncludes(lines)...)
	}
	return diags
}

// applyRules evaluates line-matching rules in order.
func applyRules(rules []issueDefinition, lines []string) []Diagnostic {
	var diags []Diagnostic
	for _, rule := range rules {
		for i, line := range lines {
			if rule.pattern.MatchString(line) {
				diags = append(diags, Diagnostic{
					Severity: rule.severity,
					Message:  rule.message,
					Line:     i + 1,
				})
			}
		}
	}
	return diags
}

// attributePlacement requires the content-type attribute to precede the
// anchor when both are present.
func attributePlacement(res classify.Result) []Diagnostic {
	if res.Meta.AttributeLine == 0 || res.Meta.AnchorLine == 0 {
		return nil
	}
	if res.Meta.AnchorLine < res.Meta.AttributeLine {
		return []Diagnostic{{
			Severity: Error,
			Message:  "The content type attribute is located after the anchor.",
			Line:     res.Meta.AttributeLine,
		}}
	}
	return nil
}

// moduleIncludes flags includes in modules. Snippet and common-content
// includes are supported and only noted; anything else is an error, because
// modules must not compose other modules.
func moduleIncludes(lines []string) []Diagnostic {
	var diags []Diagnostic
	for i, line := range lines {
		if !anyIncludeRe.MatchString(line) {
			continue
		}
		if snipIncludeRe.MatchString(line) {
			diags = append(diags, Diagnostic{
				Severity: Information,
				Message:  "This module includes a file that appears to be a snippet. This is supported.",
				Line:     i + 1,
			})
		} else {
			diags = append(diags, Diagnostic{
				Severity: Error,
				Message:  "This module includes a file that does not appear to be a snippet.",
				Line:     i + 1,
			})
		}
	}
	return diags
}
