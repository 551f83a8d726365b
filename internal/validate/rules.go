package validate

import "regexp"

// issueDefinition is a line-matching rule: every line matching the pattern
// produces one diagnostic with the rule's message and severity.
type issueDefinition struct {
	pattern  *regexp.Regexp
	message  string
	severity Severity
}

// assemblyRules apply only to assemblies.
var assemblyRules = []issueDefinition{
	{
		pattern:  regexp.MustCompile(`^include::.*assembly[_-].*\.adoc`),
		message:  "This assembly includes another assembly.",
		severity: Error,
	},
	{
		pattern:  regexp.MustCompile(`^:leveloffset:\s*\+\d*`),
		message:  "Unsupported level offset configuration.",
		severity: Error,
	},
	{
		pattern:  regexp.MustCompile(`^\.Additional resources`),
		message:  "In assemblies, 'Additional resources' must use the == syntax.",
		severity: Error,
	},
}

// moduleRules apply to concept, procedure, and reference modules.
var moduleRules = []issueDefinition{
	{
		pattern:  regexp.MustCompile(`^==\s*Additional resources`),
		message:  "In modules, 'Additional resources' must use the dot syntax.",
		severity: Error,
	},
}

// titleRules apply to every document with a recognized type.
var titleRules = []issueDefinition{
	{
		pattern:  regexp.MustCompile(`^=\s+.*\[\[\S+\]\].*`),
		message:  "The title contains an inline anchor.",
		severity: Error,
	},
	{
		pattern:  regexp.MustCompile(`^=\s+.*\{\S+\}.*`),
		message:  "The title contains an attribute.",
		severity: Error,
	},
}

var (
	anyIncludeRe  = regexp.MustCompile(`^include::.*\.adoc`)
	snipIncludeRe = regexp.MustCompile(`^include::((snip|.*/snip)[_-]|common-content/).*\.adoc`)
)
