package engine

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/agentic-research/codebook/internal/fragment"
)

// Matcher is a predicate over fragment text, used by Replace to locate the
// fragment an authoring step wants to rewrite. Keeping it an interface
// leaves room for structural matching later without touching the engine.
type Matcher interface {
	Match(f fragment.Fragment) bool
	// String describes the pattern for error messages.
	String() string
}

type regexpMatcher struct {
	re *regexp.Regexp
}

// MatchRegexp compiles expr into a matcher over a fragment's literal text.
func MatchRegexp(expr string) (Matcher, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile match pattern: %w", err)
	}
	return &regexpMatcher{re: re}, nil
}

func (m *regexpMatcher) Match(f fragment.Fragment) bool {
	return m.re.MatchString(string(f))
}

func (m *regexpMatcher) String() string {
	return "/" + m.re.String() + "/"
}

type literalMatcher struct {
	sub string
}

// MatchLiteral matches any fragment containing sub verbatim.
func MatchLiteral(sub string) Matcher {
	return &literalMatcher{sub: sub}
}

func (m *literalMatcher) Match(f fragment.Fragment) bool {
	return strings.Contains(string(f), m.sub)
}

func (m *literalMatcher) String() string {
	return fmt.Sprintf("%q", m.sub)
}
