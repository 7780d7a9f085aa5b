// Package filter decides whether a pull request comment carries substantive
// review content or is system/status noise.
package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/danielolaszy/prlens/internal/rules"
	"github.com/danielolaszy/prlens/pkg/models"
)

// Names of the rules a verdict can attribute a noise classification to.
const (
	RuleSystemAccount = "system_account"
	RuleTooShort      = "too_short"
	RuleBotAuthor     = "bot_author"
	RuleStatusPattern = "status_pattern"
)

// Filter is a pure predicate over comments: deterministic, no side effects.
type Filter struct {
	minLength  int
	botAuthors []string
	patterns   *regexp.Regexp
}

// New compiles the configured noise patterns into a filter. Patterns are
// joined into a single case-insensitive alternation, matching how the rules
// are authored (body fragments, not anchored expressions).
func New(noise rules.NoiseRules) (*Filter, error) {
	f := &Filter{
		minLength:  noise.MinLength,
		botAuthors: make([]string, 0, len(noise.BotAuthors)),
	}

	for _, author := range noise.BotAuthors {
		f.botAuthors = append(f.botAuthors, strings.ToLower(author))
	}

	if len(noise.Patterns) > 0 {
		joined := fmt.Sprintf("(?i)%s", strings.Join(noise.Patterns, "|"))
		compiled, err := regexp.Compile(joined)
		if err != nil {
			return nil, fmt.Errorf("failed to compile noise patterns: %w", err)
		}
		f.patterns = compiled
	}

	return f, nil
}

// Evaluate classifies a single comment. It returns true with the name of the
// rule that fired when the comment is noise, and false with an empty rule
// name when it is meaningful. Ambiguous comments default to meaningful.
func (f *Filter) Evaluate(comment models.Comment) (bool, string) {
	if comment.SystemGenerated {
		return true, RuleSystemAccount
	}

	if len(strings.TrimSpace(comment.Body)) < f.minLength {
		return true, RuleTooShort
	}

	author := strings.ToLower(comment.Author)
	for _, marker := range f.botAuthors {
		if strings.HasPrefix(author, marker) || strings.HasSuffix(author, marker) {
			return true, RuleBotAuthor
		}
	}

	if f.patterns != nil && f.patterns.MatchString(comment.Body) {
		return true, RuleStatusPattern
	}

	return false, ""
}
