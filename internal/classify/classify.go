// Package classify assigns a team label to meaningful pull request comments.
package classify

import (
	"strings"

	"github.com/danielolaszy/prlens/internal/rules"
	"github.com/danielolaszy/prlens/pkg/models"
)

// Unclassified is the fallback label for comments no rule matches.
const Unclassified = "unclassified"

// Classifier applies an ordered list of team rules. First match wins.
type Classifier struct {
	rules []rules.TeamRule
}

// New creates a classifier from the configured team rules.
func New(teamRules []rules.TeamRule) *Classifier {
	return &Classifier{rules: teamRules}
}

// Classify returns the team label for a comment, or Unclassified when no
// rule matches. Pure function, deterministic for a fixed rule set.
func (c *Classifier) Classify(comment models.Comment) string {
	author := strings.ToLower(comment.Author)
	body := strings.ToLower(comment.Body)

	for _, rule := range c.rules {
		if matches(rule, author, body) {
			return rule.Team
		}
	}

	return Unclassified
}

// matches reports whether one rule applies to a lowercased author and body.
func matches(rule rules.TeamRule, author, body string) bool {
	for _, candidate := range rule.Authors {
		if strings.ToLower(candidate) == author {
			return true
		}
	}

	if rule.AuthorSuffix != "" && strings.HasSuffix(author, strings.ToLower(rule.AuthorSuffix)) {
		return true
	}

	for _, keyword := range rule.Keywords {
		if keyword != "" && strings.Contains(body, strings.ToLower(keyword)) {
			return true
		}
	}

	return false
}
