package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielolaszy/prlens/internal/rules"
	"github.com/danielolaszy/prlens/pkg/models"
)

func newTestFilter(t *testing.T) *Filter {
	t.Helper()
	f, err := New(rules.Default().Noise)
	require.NoError(t, err)
	return f
}

func TestEvaluateNoiseComments(t *testing.T) {
	f := newTestFilter(t)

	testCases := []struct {
		name         string
		comment      models.Comment
		expectedRule string
	}{
		{
			name: "System generated comment",
			comment: models.Comment{
				Author:          "service-account",
				Body:            "The policy status has been updated",
				SystemGenerated: true,
			},
			expectedRule: RuleSystemAccount,
		},
		{
			name: "Empty body",
			comment: models.Comment{
				Author: "alice",
				Body:   "",
			},
			expectedRule: RuleTooShort,
		},
		{
			name: "Whitespace only body",
			comment: models.Comment{
				Author: "alice",
				Body:   "   \n\t ",
			},
			expectedRule: RuleTooShort,
		},
		{
			name: "Too short body",
			comment: models.Comment{
				Author: "alice",
				Body:   "ok",
			},
			expectedRule: RuleTooShort,
		},
		{
			name: "Bot author suffix",
			comment: models.Comment{
				Author: "github-actions[bot]",
				Body:   "Deployment preview is ready for review",
			},
			expectedRule: RuleBotAuthor,
		},
		{
			name: "Bot author prefix",
			comment: models.Comment{
				Author: "dependabot-preview",
				Body:   "Bumping a dependency version for you",
			},
			expectedRule: RuleBotAuthor,
		},
		{
			name: "Status change message",
			comment: models.Comment{
				Author: "carol",
				Body:   "Carol updated the pull request status to Abandoned",
			},
			expectedRule: RuleStatusPattern,
		},
		{
			name: "Reviewer join message",
			comment: models.Comment{
				Author: "dave",
				Body:   "Dave joined as a reviewer",
			},
			expectedRule: RuleStatusPattern,
		},
		{
			name: "Vote message",
			comment: models.Comment{
				Author: "erin",
				Body:   "Erin voted 10",
			},
			expectedRule: RuleStatusPattern,
		},
		{
			name: "Build status message",
			comment: models.Comment{
				Author: "frank",
				Body:   "Build succeeded",
			},
			expectedRule: RuleStatusPattern,
		},
		{
			name: "Merge notice",
			comment: models.Comment{
				Author: "grace",
				Body:   "This change was merged yesterday",
			},
			expectedRule: RuleStatusPattern,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			noise, rule := f.Evaluate(tc.comment)
			assert.True(t, noise)
			assert.Equal(t, tc.expectedRule, rule)
		})
	}
}

func TestEvaluateMeaningfulComments(t *testing.T) {
	f := newTestFilter(t)

	testCases := []struct {
		name    string
		comment models.Comment
	}{
		{
			name: "Review feedback",
			comment: models.Comment{
				Author: "alice",
				Body:   "Please rename this variable",
			},
		},
		{
			name: "Question",
			comment: models.Comment{
				Author: "bob",
				Body:   "Why does this loop start at 1 instead of 0?",
			},
		},
		{
			name: "Ambiguous wording defaults to meaningful",
			comment: models.Comment{
				Author: "carol",
				Body:   "I think the review flow here is confusing",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			noise, rule := f.Evaluate(tc.comment)
			assert.False(t, noise)
			assert.Empty(t, rule)
		})
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	f := newTestFilter(t)
	comment := models.Comment{Author: "alice", Body: "Please rename this variable"}

	firstNoise, firstRule := f.Evaluate(comment)
	for i := 0; i < 10; i++ {
		noise, rule := f.Evaluate(comment)
		assert.Equal(t, firstNoise, noise)
		assert.Equal(t, firstRule, rule)
	}
}

func TestNewRejectsInvalidPattern(t *testing.T) {
	_, err := New(rules.NoiseRules{Patterns: []string{"(unclosed"}})
	assert.Error(t, err)
}

func TestNewWithoutPatterns(t *testing.T) {
	f, err := New(rules.NoiseRules{MinLength: 4})
	require.NoError(t, err)

	noise, rule := f.Evaluate(models.Comment{Author: "alice", Body: "Looks good to me overall"})
	assert.False(t, noise)
	assert.Empty(t, rule)
}
