// Package rules loads the noise-filtering and team-classification rules
// that drive a report run. Rules are data, not code: a YAML file supplied
// with --rules overrides the built-in defaults.
package rules

import (
	"fmt"

	"github.com/spf13/viper"
)

// NoiseRules configures the noise filter.
type NoiseRules struct {
	// Patterns are regular expressions matched case-insensitively against
	// comment bodies; a match marks the comment as noise.
	Patterns []string `mapstructure:"patterns"`

	// BotAuthors are author markers. An author matches when a marker is a
	// prefix or a suffix of the login (covers "dependabot" as well as the
	// "[bot]" suffix convention).
	BotAuthors []string `mapstructure:"bot_authors"`

	// MinLength is the minimum body length (after trimming whitespace) for
	// a comment to carry substantive content.
	MinLength int `mapstructure:"min_length"`
}

// TeamRule maps a matching criterion to a team label. Exactly one of
// Authors, AuthorSuffix, or Keywords should be set per rule.
type TeamRule struct {
	// Team is the label attached to comments the rule matches.
	Team string `mapstructure:"team"`

	// Authors matches when the comment author equals one of the entries.
	Authors []string `mapstructure:"authors"`

	// AuthorSuffix matches when the comment author ends with the suffix,
	// e.g. an email domain.
	AuthorSuffix string `mapstructure:"author_suffix"`

	// Keywords matches when the comment body contains one of the entries.
	Keywords []string `mapstructure:"keywords"`
}

// Rules is the full rule set for one run.
type Rules struct {
	Noise NoiseRules `mapstructure:"noise"`
	Teams []TeamRule `mapstructure:"teams"`
}

// Default returns the built-in rule set: the status-change, reviewer-change
// and merge notices the hosting services post automatically, plus the common
// bot author markers. The default set carries no team rules, so every
// meaningful comment classifies as "unclassified" until teams are configured.
func Default() Rules {
	return Rules{
		Noise: NoiseRules{
			Patterns: []string{
				`policy status has been updated`,
				`updated the pull request status to`,
				`joined as a reviewer`,
				`conflicts are resolved`,
				`submitted conflict resolution`,
				`from the reviewers`,
				`a required reviewer`,
				`an optional reviewer`,
				`as a reviewer`,
				`set auto-complete`,
				`voted\s*[-+]?\d*`,
				`the reference refs/heads/.* was updated`,
				`\b(merged|abandoned|completed)\b`,
				`\bbuild (succeeded|failed)\b`,
				`sonarqube`,
			},
			BotAuthors: []string{
				"[bot]",
				"dependabot",
				"github-actions",
				"renovate",
				"sonarqube",
			},
			MinLength: 4,
		},
	}
}

// Load reads a YAML rules file and returns the resulting rule set. An empty
// path returns the built-in defaults. A file section that is present
// replaces the corresponding default section wholesale; sections the file
// omits keep their defaults.
func Load(path string) (Rules, error) {
	rules := Default()
	if path == "" {
		return rules, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return Rules{}, fmt.Errorf("failed to read rules file %q: %w", path, err)
	}

	var loaded Rules
	if err := v.Unmarshal(&loaded); err != nil {
		return Rules{}, fmt.Errorf("failed to parse rules file %q: %w", path, err)
	}

	if v.IsSet("noise") {
		rules.Noise = loaded.Noise
	}
	if v.IsSet("teams") {
		rules.Teams = loaded.Teams
	}

	return rules, nil
}
