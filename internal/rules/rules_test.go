package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	rules := Default()

	assert.NotEmpty(t, rules.Noise.Patterns)
	assert.NotEmpty(t, rules.Noise.BotAuthors)
	assert.Equal(t, 4, rules.Noise.MinLength)
	assert.Empty(t, rules.Teams, "defaults carry no team rules")
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	rules, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), rules)
}

func TestLoadRulesFile(t *testing.T) {
	content := `
noise:
  patterns:
    - "build (succeeded|failed)"
  bot_authors:
    - "bot-"
  min_length: 10
teams:
  - team: Backend
    authors:
      - alice
      - bob
  - team: Platform
    author_suffix: "@platform.example.com"
  - team: QA
    keywords:
      - flaky
      - coverage
`
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rules, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"build (succeeded|failed)"}, rules.Noise.Patterns)
	assert.Equal(t, []string{"bot-"}, rules.Noise.BotAuthors)
	assert.Equal(t, 10, rules.Noise.MinLength)

	require.Len(t, rules.Teams, 3)
	assert.Equal(t, "Backend", rules.Teams[0].Team)
	assert.Equal(t, []string{"alice", "bob"}, rules.Teams[0].Authors)
	assert.Equal(t, "@platform.example.com", rules.Teams[1].AuthorSuffix)
	assert.Equal(t, []string{"flaky", "coverage"}, rules.Teams[2].Keywords)
}

func TestLoadKeepsDefaultsForOmittedSections(t *testing.T) {
	content := `
teams:
  - team: Backend
    authors:
      - alice
`
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rules, err := Load(path)
	require.NoError(t, err)

	// Noise section omitted: defaults survive
	assert.Equal(t, Default().Noise, rules.Noise)
	require.Len(t, rules.Teams, 1)
	assert.Equal(t, "Backend", rules.Teams[0].Team)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("teams: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
