// Package jira provides functionality for resolving work-item tickets to
// the pull requests linked to them.
package jira

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	jira "github.com/andygrunwald/go-jira"

	"github.com/danielolaszy/prlens/internal/config"
	"github.com/danielolaszy/prlens/internal/logging"
	"github.com/danielolaszy/prlens/pkg/models"
)

// ticketKeyPattern matches a full JIRA issue key, e.g. "ABC-123".
var ticketKeyPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*-\d+$`)

// pullRequestURLPattern extracts owner, repository and number from a GitHub
// pull request URL. The host is not pinned so GitHub Enterprise links parse too.
var pullRequestURLPattern = regexp.MustCompile(`^https?://[^/]+/([^/]+)/([^/]+)/pull/(\d+)`)

// Client handles interactions with the JIRA API.
type Client struct {
	client *jira.Client
}

// NewClient creates a new JIRA client using configuration from environment
// variables. It returns an error before any network activity when the JIRA
// credentials are incomplete.
func NewClient() (*Client, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := config.ValidateJiraConfig(cfg); err != nil {
		return nil, err
	}

	logging.Info("jira configuration",
		"url", cfg.Jira.URL,
		"username", cfg.Jira.Username,
		"token", logging.MaskSensitive(cfg.Jira.Token))

	// Create JIRA authentication transport
	tp := jira.BasicAuthTransport{
		Username: cfg.Jira.Username,
		Password: cfg.Jira.Token,
	}

	client, err := jira.NewClient(tp.Client(), cfg.Jira.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to create jira client: %w", err)
	}

	return &Client{client: client}, nil
}

// NormalizeKey converts a caller-supplied ticket identifier into a full JIRA
// issue key. Full keys pass through uppercased; bare numeric identifiers are
// resolved against the default project key. It returns an error when the
// identifier fits neither form.
func NormalizeKey(id, defaultProject string) (string, error) {
	id = strings.TrimSpace(id)

	if ticketKeyPattern.MatchString(id) {
		return strings.ToUpper(id), nil
	}

	if _, err := strconv.Atoi(id); err == nil {
		if defaultProject == "" {
			return "", fmt.Errorf("numeric ticket id %q requires a default project key", id)
		}
		return fmt.Sprintf("%s-%s", strings.ToUpper(defaultProject), id), nil
	}

	return "", fmt.Errorf("invalid ticket identifier: %q", id)
}

// ParsePullRequestURL extracts a pull request reference from a remote link
// URL. It returns false when the URL does not point at a pull request.
func ParsePullRequestURL(raw string) (models.PullRequestRef, bool) {
	match := pullRequestURLPattern.FindStringSubmatch(raw)
	if match == nil {
		return models.PullRequestRef{}, false
	}

	number, err := strconv.Atoi(match[3])
	if err != nil {
		return models.PullRequestRef{}, false
	}

	return models.PullRequestRef{
		Owner:  match[1],
		Repo:   match[2],
		Number: number,
	}, true
}

// GetLinkedPullRequests returns the pull requests linked to a ticket via its
// remote links. Links that do not point at a pull request are skipped.
func (c *Client) GetLinkedPullRequests(ticketKey string) ([]models.PullRequestRef, error) {
	if c.client == nil {
		return nil, fmt.Errorf("jira client not initialized")
	}

	links, resp, err := c.client.Issue.GetRemoteLinks(ticketKey)
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		return nil, fmt.Errorf("failed to fetch remote links for %s: %v (status: %d)", ticketKey, err, status)
	}

	var refs []models.PullRequestRef
	for _, link := range *links {
		if link.Object == nil || link.Object.URL == "" {
			continue
		}

		ref, ok := ParsePullRequestURL(link.Object.URL)
		if !ok {
			logging.Debug("skipping non pull request link",
				"ticket", ticketKey,
				"url", link.Object.URL)
			continue
		}

		refs = append(refs, ref)
	}

	logging.Debug("resolved linked pull requests",
		"ticket", ticketKey,
		"count", len(refs))
	return refs, nil
}
