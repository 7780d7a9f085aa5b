// Package github provides functionality for interacting with the GitHub API.
package github

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v41/github"
	"golang.org/x/oauth2"

	"github.com/danielolaszy/prlens/internal/config"
	"github.com/danielolaszy/prlens/internal/logging"
	"github.com/danielolaszy/prlens/pkg/models"
)

// Client encapsulates the GitHub API client.
type Client struct {
	client *github.Client
}

// NewClient creates a new GitHub API client using configuration from environment variables.
// It initializes the client with the appropriate base URL, authenticates with the GitHub API,
// and tests the connection. It returns the configured client or an error if initialization fails.
func NewClient() (*Client, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	token := cfg.GitHub.Token
	if token == "" {
		return nil, fmt.Errorf("github token not found in configuration")
	}

	// Construct API URL based on domain
	domain := cfg.GitHub.Domain
	var apiURL string
	if domain == "github.com" {
		apiURL = "https://api.github.com/"
	} else {
		apiURL = fmt.Sprintf("https://%s/api/v3/", domain)
	}

	logging.Info("github configuration",
		"domain", domain,
		"api_url", apiURL,
		"token", logging.MaskSensitive(token))

	// Create the oauth2 client
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(context.Background(), ts)

	client := github.NewClient(tc)

	// If not using default GitHub.com, set custom API endpoint
	if domain != "github.com" {
		parsedURL, err := url.Parse(apiURL)
		if err != nil {
			return nil, fmt.Errorf("invalid github api url: %w", err)
		}

		client.BaseURL = parsedURL
		client.UploadURL = parsedURL
	}

	// Test the token
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, _, err := client.Users.Get(ctx, "")
	if err != nil {
		logging.Error("failed to test github token", "error", err)
		return nil, fmt.Errorf("error testing github token: %w", err)
	}

	logging.Info("github authentication successful",
		"username", user.GetLogin())

	return &Client{client: client}, nil
}

// GetPullRequestComments retrieves every comment on a pull request: the
// conversation comments from the Issues API and the inline review comments
// from the Pulls API. Records missing an author or a body are skipped with
// a logged warning rather than aborting the run.
func (c *Client) GetPullRequestComments(ctx context.Context, ticketID string, ref models.PullRequestRef) ([]models.Comment, error) {
	conversation, err := c.listConversationComments(ctx, ticketID, ref)
	if err != nil {
		return nil, err
	}

	review, err := c.listReviewComments(ctx, ticketID, ref)
	if err != nil {
		return nil, err
	}

	comments := append(conversation, review...)
	logging.Debug("fetched pull request comments",
		"pull_request", ref.String(),
		"count", len(comments))
	return comments, nil
}

// listConversationComments pages through the PR's conversation comments.
func (c *Client) listConversationComments(ctx context.Context, ticketID string, ref models.PullRequestRef) ([]models.Comment, error) {
	opts := &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var result []models.Comment
	for {
		comments, resp, err := c.client.Issues.ListComments(ctx, ref.Owner, ref.Repo, ref.Number, opts)
		if err != nil {
			logging.Error("failed to fetch conversation comments",
				"pull_request", ref.String(),
				"error", err)
			return nil, fmt.Errorf("failed to fetch comments for %s: %v", ref.String(), err)
		}

		for _, comment := range comments {
			converted, ok := convert(ticketID, ref, comment.GetUser(), comment.GetBody(), comment.GetCreatedAt())
			if !ok {
				continue
			}
			result = append(result, converted)
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return result, nil
}

// listReviewComments pages through the PR's inline review comments.
func (c *Client) listReviewComments(ctx context.Context, ticketID string, ref models.PullRequestRef) ([]models.Comment, error) {
	opts := &github.PullRequestListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var result []models.Comment
	for {
		comments, resp, err := c.client.PullRequests.ListComments(ctx, ref.Owner, ref.Repo, ref.Number, opts)
		if err != nil {
			logging.Error("failed to fetch review comments",
				"pull_request", ref.String(),
				"error", err)
			return nil, fmt.Errorf("failed to fetch review comments for %s: %v", ref.String(), err)
		}

		for _, comment := range comments {
			converted, ok := convert(ticketID, ref, comment.GetUser(), comment.GetBody(), comment.GetCreatedAt())
			if !ok {
				continue
			}
			result = append(result, converted)
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return result, nil
}

// convert maps a GitHub comment to the internal model. A record without an
// author login or a body is malformed and reported as not convertible.
func convert(ticketID string, ref models.PullRequestRef, user *github.User, body string, createdAt time.Time) (models.Comment, bool) {
	if user.GetLogin() == "" || strings.TrimSpace(body) == "" {
		logging.Warn("skipping malformed comment record",
			"pull_request", ref.String(),
			"author", user.GetLogin())
		return models.Comment{}, false
	}

	return models.Comment{
		TicketID:        ticketID,
		PR:              ref,
		Author:          strings.ToLower(user.GetLogin()),
		Body:            body,
		CreatedAt:       createdAt,
		SystemGenerated: user.GetType() == "Bot",
	}, true
}
