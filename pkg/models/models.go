// Package models defines data structures shared across the application.
package models

import (
	"fmt"
	"time"
)

// PullRequestRef identifies a single GitHub pull request.
type PullRequestRef struct {
	// Owner is the repository owner (user or organization)
	Owner string

	// Repo is the repository name
	Repo string

	// Number is the pull request number (e.g., 42)
	Number int
}

// String returns the reference in "owner/repo#number" form.
func (r PullRequestRef) String() string {
	return fmt.Sprintf("%s/%s#%d", r.Owner, r.Repo, r.Number)
}

// Repository returns the reference's repository in "owner/repo" form.
func (r PullRequestRef) Repository() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Repo)
}

// Comment represents one pull request comment linked to a work-item ticket.
// Comments are created by the fetcher and read-only afterwards.
type Comment struct {
	// TicketID is the JIRA ticket the comment's pull request is linked to (e.g., "ABC-123")
	TicketID string

	// PR identifies the pull request the comment was posted on
	PR PullRequestRef

	// Author is the login of the comment's author, lowercased
	Author string

	// Body is the full comment text
	Body string

	// CreatedAt is the timestamp when the comment was posted
	CreatedAt time.Time

	// SystemGenerated is true when the hosting service marked the author
	// as a bot or service account
	SystemGenerated bool
}

// ClassifiedComment is a meaningful comment with its team label attached.
type ClassifiedComment struct {
	Comment

	// Team is the owning team's label, or "unclassified" when no rule matched
	Team string
}

// Summary holds the aggregate counts produced by one analysis run.
type Summary struct {
	// TicketsProcessed is the number of tickets the run fetched comments for
	TicketsProcessed int

	// TotalComments is the number of comments seen before filtering
	TotalComments int

	// Meaningful is the number of comments that survived the noise filter
	Meaningful int

	// Noise is the number of comments the filter excluded
	Noise int

	// TeamCounts maps each team label to its meaningful comment count
	TeamCounts map[string]int

	// NoiseByRule maps each noise rule name to the number of comments it
	// excluded; populated for debug output
	NoiseByRule map[string]int
}
