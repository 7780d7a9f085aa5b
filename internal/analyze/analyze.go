// Package analyze contains the business logic of the application: it runs
// the fetch, filter and classification pipeline over a set of tickets and
// produces the aggregate summary the report is rendered from.
package analyze

import (
	"context"

	"github.com/danielolaszy/prlens/internal/classify"
	"github.com/danielolaszy/prlens/internal/filter"
	"github.com/danielolaszy/prlens/internal/logging"
	"github.com/danielolaszy/prlens/pkg/models"
)

// TicketLinker resolves a ticket to the pull requests linked to it.
type TicketLinker interface {
	GetLinkedPullRequests(ticketKey string) ([]models.PullRequestRef, error)
}

// CommentFetcher retrieves every comment on one pull request.
type CommentFetcher interface {
	GetPullRequestComments(ctx context.Context, ticketID string, ref models.PullRequestRef) ([]models.Comment, error)
}

// Analyzer orchestrates one report run. Fetching is sequential per ticket;
// the whole run is a single linear pipeline.
type Analyzer struct {
	linker     TicketLinker
	fetcher    CommentFetcher
	filter     *filter.Filter
	classifier *classify.Classifier
}

// New creates an analyzer from its collaborators.
func New(linker TicketLinker, fetcher CommentFetcher, f *filter.Filter, c *classify.Classifier) *Analyzer {
	return &Analyzer{
		linker:     linker,
		fetcher:    fetcher,
		filter:     f,
		classifier: c,
	}
}

// Run fetches the comments for every ticket and aggregates them. Fetch
// failures are fatal and abort the run.
func (a *Analyzer) Run(ctx context.Context, tickets []string) ([]models.ClassifiedComment, models.Summary, error) {
	var comments []models.Comment

	for _, ticket := range tickets {
		refs, err := a.linker.GetLinkedPullRequests(ticket)
		if err != nil {
			return nil, models.Summary{}, err
		}

		if len(refs) == 0 {
			logging.Warn("no pull requests linked to ticket", "ticket", ticket)
		}

		for _, ref := range refs {
			fetched, err := a.fetcher.GetPullRequestComments(ctx, ticket, ref)
			if err != nil {
				return nil, models.Summary{}, err
			}
			comments = append(comments, fetched...)
		}
	}

	classified, summary := a.Aggregate(comments)
	summary.TicketsProcessed = len(tickets)

	logging.Info("analysis complete",
		"tickets", summary.TicketsProcessed,
		"comments_seen", summary.TotalComments,
		"comments_kept", summary.Meaningful,
		"comments_filtered", summary.Noise)

	return classified, summary, nil
}

// Aggregate runs the noise filter and team classifier over an already
// fetched comment set. It is deterministic: the same comments and rules
// always produce the same summary.
func (a *Analyzer) Aggregate(comments []models.Comment) ([]models.ClassifiedComment, models.Summary) {
	summary := models.Summary{
		TotalComments: len(comments),
		TeamCounts:    make(map[string]int),
		NoiseByRule:   make(map[string]int),
	}

	var classified []models.ClassifiedComment
	for _, comment := range comments {
		noise, rule := a.filter.Evaluate(comment)
		if noise {
			summary.Noise++
			summary.NoiseByRule[rule]++
			logging.Debug("filtered comment",
				"ticket", comment.TicketID,
				"author", comment.Author,
				"rule", rule)
			continue
		}

		team := a.classifier.Classify(comment)
		summary.Meaningful++
		summary.TeamCounts[team]++

		classified = append(classified, models.ClassifiedComment{
			Comment: comment,
			Team:    team,
		})
	}

	return classified, summary
}
