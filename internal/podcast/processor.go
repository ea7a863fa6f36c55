// Package podcast drives the selection-and-acquisition pipeline over a
// fetched feed.
package podcast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/podopus/podopus/internal/domain"
	"github.com/podopus/podopus/internal/download"
	"github.com/podopus/podopus/internal/selection"
)

// Acquirer downloads one episode and reports the outcome.
type Acquirer interface {
	Acquire(ctx context.Context, episode domain.Episode) download.Outcome
}

// Archiver mirrors a finished episode file to long-term storage.
type Archiver interface {
	Archive(ctx context.Context, path string) error
}

// Processor runs selection expressions against a feed, acquiring the chosen
// episodes strictly in order, one at a time.
type Processor struct {
	feed     *domain.Feed
	acquirer Acquirer
	archiver Archiver
}

// NewProcessor creates a Processor. archiver may be nil when no archive
// backend is configured.
func NewProcessor(feed *domain.Feed, acquirer Acquirer, archiver Archiver) *Processor {
	return &Processor{
		feed:     feed,
		acquirer: acquirer,
		archiver: archiver,
	}
}

// ProcessSelection parses expr, then acquires each selected episode
// sequentially. A malformed expression returns selection.ErrInvalidSelection
// and no outcomes. Cancellation stops the remaining queue after the current
// episode's cleanup; outcomes gathered so far are still returned.
func (p *Processor) ProcessSelection(ctx context.Context, expr string) ([]download.Outcome, error) {
	indices, err := selection.Parse(expr, len(p.feed.Episodes))
	if err != nil {
		return nil, err
	}

	outcomes := make([]download.Outcome, 0, len(indices))
	for _, idx := range indices {
		if ctx.Err() != nil {
			break
		}

		outcome := p.acquirer.Acquire(ctx, p.feed.Episodes[idx])
		outcomes = append(outcomes, outcome)

		if cancelled(outcome.Err) {
			slog.Info("Acquisition cancelled, stopping remaining episodes")
			break
		}

		if outcome.Status == download.StatusSuccess && p.archiver != nil {
			if err := p.archiver.Archive(ctx, outcome.Path); err != nil {
				slog.Warn("Failed to archive episode", "path", outcome.Path, "error", err)
			}
		}
	}

	return outcomes, nil
}

func cancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// displayLimit bounds how many episodes show at each end of a long listing.
const displayLimit = 5

// FormatEpisodeList renders the numbered episode listing, eliding the middle
// of long feeds.
func FormatEpisodeList(feed *domain.Feed) string {
	var b strings.Builder

	divider := strings.Repeat("=", 70)
	fmt.Fprintf(&b, "\n%s\n", divider)
	fmt.Fprintf(&b, "Podcast: %s\n", feed.Title)
	fmt.Fprintf(&b, "Total Episodes Available: %d\n", len(feed.Episodes))
	fmt.Fprintf(&b, "%s\n\n", divider)

	total := len(feed.Episodes)
	if total <= displayLimit*2 {
		writeRange(&b, feed.Episodes, 0)
	} else {
		writeRange(&b, feed.Episodes[:displayLimit], 0)
		fmt.Fprintf(&b, "  ... (%d episodes hidden) ...\n", total-2*displayLimit)
		writeRange(&b, feed.Episodes[total-displayLimit:], total-displayLimit)
	}

	return b.String()
}

func writeRange(b *strings.Builder, episodes []domain.Episode, startIndex int) {
	for i, episode := range episodes {
		published := episode.Published
		if published == "" {
			published = "No date"
		}
		fmt.Fprintf(b, "  [%03d] %s (%s)\n", startIndex+i+1, episode.Title, published)
		if episode.Summary != "" {
			fmt.Fprintf(b, "        %s\n", episode.Summary)
		}
	}
}
