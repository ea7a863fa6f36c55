// Package feed fetches podcast RSS/Atom feeds and maps them into domain
// episode records.
package feed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/podopus/podopus/internal/domain"
)

// summaryLimit caps the plain-text summary shown in the episode listing.
const summaryLimit = 120

// Fetch retrieves and parses the feed at url. A feed without episodes is an
// error: nothing downstream can operate on it.
func Fetch(ctx context.Context, url string) (*domain.Feed, error) {
	slog.Info("Fetching feed", "url", url)

	parser := gofeed.NewParser()
	parsed, err := parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed %s: %w", url, err)
	}

	if len(parsed.Items) == 0 {
		return nil, fmt.Errorf("no episodes found in feed %s", url)
	}

	feed := &domain.Feed{
		Title:    parsed.Title,
		Episodes: make([]domain.Episode, 0, len(parsed.Items)),
	}

	for _, item := range parsed.Items {
		episode := domain.Episode{
			Title:     item.Title,
			Published: item.Published,
			Summary:   summarize(item.Description),
		}
		for _, enc := range item.Enclosures {
			if enc == nil {
				continue
			}
			episode.Enclosures = append(episode.Enclosures, domain.Enclosure{
				URL:      enc.URL,
				MIMEType: enc.Type,
			})
		}
		feed.Episodes = append(feed.Episodes, episode)
	}

	return feed, nil
}

// summarize flattens HTML show notes into a single short plain-text line.
func summarize(description string) string {
	if description == "" {
		return ""
	}

	text := description
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(description)); err == nil {
		text = doc.Text()
	}

	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) > summaryLimit {
		text = string(runes[:summaryLimit-3]) + "..."
	}
	return text
}
