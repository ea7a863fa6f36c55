package feed

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gocolly/colly"
)

// ErrNoFeedLink indicates the page declares no RSS/Atom feed.
var ErrNoFeedLink = errors.New("no feed link found on page")

// Discover fetches a podcast's web page and returns the feed URL it
// advertises via <link rel="alternate"> autodiscovery tags. RSS wins over
// Atom when both are present.
func Discover(pageURL string) (string, error) {
	c := colly.NewCollector(
		colly.AllowURLRevisit(),
		colly.Async(false),
	)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	})

	var rssURL, atomURL string

	c.OnHTML(`link[type="application/rss+xml"]`, func(e *colly.HTMLElement) {
		if rssURL == "" {
			rssURL = e.Request.AbsoluteURL(e.Attr("href"))
		}
	})

	c.OnHTML(`link[type="application/atom+xml"]`, func(e *colly.HTMLElement) {
		if atomURL == "" {
			atomURL = e.Request.AbsoluteURL(e.Attr("href"))
		}
	})

	if err := c.Visit(pageURL); err != nil {
		return "", fmt.Errorf("failed to fetch page %s: %w", pageURL, err)
	}

	if rssURL != "" {
		slog.Debug("Discovered RSS feed", "page", pageURL, "feed", rssURL)
		return rssURL, nil
	}
	if atomURL != "" {
		slog.Debug("Discovered Atom feed", "page", pageURL, "feed", atomURL)
		return atomURL, nil
	}

	return "", fmt.Errorf("%w: %s", ErrNoFeedLink, pageURL)
}
