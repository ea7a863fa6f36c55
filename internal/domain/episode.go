// Package domain contains the core data types shared across the pipeline.
package domain

// Enclosure is a feed-declared media attachment for one episode.
type Enclosure struct {
	URL      string
	MIMEType string
}

// Episode is a single feed entry. It is built once per feed fetch and
// never mutated afterwards.
type Episode struct {
	Title      string
	Published  string
	Summary    string
	Enclosures []Enclosure
}

// Feed is a fetched podcast feed with its episodes in feed order.
type Feed struct {
	Title    string
	Episodes []Episode
}
