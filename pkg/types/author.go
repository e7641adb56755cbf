// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Publication holds the metadata of a single paper fetched from a
// publication URL. Immutable once fetched.
type Publication struct {
	// Title is the paper title with whitespace normalized.
	Title string `json:"title" yaml:"title"`

	// Abstract is the paper abstract with whitespace normalized.
	Abstract string `json:"abstract" yaml:"abstract"`

	// SourceURL is the page the metadata was fetched from, when known.
	SourceURL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// AuthorProfile is the embeddable representation of one candidate
// reviewer. The JSON field names match the on-disk author_profile.json
// cache, so cached snapshots from earlier runs load without migration.
type AuthorProfile struct {
	// Name is the author's full name, unique within a run.
	Name string `json:"name" yaml:"name"`

	// PublicationURLs are the source URLs the profile was built from.
	PublicationURLs []string `json:"publication_urls" yaml:"publication_urls"`

	// Summary is the generated narrative summary of the author's
	// research. Empty until the summarization step has run; a non-empty
	// summary is not regenerated on later runs.
	Summary string `json:"summary" yaml:"summary"`

	// Publications holds the fetched metadata, in source-URL order.
	Publications []Publication `json:"list_of_pubs" yaml:"list_of_pubs"`
}

// HasSummary reports whether the profile carries a usable narrative
// summary for the summarize embedding mode.
func (p AuthorProfile) HasSummary() bool {
	return p.Summary != ""
}
