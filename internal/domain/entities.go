package domain

// Document is a retrieval result passed through the dispatcher unmodified.
type Document struct {
	ID       string
	Content  string
	Score    float64
	Metadata map[string]string
}

// AnalyzedQuery is the structured form of a free-text query: a rewritten
// search string plus the key of the retrieval backend it should be sent to.
// Produced once per input by the analyzer and consumed exactly once.
type AnalyzedQuery struct {
	RewrittenQuery string
	Target         string
}

// StructuredQuery is a typed search filter extracted from natural language.
type StructuredQuery struct {
	Query        string `json:"query"`
	Author       string `json:"author,omitempty"`
	EarliestYear int    `json:"earliest_year,omitempty"`
	LatestYear   int    `json:"latest_year,omitempty"`
}

// Expansion holds the paraphrases generated for a query, original included.
type Expansion struct {
	Original string
	Queries  []string
}

// Decomposition holds the independent sub-questions of a compound question.
type Decomposition struct {
	Original     string
	SubQuestions []string
}
