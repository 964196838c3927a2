package backend

import "fmt"

// Endpoint paths of the search backend.
const (
	PathSuggestions  = "/get_suggestions"
	PathSearch       = "/search"
	PathCorrections  = "/get_corrections"
	PathPredictClass = "/predict_class"
	PathEvaluate     = "/evaluate"
)

type QueryRequest struct {
	Query string `json:"query"`
}

type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// SearchRequest carries the blend weight only when hybrid search is enabled.
type SearchRequest struct {
	Query string   `json:"query"`
	Alpha *float64 `json:"alpha,omitempty"`
}

// SearchResponse is the wire shape: three parallel arrays. Ranks and
// Summaries are optional but must match Docs in length when present.
type SearchResponse struct {
	Docs      []string  `json:"docs"`
	Ranks     []float64 `json:"ranks,omitempty"`
	Summaries []string  `json:"summaries,omitempty"`
}

type CorrectionResponse struct {
	CorrectedQuery string `json:"corrected_query"`
}

type Classification struct {
	PredictedClass string   `json:"predicted_class"`
	RelevantDocs   []string `json:"relevant_docs,omitempty"`
}

type Evaluation struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1Score   float64 `json:"f1_score"`
}

// Result is one ranked document.
type Result struct {
	DocumentID string  `json:"document_id"`
	Score      float64 `json:"score"`
	Summary    string  `json:"summary"`
}

// Validate enforces the equal-length contract of the parallel arrays.
func (r SearchResponse) Validate() error {
	if r.Ranks != nil && len(r.Ranks) != len(r.Docs) {
		return fmt.Errorf("ranks has %d entries for %d docs", len(r.Ranks), len(r.Docs))
	}
	if r.Summaries != nil && len(r.Summaries) != len(r.Docs) {
		return fmt.Errorf("summaries has %d entries for %d docs", len(r.Summaries), len(r.Docs))
	}
	return nil
}

// Results zips the parallel arrays. Callers must Validate first; missing
// ranks or summaries produce zero values.
func (r SearchResponse) Results() []Result {
	if len(r.Docs) == 0 {
		return nil
	}
	results := make([]Result, len(r.Docs))
	for i, doc := range r.Docs {
		results[i].DocumentID = doc
		if i < len(r.Ranks) {
			results[i].Score = r.Ranks[i]
		}
		if i < len(r.Summaries) {
			results[i].Summary = r.Summaries[i]
		}
	}
	return results
}
