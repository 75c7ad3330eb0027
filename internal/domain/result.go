package domain

// FallbackScore is the fixed similarity assigned to lexical matches. It signals
// a non-ranked match without claiming ranking precision; scores are only
// comparable within a single search call.
const FallbackScore = 0.5

// SearchResult is a flat record suitable for direct serialization.
type SearchResult struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Similarity  float64  `json:"similarity"`
	Source      Source   `json:"source"`

	AttachmentCount int `json:"attachment_count,omitempty"` // skills only
	StageCount      int `json:"stage_count,omitempty"`      // workflows only
}

// ResultFromItem builds a SearchResult for an item with the given score.
func ResultFromItem(item Item, score float64) SearchResult {
	r := SearchResult{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Tags:        item.Tags,
		Similarity:  score,
		Source:      item.ItemSource(),
	}
	switch item.Kind {
	case KindSkill:
		r.AttachmentCount = item.AttachmentCount
	case KindWorkflow:
		r.StageCount = item.StageCount
	}
	return r
}
