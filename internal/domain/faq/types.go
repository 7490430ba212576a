package faq

// DefaultDepartment is assigned when an entry carries no usable department label.
const DefaultDepartment = "General"

// Entry is a curated FAQ item. The embedding is always derived from Question
// and never supplied by callers.
type Entry struct {
	ID         int64  `json:"id" yaml:"id"`
	Question   string `json:"question" yaml:"question"`
	Answer     string `json:"answer" yaml:"answer"`
	Department string `json:"department" yaml:"department"`
}

// Result is a ranked match for a query. Score is cosine similarity, higher is
// closer, nominal range [-1, 1]. Backends that natively report another
// convention convert before returning hits.
type Result struct {
	ID         int64   `json:"id"`
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Department string  `json:"department"`
	Score      float64 `json:"score"`
}

// QA is the display projection of an entry inside a department group.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Group collects the questions of one department in stable order.
type Group struct {
	Department string `json:"department"`
	Items      []QA   `json:"items"`
}
