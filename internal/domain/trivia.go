package domain

// Difficulty bounds accepted for a question.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Category groups questions under a unique display label.
type Category struct {
	ID   int    `json:"id" db:"id"`
	Type string `json:"type" db:"type"`
}

// Question is a single trivia item. Category holds the owning Category.ID.
type Question struct {
	ID         int    `json:"id" db:"id"`
	Question   string `json:"question" db:"question"`
	Answer     string `json:"answer" db:"answer"`
	Difficulty int    `json:"difficulty" db:"difficulty"`
	Category   int    `json:"category" db:"category"`
}

// NewQuestion carries validated fields for a question insert.
type NewQuestion struct {
	Question   string
	Answer     string
	Difficulty int
	Category   int
}

// CategoryMap indexes category labels by id, the shape clients use for lookups.
func CategoryMap(categories []Category) map[int]string {
	m := make(map[int]string, len(categories))
	for _, c := range categories {
		m[c.ID] = c.Type
	}
	return m
}
