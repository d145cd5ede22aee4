package external

// Question is one upstream trivia row, normalised across sources: text is
// entity-decoded and trimmed, difficulty is the source's easy/medium/hard label.
type Question struct {
	Category         string
	Difficulty       string
	Question         string
	CorrectAnswer    string
	IncorrectAnswers []string
}
