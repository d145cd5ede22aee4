package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TriviaAPIClient integrates with the-trivia-api.com. The API key is optional
// and usually comes from TRIVIA_API_KEY.
type TriviaAPIClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewTriviaAPIClient(baseURL, apiKey string, httpClient *http.Client) *TriviaAPIClient {
	if baseURL == "" {
		baseURL = "https://the-trivia-api.com/api"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &TriviaAPIClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

type triviaAPIQuestion struct {
	ID         string   `json:"id"`
	Category   string   `json:"category"`
	Question   string   `json:"question"`
	Difficulty string   `json:"difficulty"`
	Type       string   `json:"type"`
	Correct    string   `json:"correctAnswer"`
	Incorrect  []string `json:"incorrectAnswers"`
}

// Fetch asks for amount questions. Empty difficulty means any.
func (c *TriviaAPIClient) Fetch(ctx context.Context, amount int, difficulty string) ([]Question, error) {
	values := url.Values{}
	values.Set("limit", fmt.Sprint(amount))
	if difficulty != "" {
		values.Set("difficulty", difficulty)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/questions?%s", c.baseURL, values.Encode()), nil)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("triviaapi request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("triviaapi non-200: %d", resp.StatusCode)
	}

	var payload []triviaAPIQuestion
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("triviaapi decode: %w", err)
	}

	out := make([]Question, 0, len(payload))
	for _, q := range payload {
		incorrect := make([]string, 0, len(q.Incorrect))
		for _, a := range q.Incorrect {
			incorrect = append(incorrect, decodeText(a))
		}
		out = append(out, Question{
			Category:         triviaAPICategory(q.Category),
			Difficulty:       strings.ToLower(strings.TrimSpace(q.Difficulty)),
			Question:         decodeText(q.Question),
			CorrectAnswer:    decodeText(q.Correct),
			IncorrectAnswers: incorrect,
		})
	}
	return out, nil
}

// triviaAPICategory turns slugs such as "science_and_nature" into
// "Science And Nature"; already readable names pass through trimmed.
func triviaAPICategory(raw string) string {
	raw = decodeText(raw)
	if !strings.Contains(raw, "_") {
		return raw
	}
	words := strings.Split(raw, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
