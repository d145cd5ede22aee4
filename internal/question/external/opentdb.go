// Package external talks to third-party trivia sources used to seed the store.
package external

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// OpenTDBClient fetches questions from the Open Trivia DB (no API key).
type OpenTDBClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewOpenTDBClient(baseURL string, httpClient *http.Client) *OpenTDBClient {
	if baseURL == "" {
		baseURL = "https://opentdb.com"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &OpenTDBClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

type openTDBQuestion struct {
	Category        string   `json:"category"`
	Type            string   `json:"type"`
	Difficulty      string   `json:"difficulty"`
	Question        string   `json:"question"`
	CorrectAnswer   string   `json:"correct_answer"`
	IncorrectAnswer []string `json:"incorrect_answers"`
}

type openTDBResponse struct {
	ResponseCode int               `json:"response_code"`
	Results      []openTDBQuestion `json:"results"`
}

// Fetch asks for amount questions (the API caps a call at 50). Empty
// difficulty means any.
func (c *OpenTDBClient) Fetch(ctx context.Context, amount int, difficulty string) ([]Question, error) {
	values := url.Values{}
	values.Set("amount", fmt.Sprint(amount))
	if difficulty != "" {
		values.Set("difficulty", difficulty)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api.php?%s", c.baseURL, values.Encode()), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("opentdb request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("opentdb non-200: %d", resp.StatusCode)
	}

	var payload openTDBResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("opentdb decode: %w", err)
	}
	if payload.ResponseCode != 0 {
		return nil, fmt.Errorf("opentdb response code %d", payload.ResponseCode)
	}

	out := make([]Question, 0, len(payload.Results))
	for _, r := range payload.Results {
		incorrect := make([]string, 0, len(r.IncorrectAnswer))
		for _, a := range r.IncorrectAnswer {
			incorrect = append(incorrect, decodeText(a))
		}
		out = append(out, Question{
			Category:         decodeText(r.Category),
			Difficulty:       r.Difficulty,
			Question:         decodeText(r.Question),
			CorrectAnswer:    decodeText(r.CorrectAnswer),
			IncorrectAnswers: incorrect,
		})
	}
	return out, nil
}

func decodeText(s string) string {
	return strings.TrimSpace(html.UnescapeString(s))
}
