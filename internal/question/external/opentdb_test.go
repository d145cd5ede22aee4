package external

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenTDBClient_FetchDecodesEntities(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api.php", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("amount"))
		assert.Equal(t, "easy", r.URL.Query().Get("difficulty"))
		assert.Empty(t, r.URL.Query().Get("type"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response_code":0,"results":[
			{"category":"Entertainment: Books","type":"multiple","difficulty":"easy",
			 "question":"Who wrote &quot;Dune&quot;?","correct_answer":"Frank Herbert",
			 "incorrect_answers":["Isaac Asimov","Arthur C. Clarke","Ursula K. Le Guin"]},
			{"category":"Science &amp; Nature","type":"boolean","difficulty":"easy",
			 "question":"Water boils at 100&deg;C at sea level.","correct_answer":"True",
			 "incorrect_answers":["False"]}
		]}`))
	}))
	defer srv.Close()

	client := NewOpenTDBClient(srv.URL+"/", srv.Client())
	got, err := client.Fetch(context.Background(), 2, "easy")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, `Who wrote "Dune"?`, got[0].Question)
	assert.Equal(t, "Science & Nature", got[1].Category)
	assert.Equal(t, "Water boils at 100°C at sea level.", got[1].Question)
	assert.Equal(t, []string{"False"}, got[1].IncorrectAnswers)
}

func TestOpenTDBClient_FetchErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "non-200", status: http.StatusServiceUnavailable, body: `{}`},
		{name: "response code", status: http.StatusOK, body: `{"response_code":1,"results":[]}`},
		{name: "bad json", status: http.StatusOK, body: `{"response_code":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewOpenTDBClient(srv.URL, srv.Client()).Fetch(context.Background(), 1, "")
			assert.Error(t, err)
		})
	}
}
