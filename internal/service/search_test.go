package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkcast/backend/config"
)

func newSearchClient(t *testing.T, handler http.Handler) *SpoonacularClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewSpoonacularClient(&config.Config{
		SpoonacularAPIKey: "test-key",
		SpoonacularAPIURL: server.URL,
	}, nil)
}

func TestSearchBuildsProviderQuery(t *testing.T) {
	var gotQuery map[string]string
	client := newSearchClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/recipes/complexSearch", r.URL.Path)
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]interface{}{
				{
					"id":             316,
					"title":          "Chickpea Curry",
					"summary":        "<p>Warming and fast.</p>",
					"readyInMinutes": 35,
					"servings":       4,
					"cuisines":       []string{"Indian"},
					"extendedIngredients": []map[string]string{
						{"original": "1 can chickpeas"},
					},
					"analyzedInstructions": []map[string]interface{}{
						{"steps": []map[string]string{{"step": "Simmer everything."}}},
					},
				},
			},
		})
	}))

	results, err := client.Search(context.Background(), SearchParams{
		Query:        "curry",
		Diet:         "vegan",
		Intolerances: []string{"peanut", "soy"},
		MaxReadyTime: 60,
		Number:       5,
	})
	require.NoError(t, err)

	assert.Equal(t, "test-key", gotQuery["apiKey"])
	assert.Equal(t, "curry", gotQuery["query"])
	assert.Equal(t, "vegan", gotQuery["diet"])
	assert.Equal(t, "peanut,soy", gotQuery["intolerances"])
	assert.Equal(t, "60", gotQuery["maxReadyTime"])
	assert.Equal(t, "5", gotQuery["number"])

	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, 316, r.ID)
	assert.Equal(t, []string{"1 can chickpeas"}, r.Ingredients)
	assert.Equal(t, []string{"Simmer everything."}, r.Instructions)
}

func TestSearchFetchesMissingDetails(t *testing.T) {
	client := newSearchClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/recipes/complexSearch":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"results": []map[string]interface{}{
					{"id": 9, "title": "Bare Result", "readyInMinutes": 20},
				},
			})
		case "/recipes/9/information":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"id":    9,
				"title": "Bare Result",
				"analyzedInstructions": []map[string]interface{}{
					{"steps": []map[string]string{{"step": "Mix."}, {"step": "Bake."}}},
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))

	results, err := client.Search(context.Background(), SearchParams{Query: "bare"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, []string{"Mix.", "Bake."}, results[0].Instructions)
}

func TestSearchDetailFailureFallsBack(t *testing.T) {
	client := newSearchClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/recipes/complexSearch" {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"results": []map[string]interface{}{
					{"id": 9, "title": "Bare Result", "readyInMinutes": 20},
				},
			})
			return
		}
		http.Error(w, "upstream error", http.StatusBadGateway)
	}))

	results, err := client.Search(context.Background(), SearchParams{Query: "bare"})
	require.NoError(t, err, "a failed detail fetch keeps the un-detailed record")
	require.Len(t, results, 1)
	assert.Empty(t, results[0].Instructions)
}

func TestSearchPropagatesProviderFailure(t *testing.T) {
	client := newSearchClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusPaymentRequired)
	}))

	_, err := client.Search(context.Background(), SearchParams{Query: "anything"})
	assert.Error(t, err)
}
