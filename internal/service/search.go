package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/forkcast/backend/config"
)

const (
	searchRequestTimeout = 10 * time.Second
	searchCacheTTL       = 10 * time.Minute
	// detailFetchWorkers bounds the per-result detail fan-out so a slow
	// provider cannot exhaust connections.
	detailFetchWorkers = 4
)

// SpoonacularClient calls the external recipe-search API. Raw search
// responses are cached in Redis because the provider is rate-limited
// and the same query recurs across refresh runs.
type SpoonacularClient struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
	redis      *redis.Client
}

var _ RecipeSearcher = (*SpoonacularClient)(nil)

// NewSpoonacularClient creates a search client. redisClient may be nil,
// in which case responses are not cached.
func NewSpoonacularClient(cfg *config.Config, redisClient *redis.Client) *SpoonacularClient {
	apiURL := cfg.SpoonacularAPIURL
	if apiURL == "" {
		apiURL = "https://api.spoonacular.com"
	}
	return &SpoonacularClient{
		apiKey:     cfg.SpoonacularAPIKey,
		apiURL:     strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{Timeout: searchRequestTimeout},
		redis:      redisClient,
	}
}

// complexSearchResponse mirrors the provider's search envelope.
type complexSearchResponse struct {
	Results []rawRecipe `json:"results"`
}

type rawRecipe struct {
	ID                   int             `json:"id"`
	Title                string          `json:"title"`
	Summary              string          `json:"summary"`
	Image                string          `json:"image"`
	ReadyInMinutes       int             `json:"readyInMinutes"`
	Servings             int             `json:"servings"`
	Cuisines             []string        `json:"cuisines"`
	Diets                []string        `json:"diets"`
	DishTypes            []string        `json:"dishTypes"`
	ExtendedIngredients  []rawIngredient `json:"extendedIngredients"`
	AnalyzedInstructions []rawInstrSet   `json:"analyzedInstructions"`
}

type rawIngredient struct {
	Original string `json:"original"`
}

type rawInstrSet struct {
	Steps []rawStep `json:"steps"`
}

type rawStep struct {
	Step string `json:"step"`
}

func (r rawRecipe) toSearchResult() SearchResult {
	res := SearchResult{
		ID:             r.ID,
		Title:          r.Title,
		Summary:        r.Summary,
		Image:          r.Image,
		ReadyInMinutes: r.ReadyInMinutes,
		Servings:       r.Servings,
		Cuisines:       r.Cuisines,
		Diets:          r.Diets,
		DishTypes:      r.DishTypes,
	}
	for _, ing := range r.ExtendedIngredients {
		res.Ingredients = append(res.Ingredients, ing.Original)
	}
	for _, set := range r.AnalyzedInstructions {
		for _, step := range set.Steps {
			res.Instructions = append(res.Instructions, step.Step)
		}
	}
	return res
}

// Search runs a complex search against the provider. Results missing
// instructions get a bounded parallel detail fetch; a failed detail
// fetch falls back to the un-detailed record.
func (c *SpoonacularClient) Search(ctx context.Context, params SearchParams) ([]SearchResult, error) {
	cacheKey := searchCacheKey(params)
	if cached, ok := c.cacheGet(ctx, cacheKey); ok {
		return cached, nil
	}

	q := url.Values{}
	q.Set("apiKey", c.apiKey)
	q.Set("query", params.Query)
	q.Set("addRecipeInformation", "true")
	q.Set("fillIngredients", "true")
	if params.Diet != "" {
		q.Set("diet", params.Diet)
	}
	if params.Cuisine != "" {
		q.Set("cuisine", params.Cuisine)
	}
	if len(params.Intolerances) > 0 {
		q.Set("intolerances", strings.Join(params.Intolerances, ","))
	}
	if params.MaxReadyTime > 0 {
		q.Set("maxReadyTime", strconv.Itoa(params.MaxReadyTime))
	}
	number := params.Number
	if number <= 0 {
		number = 10
	}
	q.Set("number", strconv.Itoa(number))

	var envelope complexSearchResponse
	if err := c.getJSON(ctx, "/recipes/complexSearch?"+q.Encode(), &envelope); err != nil {
		return nil, fmt.Errorf("recipe search failed: %w", err)
	}

	results := make([]SearchResult, len(envelope.Results))
	for i, raw := range envelope.Results {
		results[i] = raw.toSearchResult()
	}
	c.fetchMissingDetails(ctx, results)

	c.cacheSet(ctx, cacheKey, results)
	return results, nil
}

// fetchMissingDetails fills in instructions/ingredients for results
// the search response returned bare. Each lookup is independent and a
// failure leaves that result as-is.
func (c *SpoonacularClient) fetchMissingDetails(ctx context.Context, results []SearchResult) {
	sem := make(chan struct{}, detailFetchWorkers)
	var wg sync.WaitGroup
	for i := range results {
		if len(results[i].Instructions) > 0 {
			continue
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(res *SearchResult) {
			defer wg.Done()
			defer func() { <-sem }()

			q := url.Values{}
			q.Set("apiKey", c.apiKey)
			var raw rawRecipe
			path := fmt.Sprintf("/recipes/%d/information?%s", res.ID, q.Encode())
			if err := c.getJSON(ctx, path, &raw); err != nil {
				log.Printf("recipe detail fetch failed for %d: %v", res.ID, err)
				return
			}
			detailed := raw.toSearchResult()
			if len(detailed.Instructions) > 0 {
				res.Instructions = detailed.Instructions
			}
			if len(res.Ingredients) == 0 {
				res.Ingredients = detailed.Ingredients
			}
		}(&results[i])
	}
	wg.Wait()
}

func (c *SpoonacularClient) getJSON(ctx context.Context, path string, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, searchRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func searchCacheKey(params SearchParams) string {
	payload, _ := json.Marshal(params)
	sum := sha256.Sum256(payload)
	return "search:" + hex.EncodeToString(sum[:])
}

func (c *SpoonacularClient) cacheGet(ctx context.Context, key string) ([]SearchResult, bool) {
	if c.redis == nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var results []SearchResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, false
	}
	return results, true
}

func (c *SpoonacularClient) cacheSet(ctx context.Context, key string, results []SearchResult) {
	if c.redis == nil {
		return
	}
	data, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, searchCacheTTL).Err(); err != nil {
		log.Printf("failed to cache search response: %v", err)
	}
}
