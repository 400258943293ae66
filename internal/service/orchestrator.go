package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/forkcast/backend/internal/models"
)

// generationOutcome is the typed result of one generator run. Making
// partial failure a value, rather than a swallowed error, is what lets
// the orchestrator aggregate successes while siblings fail.
type generationOutcome struct {
	channel    models.Channel
	candidates []Candidate
	err        error
}

// Orchestrator drives a full regeneration run: profile and favorites
// load, concurrent generator fan-out, catalog merge, and
// recommendation upserts.
type Orchestrator struct {
	profiles        ProfileProvider
	favorites       FavoritesProvider
	catalog         ICatalogService
	recommendations IRecommendationService
	generators      []Generator
}

var _ IOrchestrator = (*Orchestrator)(nil)

// NewOrchestrator creates an Orchestrator over the given generators.
func NewOrchestrator(
	profiles ProfileProvider,
	favorites FavoritesProvider,
	catalog ICatalogService,
	recommendations IRecommendationService,
	generators []Generator,
) *Orchestrator {
	return &Orchestrator{
		profiles:        profiles,
		favorites:       favorites,
		catalog:         catalog,
		recommendations: recommendations,
		generators:      generators,
	}
}

// Refresh regenerates all channels for a user. A user without a profile
// is a silent no-op. Generator failures degrade their channel to empty
// output; storage failures skip the one candidate. The only error
// Refresh returns is a failed precondition read.
func (o *Orchestrator) Refresh(ctx context.Context, userID uuid.UUID) error {
	profile, err := o.profiles.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			log.Printf("refresh skipped: no profile for user %s", userID)
			return nil
		}
		return fmt.Errorf("failed to load profile for user %s: %w", userID, err)
	}

	favorites, err := o.favorites.GetFavorites(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load favorites for user %s: %w", userID, err)
	}

	outcomes := make([]generationOutcome, len(o.generators))
	var wg sync.WaitGroup
	for i, gen := range o.generators {
		wg.Add(1)
		go func(i int, gen Generator) {
			defer wg.Done()
			outcomes[i] = runGenerator(ctx, gen, userID, profile, favorites)
		}(i, gen)
	}
	wg.Wait()

	for _, outcome := range outcomes {
		if outcome.err != nil {
			log.Printf("generator %s failed for user %s: %v", outcome.channel, userID, outcome.err)
			continue
		}
		o.persistCandidates(ctx, userID, outcome)
	}
	return nil
}

// runGenerator executes one generator, converting panics into the
// channel's failure outcome so a bad generator cannot take down the
// refresh.
func runGenerator(ctx context.Context, gen Generator, userID uuid.UUID, profile *models.UserProfile, favorites []string) (outcome generationOutcome) {
	outcome.channel = gen.Channel()
	defer func() {
		if r := recover(); r != nil {
			outcome.candidates = nil
			outcome.err = fmt.Errorf("generator panic: %v", r)
		}
	}()
	outcome.candidates, outcome.err = gen.Generate(ctx, userID, profile, favorites)
	return outcome
}

// persistCandidates writes each candidate's recipe before its
// recommendation row so a link can never dangle. Failures are
// per-candidate.
func (o *Orchestrator) persistCandidates(ctx context.Context, userID uuid.UUID, outcome generationOutcome) {
	for _, c := range outcome.candidates {
		if c.Recipe != nil {
			if err := o.catalog.UpsertRecipe(ctx, c.Recipe); err != nil {
				log.Printf("failed to upsert recipe %s (%s): %v", c.RecipeID, outcome.channel, err)
				continue
			}
		}
		if err := o.recommendations.Upsert(ctx, userID, c.RecipeID, outcome.channel, c.Score, c.Reason); err != nil {
			log.Printf("failed to upsert recommendation %s/%s (%s): %v", userID, c.RecipeID, outcome.channel, err)
		}
	}
}
