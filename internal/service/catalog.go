package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/forkcast/backend/internal/models"
)

const (
	trendingCacheKey = "catalog:trending"
	trendingCacheTTL = 5 * time.Minute
)

// ErrRecipeNotFound is returned when a catalog lookup misses.
var ErrRecipeNotFound = errors.New("recipe not found")

// CatalogService owns the shared recipe catalog. Channel-sourced
// recipes enter through UpsertRecipe with namespaced ids; user-authored
// recipes enter through CreateUserRecipe with UUID ids, so the two
// populations can never collide.
type CatalogService struct {
	db    *gorm.DB
	redis *redis.Client
}

var (
	_ ICatalogService  = (*CatalogService)(nil)
	_ TrendingProvider = (*CatalogService)(nil)
)

// NewCatalogService creates a CatalogService. redisClient may be nil
// to disable the trending cache.
func NewCatalogService(db *gorm.DB, redisClient *redis.Client) *CatalogService {
	return &CatalogService{db: db, redis: redisClient}
}

// UpsertRecipe writes a canonical recipe, replacing all fields on id
// conflict. Last write wins, which keeps externally sourced recipes
// fresh on each regeneration.
func (s *CatalogService) UpsertRecipe(ctx context.Context, recipe *models.Recipe) error {
	if recipe.ID == "" {
		return fmt.Errorf("recipe id is required")
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(recipe).Error
}

// GetRecipe retrieves a recipe by id.
func (s *CatalogService) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// ListRecipes lists catalog recipes, optionally filtered by a keyword
// query and cuisine.
func (s *CatalogService) ListRecipes(ctx context.Context, query, cuisine string) ([]models.Recipe, error) {
	var recipes []models.Recipe
	dbQuery := s.db.WithContext(ctx)
	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		dbQuery = dbQuery.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if cuisine != "" {
		dbQuery = dbQuery.Where("LOWER(cuisine) = ?", strings.ToLower(cuisine))
	}
	if err := dbQuery.Order("created_at DESC").Limit(50).Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// CreateUserRecipe stores a user-authored recipe under a fresh UUID id.
func (s *CatalogService) CreateUserRecipe(ctx context.Context, userID uuid.UUID, recipe *models.Recipe) (*models.Recipe, error) {
	recipe.ID = models.NewUserRecipeID()
	recipe.IsUserGenerated = true
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// GetTrending returns recipes ranked by aggregate engagement
// (rating weighted by rating volume). The ranking is user-independent,
// so it is cached briefly.
func (s *CatalogService) GetTrending(ctx context.Context, limit int) ([]models.Recipe, error) {
	if limit <= 0 {
		limit = 10
	}

	if s.redis != nil {
		if data, err := s.redis.Get(ctx, trendingCacheKey).Bytes(); err == nil {
			var cached []models.Recipe
			if json.Unmarshal(data, &cached) == nil {
				if len(cached) > limit {
					cached = cached[:limit]
				}
				return cached, nil
			}
		}
	}

	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Where("total_ratings > 0").
		Order("(rating * total_ratings) DESC, id ASC").
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}

	if s.redis != nil && len(recipes) > 0 {
		if data, err := json.Marshal(recipes); err == nil {
			if err := s.redis.Set(ctx, trendingCacheKey, data, trendingCacheTTL).Err(); err != nil {
				log.Printf("failed to cache trending recipes: %v", err)
			}
		}
	}
	return recipes, nil
}
