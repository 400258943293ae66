package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forkcast/backend/internal/models"
	"github.com/forkcast/backend/internal/service"
)

// RecipeHandler serves catalog reads, user recipe creation and
// favorites.
type RecipeHandler struct {
	catalog   service.ICatalogService
	favorites *service.FavoritesService
}

// NewRecipeHandler creates a new RecipeHandler
func NewRecipeHandler(catalog service.ICatalogService, favorites *service.FavoritesService) *RecipeHandler {
	return &RecipeHandler{catalog: catalog, favorites: favorites}
}

// RegisterRoutes registers the recipe and favorites routes
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", h.CreateRecipe)
		recipes.POST("/:id/favorite", h.FavoriteRecipe)
		recipes.DELETE("/:id/favorite", h.UnfavoriteRecipe)
	}
	router.GET("/favorites", h.ListFavorites)
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.catalog.ListRecipes(c.Request.Context(), c.Query("q"), c.Query("cuisine"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.catalog.GetRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipe"})
		return
	}
	c.JSON(http.StatusOK, recipe)
}

type createRecipeRequest struct {
	Title           string   `json:"title" binding:"required"`
	Description     string   `json:"description"`
	Ingredients     []string `json:"ingredients" binding:"required,min=1"`
	Instructions    []string `json:"instructions" binding:"required,min=1"`
	CookTimeMinutes int      `json:"cook_time_minutes" binding:"required,gt=0"`
	Servings        int      `json:"servings" binding:"required,gt=0"`
	Difficulty      string   `json:"difficulty" binding:"omitempty,oneof=Easy Medium Hard"`
	Cuisine         string   `json:"cuisine"`
	ImageURL        string   `json:"image_url"`
	VideoURL        string   `json:"video_url"`
	Tags            []string `json:"tags"`
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req createRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe := &models.Recipe{
		Title:           req.Title,
		Description:     req.Description,
		Ingredients:     req.Ingredients,
		Instructions:    req.Instructions,
		CookTimeMinutes: req.CookTimeMinutes,
		Servings:        req.Servings,
		Difficulty:      req.Difficulty,
		Cuisine:         req.Cuisine,
		ImageURL:        req.ImageURL,
		VideoURL:        req.VideoURL,
		Tags:            req.Tags,
	}
	created, err := h.catalog.CreateUserRecipe(c.Request.Context(), userID, recipe)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create recipe"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"recipe": created})
}

func (h *RecipeHandler) FavoriteRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if _, err := h.catalog.GetRecipe(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	if err := h.favorites.AddFavorite(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to favorite recipe"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) UnfavoriteRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.favorites.RemoveFavorite(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unfavorite recipe"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) ListFavorites(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ids, err := h.favorites.GetFavorites(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch favorites"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": ids})
}
