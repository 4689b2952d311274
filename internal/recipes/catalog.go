// Package recipes serves recipe listings with a short-lived search cache so
// typing in the search box does not hit the backend on every keystroke.
package recipes

import (
	"context"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/nhle/munchie/internal/model"
)

// DefaultTTL is how long a search result stays fresh.
const DefaultTTL = 30 * time.Second

// allKey caches the unfiltered listing.
const allKey = "\x00all"

// Searcher is the recipe part of the API client.
type Searcher interface {
	ListRecipes(ctx context.Context) ([]model.Recipe, error)
	SearchRecipes(ctx context.Context, keyword string) ([]model.Recipe, error)
}

// Catalog caches recipe queries per normalised keyword.
type Catalog struct {
	backend Searcher
	cache   *cache.Cache
	log     logrus.FieldLogger
}

// NewCatalog creates a Catalog whose entries expire after ttl.
func NewCatalog(backend Searcher, ttl time.Duration, log logrus.FieldLogger) *Catalog {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Catalog{
		backend: backend,
		cache:   cache.New(ttl, 2*ttl),
		log:     log,
	}
}

// Search returns recipes matching keyword. A blank keyword lists every
// recipe.
func (c *Catalog) Search(ctx context.Context, keyword string) ([]model.Recipe, error) {
	key := normalise(keyword)
	cacheKey := key
	if key == "" {
		cacheKey = allKey
	}

	if cached, found := c.cache.Get(cacheKey); found {
		return cached.([]model.Recipe), nil
	}

	var (
		recipes []model.Recipe
		err     error
	)
	if key == "" {
		recipes, err = c.backend.ListRecipes(ctx)
	} else {
		recipes, err = c.backend.SearchRecipes(ctx, key)
	}
	if err != nil {
		return nil, err
	}

	c.log.WithFields(logrus.Fields{"keyword": key, "count": len(recipes)}).Debug("recipes fetched")
	c.cache.Set(cacheKey, recipes, cache.DefaultExpiration)
	return recipes, nil
}

// Invalidate drops every cached result, e.g. after a recipe is created.
func (c *Catalog) Invalidate() {
	c.cache.Flush()
}

// Cached reports how many results are currently held.
func (c *Catalog) Cached() int {
	return c.cache.ItemCount()
}

func normalise(keyword string) string {
	return strings.ToLower(strings.Join(strings.Fields(keyword), " "))
}
