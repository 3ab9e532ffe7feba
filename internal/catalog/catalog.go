package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"foodbot/models"
	"foodbot/pkg/logger"
	"foodbot/repository"
)

// Onion is the removable component attached to allow-listed dishes.
var Onion = models.RemovableComponent{ID: "onion", Name: "Лук"}

// onionDishes is the fixed set of dish names that offer the "no onion"
// option. This is a business rule of the creation logic, not a user flag.
var onionDishes = map[string]bool{
	"Гамбургер":         true,
	"Шаурма на тарелке": true,
	"Сендвич":           true,
}

// Stats summarizes the catalog for the admin panel.
type Stats struct {
	Total      int
	ByCategory map[models.Category]int
}

// Service owns the product/ingredient catalog. Reads are served from an
// in-memory mirror of the database which is refreshed after every
// successful write, so request handlers never hit storage for a listing.
type Service struct {
	repo             repository.MenuRepositoryI
	log              *logger.Logger
	defaultAdditions bool // new products snapshot the global ingredient set

	mu          sync.RWMutex
	menu        *models.Menu
	ingredients []models.Ingredient
}

// NewService builds the catalog service and loads the initial mirror.
func NewService(ctx context.Context, repo repository.MenuRepositoryI, defaultAdditions bool, log *logger.Logger) (*Service, error) {
	s := &Service{
		repo:             repo,
		log:              log.WithComponent("catalog"),
		defaultAdditions: defaultAdditions,
		menu:             models.NewMenu(),
	}
	if err := s.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return s, nil
}

// Refresh reloads the in-memory mirror from storage.
func (s *Service) Refresh(ctx context.Context) error {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return err
	}
	ingredients, err := s.repo.ListIngredients(ctx)
	if err != nil {
		return err
	}
	menu := models.NewMenu()
	for _, p := range products {
		menu.Append(p)
	}
	s.mu.Lock()
	s.menu = menu
	s.ingredients = ingredients
	s.mu.Unlock()
	return nil
}

// Menu returns the categorized catalog. The returned value is a snapshot;
// callers must not mutate the product slices.
func (s *Service) Menu() *models.Menu {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.menu
}

// Ingredients returns the global ingredient catalog.
func (s *Service) Ingredients() []models.Ingredient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ingredients
}

// Stats returns product counts for the admin stats panel.
func (s *Service) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Stats{ByCategory: map[models.Category]int{}}
	for _, c := range models.Categories {
		n := len(s.menu.Items(c))
		st.ByCategory[c] = n
		st.Total += n
	}
	return st
}

// AddProduct creates a product in a category. Dishes on the onion
// allow-list automatically carry the removable onion entry. When the
// catalog-wide default is enabled, the current ingredient set becomes the
// product's additions.
func (s *Service) AddProduct(ctx context.Context, category models.Category, name string, price float64, description, photoURL, photoID string) (*models.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.Validationf("product name is required")
	}
	if price < 0 {
		return nil, models.Validationf("price must be non-negative")
	}

	p := &models.Product{
		Category:    category,
		Name:        name,
		Price:       price,
		Description: strings.TrimSpace(description),
		PhotoURL:    photoURL,
		PhotoID:     photoID,
		Additions:   []models.Ingredient{},
		Removable:   []models.RemovableComponent{},
	}
	if s.defaultAdditions {
		p.Additions = append(p.Additions, s.Ingredients()...)
	}
	if onionDishes[name] {
		p.Removable = append(p.Removable, Onion)
	}

	created, err := s.repo.InsertProduct(ctx, p)
	if err != nil {
		return nil, err
	}
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	s.log.Info("product added", "id", created.ID, "category", category, "name", name)
	return created, nil
}

// RemoveProduct deletes a product by category and id. Removing an absent
// product is a silent no-op.
func (s *Service) RemoveProduct(ctx context.Context, category models.Category, id int64) error {
	if err := s.repo.DeleteProduct(ctx, category, id); err != nil {
		return err
	}
	if err := s.Refresh(ctx); err != nil {
		return err
	}
	s.log.Info("product removed", "id", id, "category", category)
	return nil
}

// RemoveProductByName deletes products by category and name, as the chat
// removal keyboard addresses them. Idempotent.
func (s *Service) RemoveProductByName(ctx context.Context, category models.Category, name string) error {
	if err := s.repo.DeleteProductByName(ctx, category, name); err != nil {
		return err
	}
	if err := s.Refresh(ctx); err != nil {
		return err
	}
	s.log.Info("product removed", "name", name, "category", category)
	return nil
}

// AddIngredient creates a global ingredient with a collision-free id.
func (s *Service) AddIngredient(ctx context.Context, name string, price float64) (*models.Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.Validationf("ingredient name is required")
	}
	if price < 0 {
		return nil, models.Validationf("price must be non-negative")
	}
	ing := &models.Ingredient{ID: uuid.NewString(), Name: name, Price: price}
	if err := s.repo.InsertIngredient(ctx, ing); err != nil {
		return nil, err
	}
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	s.log.Info("ingredient added", "id", ing.ID, "name", name)
	return ing, nil
}

// RemoveIngredient deletes an ingredient by id. Idempotent.
func (s *Service) RemoveIngredient(ctx context.Context, id string) error {
	if err := s.repo.DeleteIngredient(ctx, id); err != nil {
		return err
	}
	if err := s.Refresh(ctx); err != nil {
		return err
	}
	s.log.Info("ingredient removed", "id", id)
	return nil
}

// ParsePrice validates a user-supplied price string.
func ParsePrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, models.Validationf(fmt.Sprintf("invalid price %q", strings.TrimSpace(raw)))
	}
	if price < 0 {
		return 0, models.Validationf("price must be non-negative")
	}
	return price, nil
}
