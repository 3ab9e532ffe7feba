package repository

import (
	"context"
	"testing"
	"time"

	"foodbot/internal/testutil"
	"foodbot/models"
)

func TestProductRoundTrip(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "menu_roundtrip")
	repo := NewMenuRepository(d)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	p := &models.Product{
		Category:    models.CategoryMainMenu,
		Name:        "Гамбургер",
		Price:       200,
		Description: "Классический",
		PhotoURL:    "http://localhost:8000/images/x.jpg",
		Additions: []models.Ingredient{
			{ID: "cheese", Name: "Сыр", Price: 40},
			{ID: "bacon", Name: "Бекон", Price: 40},
		},
		Removable: []models.RemovableComponent{
			{ID: "onion", Name: "Лук"},
		},
	}
	created, err := repo.InsertProduct(ctx, p)
	if err != nil {
		t.Fatalf("insert product: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected an assigned id")
	}

	list, err := repo.ListProducts(ctx)
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 product, got %d", len(list))
	}
	got := list[0]
	if got.Name != "Гамбургер" || got.Price != 200 || got.Category != models.CategoryMainMenu {
		t.Errorf("unexpected product: %+v", got)
	}
	if len(got.Additions) != 2 {
		t.Errorf("expected 2 additions, got %d", len(got.Additions))
	}
	if len(got.Removable) != 1 || got.Removable[0].ID != "onion" {
		t.Errorf("expected removable onion, got %+v", got.Removable)
	}
}

func TestDeleteProductIsIdempotent(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "menu_delete")
	repo := NewMenuRepository(d)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, err := repo.InsertProduct(ctx, &models.Product{
		Category: models.CategoryDrinks,
		Name:     "Кола",
		Price:    100,
	})
	if err != nil {
		t.Fatalf("insert product: %v", err)
	}

	if err := repo.DeleteProduct(ctx, models.CategoryDrinks, created.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	// Second delete of the same id must succeed silently.
	if err := repo.DeleteProduct(ctx, models.CategoryDrinks, created.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	list, err := repo.ListProducts(ctx)
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty catalog, got %d products", len(list))
	}
}

func TestDeleteProductByName(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "menu_delete_name")
	repo := NewMenuRepository(d)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, name := range []string{"Сендвич", "Кола"} {
		if _, err := repo.InsertProduct(ctx, &models.Product{
			Category: models.CategorySnacks,
			Name:     name,
			Price:    150,
		}); err != nil {
			t.Fatalf("insert %s: %v", name, err)
		}
	}

	if err := repo.DeleteProductByName(ctx, models.CategorySnacks, "Сендвич"); err != nil {
		t.Fatalf("delete by name: %v", err)
	}
	list, err := repo.ListProducts(ctx)
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Кола" {
		t.Errorf("expected only Кола to remain, got %+v", list)
	}

	// Deleting from the wrong category touches nothing.
	if err := repo.DeleteProductByName(ctx, models.CategoryDrinks, "Кола"); err != nil {
		t.Fatalf("delete wrong category: %v", err)
	}
	list, _ = repo.ListProducts(ctx)
	if len(list) != 1 {
		t.Errorf("cross-category delete removed a product")
	}
}

func TestIngredientRoundTrip(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "menu_ingredients")
	repo := NewMenuRepository(d)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := repo.InsertIngredient(ctx, &models.Ingredient{ID: "cheese", Name: "Сыр", Price: 40}); err != nil {
		t.Fatalf("insert ingredient: %v", err)
	}
	if err := repo.InsertIngredient(ctx, &models.Ingredient{ID: "bacon", Name: "Бекон", Price: 40}); err != nil {
		t.Fatalf("insert ingredient: %v", err)
	}

	list, err := repo.ListIngredients(ctx)
	if err != nil {
		t.Fatalf("list ingredients: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 ingredients, got %d", len(list))
	}

	if err := repo.DeleteIngredient(ctx, "cheese"); err != nil {
		t.Fatalf("delete ingredient: %v", err)
	}
	// Repeat delete is a no-op.
	if err := repo.DeleteIngredient(ctx, "cheese"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	list, _ = repo.ListIngredients(ctx)
	if len(list) != 1 || list[0].ID != "bacon" {
		t.Errorf("expected only bacon to remain, got %+v", list)
	}
}
