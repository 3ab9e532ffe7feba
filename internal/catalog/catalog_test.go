package catalog

import (
	"context"
	"testing"

	"foodbot/internal/testutil"
	"foodbot/models"
	"foodbot/pkg/logger"
	"foodbot/repository"
)

func newTestService(t *testing.T, name string, defaultAdditions bool) *Service {
	t.Helper()
	d := testutil.OpenInMemoryDB(t, name)
	repo := repository.NewMenuRepository(d)
	s, err := NewService(context.Background(), repo, defaultAdditions, logger.New(logger.DefaultConfig()))
	if err != nil {
		t.Fatalf("new catalog service: %v", err)
	}
	return s
}

func TestAddProductAttachesRemovableOnion(t *testing.T) {
	s := newTestService(t, "catalog_onion", true)
	ctx := context.Background()

	burger, err := s.AddProduct(ctx, models.CategoryMainMenu, "Гамбургер", 200, "Классический", "", "")
	if err != nil {
		t.Fatalf("add burger: %v", err)
	}
	if len(burger.Removable) != 1 || burger.Removable[0].ID != "onion" {
		t.Errorf("burger should carry removable onion, got %+v", burger.Removable)
	}

	cola, err := s.AddProduct(ctx, models.CategoryDrinks, "Кола", 100, "", "", "")
	if err != nil {
		t.Fatalf("add cola: %v", err)
	}
	if len(cola.Removable) != 0 {
		t.Errorf("cola should have no removable components, got %+v", cola.Removable)
	}
}

func TestAddProductSnapshotsIngredientCatalog(t *testing.T) {
	s := newTestService(t, "catalog_snapshot", true)
	ctx := context.Background()

	if _, err := s.AddIngredient(ctx, "Сыр", 40); err != nil {
		t.Fatalf("add ingredient: %v", err)
	}
	if _, err := s.AddIngredient(ctx, "Бекон", 40); err != nil {
		t.Fatalf("add ingredient: %v", err)
	}

	p, err := s.AddProduct(ctx, models.CategorySnacks, "Чипсы", 150, "", "", "")
	if err != nil {
		t.Fatalf("add product: %v", err)
	}
	if len(p.Additions) != 2 {
		t.Errorf("expected the product to snapshot 2 ingredients, got %d", len(p.Additions))
	}

	// Ingredients added later do not retroactively change existing products.
	if _, err := s.AddIngredient(ctx, "Халапеньо", 40); err != nil {
		t.Fatalf("add ingredient: %v", err)
	}
	for _, item := range s.Menu().Snacks {
		if item.ID == p.ID && len(item.Additions) != 2 {
			t.Errorf("existing product gained additions retroactively: %d", len(item.Additions))
		}
	}
}

func TestAddProductWithoutDefaultAdditions(t *testing.T) {
	s := newTestService(t, "catalog_noadd", false)
	ctx := context.Background()

	if _, err := s.AddIngredient(ctx, "Сыр", 40); err != nil {
		t.Fatalf("add ingredient: %v", err)
	}
	p, err := s.AddProduct(ctx, models.CategorySnacks, "Сухарики", 150, "", "", "")
	if err != nil {
		t.Fatalf("add product: %v", err)
	}
	if len(p.Additions) != 0 {
		t.Errorf("expected no default additions, got %d", len(p.Additions))
	}
}

func TestRemoveProductIsIdempotent(t *testing.T) {
	s := newTestService(t, "catalog_remove", true)
	ctx := context.Background()

	p, err := s.AddProduct(ctx, models.CategorySauces, "Кетчуп", 50, "", "", "")
	if err != nil {
		t.Fatalf("add product: %v", err)
	}
	if err := s.RemoveProduct(ctx, models.CategorySauces, p.ID); err != nil {
		t.Fatalf("first remove: %v", err)
	}
	if err := s.RemoveProduct(ctx, models.CategorySauces, p.ID); err != nil {
		t.Fatalf("second remove: %v", err)
	}
	if got := s.Menu().Total(); got != 0 {
		t.Errorf("expected empty menu, got %d products", got)
	}
}

func TestMenuMirrorRefreshesOnWrites(t *testing.T) {
	s := newTestService(t, "catalog_mirror", true)
	ctx := context.Background()

	if s.Menu().Total() != 0 {
		t.Fatal("expected an empty initial menu")
	}
	if _, err := s.AddProduct(ctx, models.CategoryDrinks, "Фанта", 100, "", "", ""); err != nil {
		t.Fatalf("add product: %v", err)
	}
	if got := len(s.Menu().Drinks); got != 1 {
		t.Errorf("mirror not refreshed after write: %d drinks", got)
	}
	st := s.Stats()
	if st.Total != 1 || st.ByCategory[models.CategoryDrinks] != 1 {
		t.Errorf("unexpected stats: %+v", st)
	}
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"40", 40, false},
		{" 150 ", 150, false},
		{"49.90", 49.9, false},
		{"дорого", 0, true},
		{"", 0, true},
		{"-5", 0, true},
	}
	for _, tc := range cases {
		got, err := ParsePrice(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParsePrice(%q): expected error", tc.in)
			} else if !models.IsValidation(err) {
				t.Errorf("ParsePrice(%q): expected ValidationError, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePrice(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParsePrice(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
