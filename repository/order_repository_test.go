package repository

import (
	"context"
	"testing"
	"time"

	"foodbot/internal/testutil"
	"foodbot/models"
)

func testOrder() *models.Order {
	return &models.Order{
		UserID:       12345,
		TotalPrice:   480,
		DeliveryType: models.DeliveryTypeDelivery,
		Address:      "ул. Ленина, 1",
		Phone:        "+79990001122",
		Items: []models.OrderItem{
			{
				ProductID:  1,
				Name:       "Гамбургер",
				Quantity:   2,
				FinalPrice: 480,
				Added:      []models.Ingredient{{ID: "cheese", Name: "Сыр", Price: 40}},
				Removed:    []models.RemovableComponent{{ID: "onion", Name: "Лук"}},
			},
		},
	}
}

func TestOrderCreateAndGet(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "orders_create")
	repo := NewOrderRepository(d)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, err := repo.Create(ctx, testOrder())
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected an assigned id")
	}
	if created.Status != models.OrderStatusNew {
		t.Errorf("expected status new, got %s", created.Status)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if got == nil {
		t.Fatal("order not found after create")
	}
	if len(got.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got.Items))
	}
	item := got.Items[0]
	if item.Name != "Гамбургер" || item.Quantity != 2 || item.FinalPrice != 480 {
		t.Errorf("unexpected item: %+v", item)
	}
	if len(item.Added) != 1 || item.Added[0].Name != "Сыр" {
		t.Errorf("added ingredients lost in round trip: %+v", item.Added)
	}
	if len(item.Removed) != 1 || item.Removed[0].ID != "onion" {
		t.Errorf("removed components lost in round trip: %+v", item.Removed)
	}
}

func TestGetByIDMissing(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "orders_missing")
	repo := NewOrderRepository(d)

	o, err := repo.GetByID(context.Background(), 404)
	if err != nil {
		t.Fatalf("get missing order: %v", err)
	}
	if o != nil {
		t.Errorf("expected nil for missing order, got %+v", o)
	}
}

func TestStatusTransitionIsOneWay(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "orders_status")
	repo := NewOrderRepository(d)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, err := repo.Create(ctx, testOrder())
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	changed, err := repo.UpdateStatusIfNew(ctx, created.ID, models.OrderStatusAccepted)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if !changed {
		t.Fatal("expected the first transition to apply")
	}

	// A later reject must be a no-op.
	changed, err = repo.UpdateStatusIfNew(ctx, created.ID, models.OrderStatusRejected)
	if err != nil {
		t.Fatalf("reject after accept: %v", err)
	}
	if changed {
		t.Fatal("transition applied twice")
	}

	got, _ := repo.GetByID(ctx, created.ID)
	if got.Status != models.OrderStatusAccepted {
		t.Errorf("expected status accepted, got %s", got.Status)
	}
}

func TestCount(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "orders_count")
	repo := NewOrderRepository(d)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected empty ledger, got %d", n)
	}
	if _, err := repo.Create(ctx, testOrder()); err != nil {
		t.Fatalf("create order: %v", err)
	}
	n, _ = repo.Count(ctx)
	if n != 1 {
		t.Errorf("expected 1 order, got %d", n)
	}
}
