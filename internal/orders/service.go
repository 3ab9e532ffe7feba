package orders

import (
	"context"
	"strings"

	"foodbot/internal/catalog"
	"foodbot/models"
	"foodbot/pkg/logger"
	"foodbot/repository"
)

// Notifier receives order lifecycle events. Delivery is best-effort: the
// order is already durably recorded when a notification goes out, and a
// failed send must never roll it back.
type Notifier interface {
	OrderCreated(ctx context.Context, o *models.Order)
	StatusChanged(ctx context.Context, o *models.Order)
}

// SubmitRequest is an order submission coming from the web front-end.
type SubmitRequest struct {
	UserID       int64              `json:"userId"`
	Items        []models.OrderItem `json:"products"`
	TotalPrice   float64            `json:"totalPrice"`
	DeliveryType string             `json:"deliveryType"`
	Address      string             `json:"address"`
	Phone        string             `json:"phone"`
}

// Service is the order ledger: it validates submissions, appends them
// durably and applies the single guarded status transition.
type Service struct {
	repo     repository.OrderRepositoryI
	menu     *catalog.Service
	notifier Notifier
	log      *logger.Logger
}

// NewService builds the order service.
func NewService(repo repository.OrderRepositoryI, menu *catalog.Service, notifier Notifier, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		menu:     menu,
		notifier: notifier,
		log:      log.WithComponent("orders"),
	}
}

// Submit validates and records an order, then notifies the customer and the
// admin. Line totals and the order total are recomputed server-side from the
// submitted base prices and additions; the client-sent totals are advisory.
// On validation failure nothing is persisted.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*models.Order, error) {
	if req.UserID == 0 {
		return nil, models.Validationf("missing userId")
	}
	if len(req.Items) == 0 {
		return nil, models.Validationf("no products in order")
	}
	deliveryType := models.DeliveryType(req.DeliveryType)
	switch deliveryType {
	case models.DeliveryTypeDelivery:
		if strings.TrimSpace(req.Address) == "" {
			return nil, models.Validationf("address is required for delivery")
		}
	case models.DeliveryTypePickup:
	default:
		return nil, models.Validationf("deliveryType must be delivery or pickup")
	}

	o := &models.Order{
		UserID:       req.UserID,
		DeliveryType: deliveryType,
		Address:      strings.TrimSpace(req.Address),
		Phone:        strings.TrimSpace(req.Phone),
		Status:       models.OrderStatusNew,
		Items:        make([]models.OrderItem, 0, len(req.Items)),
	}
	var total float64
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			item.Quantity = 1
		}
		base := s.basePrice(item.ProductID, item.FinalPrice, item.Quantity, item.Added)
		item.FinalPrice = catalog.LineTotal(base, item.Added, item.Quantity)
		total += item.FinalPrice
		o.Items = append(o.Items, item)
	}
	o.TotalPrice = total

	created, err := s.repo.Create(ctx, o)
	if err != nil {
		return nil, err
	}
	s.log.Info("order submitted", "id", created.ID, "user_id", created.UserID, "total", created.TotalPrice)

	if s.notifier != nil {
		s.notifier.OrderCreated(ctx, created)
	}
	return created, nil
}

// basePrice resolves the unit base price of a line. The catalog is
// authoritative when it still knows the product; otherwise the price is
// reconstructed from the submitted final price minus additions.
func (s *Service) basePrice(productID int64, finalPrice float64, quantity int, added []models.Ingredient) float64 {
	if s.menu != nil {
		for _, c := range models.Categories {
			for _, p := range s.menu.Menu().Items(c) {
				if p.ID == productID {
					return p.Price
				}
			}
		}
	}
	unit := finalPrice / float64(quantity)
	for _, a := range added {
		unit -= a.Price
	}
	if unit < 0 {
		unit = 0
	}
	return unit
}

// SetStatus applies the terminal transition new -> accepted|rejected. A
// transition from any other state is a no-op and returns the order
// unchanged with changed=false. The customer is notified on success.
func (s *Service) SetStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.Order, bool, error) {
	if status != models.OrderStatusAccepted && status != models.OrderStatusRejected {
		return nil, false, models.Validationf("status must be accepted or rejected")
	}
	changed, err := s.repo.UpdateStatusIfNew(ctx, id, status)
	if err != nil {
		return nil, false, err
	}
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if o == nil {
		return nil, false, models.ErrNotFound
	}
	if changed {
		s.log.Info("order status changed", "id", id, "status", status)
		if s.notifier != nil {
			s.notifier.StatusChanged(ctx, o)
		}
	}
	return o, changed, nil
}

// GetByID returns an order or (nil, nil) when absent.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	return s.repo.GetByID(ctx, id)
}
