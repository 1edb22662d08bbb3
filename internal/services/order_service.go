package services

import (
	"errors"
	"fmt"
	"time"

	"eventeasy/internal/models"
	"eventeasy/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentVerifier checks a payment reference against an external gateway.
type PaymentVerifier interface {
	VerifyTransaction(code string) error
}

type OrderItemInput struct {
	ServiceID uint
	Quantity  int
	Price     string
}

type CreateOrderInput struct {
	EventType string
	Telephone string
	Location  string
	Date      string // YYYY-MM-DD
	// TotalPrice is optional. When supplied it must equal the total derived
	// from the items; the server never trusts it blindly.
	TotalPrice string
	Items      []OrderItemInput
}

type OrderService interface {
	CreateOrder(actor *models.UserAccount, input CreateOrderInput) (*models.Order, error)
	ListOrders(actor *models.UserAccount) ([]models.Order, error)
	GetOrder(actor *models.UserAccount, orderID uint) (*models.Order, error)
	ClaimOrder(actor *models.UserAccount, orderID uint) (*models.Order, error)
	ReleaseOrder(actor *models.UserAccount, orderID uint) (*models.Order, error)
	RecordPayment(actor *models.UserAccount, orderID uint, mpesaCode string) (*models.Order, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	serviceRepo repository.ServiceRepository
	payments    PaymentVerifier // nil when no gateway is configured
}

func NewOrderService(orderRepo repository.OrderRepository, serviceRepo repository.ServiceRepository, payments PaymentVerifier) OrderService {
	return &orderService{orderRepo: orderRepo, serviceRepo: serviceRepo, payments: payments}
}

func (s *orderService) CreateOrder(actor *models.UserAccount, input CreateOrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	}
	if input.Telephone == "" || input.Location == "" {
		return nil, fmt.Errorf("%w: telephone and location are required", ErrValidation)
	}

	eventDate, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrValidation)
	}

	// Validate every item before touching the database so a bad entry
	// leaves no partial order behind.
	items := make([]models.OrderItem, 0, len(input.Items))
	total := decimal.Zero
	for _, entry := range input.Items {
		if entry.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be a positive integer", ErrValidation)
		}
		price, err := ParsePrice(entry.Price)
		if err != nil {
			return nil, err
		}
		if _, err := s.serviceRepo.GetByID(entry.ServiceID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrServiceNotFound
			}
			return nil, err
		}
		items = append(items, models.OrderItem{
			ServiceID: entry.ServiceID,
			Quantity:  entry.Quantity,
			Price:     price,
		})
		total = total.Add(price.Mul(decimal.NewFromInt(int64(entry.Quantity))))
	}

	if input.TotalPrice != "" {
		claimed, err := ParsePrice(input.TotalPrice)
		if err != nil {
			return nil, err
		}
		if !claimed.Equal(total) {
			return nil, fmt.Errorf("%w: total_price %s does not match order items total %s",
				ErrValidation, claimed.StringFixed(2), total.StringFixed(2))
		}
	}

	eventType := input.EventType
	if eventType == "" {
		eventType = "Others"
	}

	order := &models.Order{
		EventType:  eventType,
		UserID:     actor.ID,
		TotalPrice: total,
		Telephone:  input.Telephone,
		Location:   input.Location,
		Date:       eventDate,
		Status:     string(models.OrderPending),
		Items:      items,
	}

	if err := s.orderRepo.CreateWithItems(order); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(order.ID)
}

// ListOrders applies the caller's visibility scope: clients see their own
// orders, providers see unclaimed orders plus the ones they have claimed.
func (s *orderService) ListOrders(actor *models.UserAccount) ([]models.Order, error) {
	switch actor.Role {
	case string(models.RoleClient):
		return s.orderRepo.ListByUser(actor.ID)
	case string(models.RoleProvider):
		return s.orderRepo.ListForProvider(actor.ID)
	default:
		return []models.Order{}, nil
	}
}

func (s *orderService) GetOrder(actor *models.UserAccount, orderID uint) (*models.Order, error) {
	var (
		order *models.Order
		err   error
	)
	switch actor.Role {
	case string(models.RoleClient):
		order, err = s.orderRepo.GetByIDForUser(orderID, actor.ID)
	case string(models.RoleProvider):
		order, err = s.orderRepo.GetByIDForProvider(orderID, actor.ID)
	default:
		return nil, ErrOrderNotFound
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// ClaimOrder assigns the actor as the order's provider and moves it to
// PROCESSING. The preconditions are checked in order so each rejection is
// distinct; the update itself is a single conditional write so concurrent
// claims on the same order resolve to exactly one winner.
func (s *orderService) ClaimOrder(actor *models.UserAccount, orderID uint) (*models.Order, error) {
	if actor.Role != string(models.RoleProvider) {
		return nil, ErrOnlyProvidersCanClaim
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.Claimed() {
		return nil, ErrOrderAlreadyClaimed
	}
	// Checked separately from the provider field: the two are meant to move
	// together but are not guaranteed consistent in existing data.
	if order.Status != string(models.OrderPending) {
		return nil, ErrOrderNotPending
	}

	ok, err := s.orderRepo.Claim(orderID, actor.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost the race to another provider between the check and the write.
		return nil, ErrOrderAlreadyClaimed
	}
	return s.orderRepo.GetByID(orderID)
}

// ReleaseOrder returns an order the actor has claimed to the unclaimed
// PENDING state. An unclaimed order fails the ownership check too, since a
// null provider never equals the actor.
func (s *orderService) ReleaseOrder(actor *models.UserAccount, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.ProviderID == nil || *order.ProviderID != actor.ID {
		return nil, ErrNotClaimedByActor
	}

	ok, err := s.orderRepo.Release(orderID, actor.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotClaimedByActor
	}
	return s.orderRepo.GetByID(orderID)
}

// RecordPayment stores a payment reference on the caller's own order and
// marks it paid. Not part of the claim state machine.
func (s *orderService) RecordPayment(actor *models.UserAccount, orderID uint, mpesaCode string) (*models.Order, error) {
	if mpesaCode == "" || len(mpesaCode) > 10 {
		return nil, fmt.Errorf("%w: mpesa_code must be between 1 and 10 characters", ErrValidation)
	}

	order, err := s.orderRepo.GetByIDForUser(orderID, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if s.payments != nil {
		if err := s.payments.VerifyTransaction(mpesaCode); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}

	order.Paid = true
	order.MpesaCode = mpesaCode
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(order.ID)
}
