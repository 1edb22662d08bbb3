package services

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"eventeasy/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Mock ServiceRepository

type mockServiceRepo struct {
	mu       sync.Mutex
	services map[uint]*models.Service
}

func newMockServiceRepo(services ...*models.Service) *mockServiceRepo {
	repo := &mockServiceRepo{services: make(map[uint]*models.Service)}
	for _, s := range services {
		repo.services[s.ID] = s
	}
	return repo
}

func (m *mockServiceRepo) Create(service *models.Service) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.services[service.ID] = service
	return nil
}

func (m *mockServiceRepo) GetByID(id uint) (*models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	service, ok := m.services[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return service, nil
}

func (m *mockServiceRepo) GetByCategoryID(categoryID uint) ([]models.Service, error) {
	return nil, nil
}

func (m *mockServiceRepo) GetAll() ([]models.Service, error) { return nil, nil }

func (m *mockServiceRepo) Update(service *models.Service) error { return nil }

func (m *mockServiceRepo) Delete(id uint) error { return nil }

// Mock OrderRepository. Claim and Release reproduce the conditional-update
// contract: the state check and the write happen under one lock.

type mockOrderRepo struct {
	mu          sync.Mutex
	nextID      uint
	orders      map[uint]*models.Order
	createCalls int
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[uint]*models.Order)}
}

func (m *mockOrderRepo) add(order *models.Order) *models.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	order.ID = m.nextID
	m.orders[order.ID] = order
	return order
}

func (m *mockOrderRepo) CreateWithItems(order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	m.nextID++
	order.ID = m.nextID
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	m.orders[order.ID] = order
	return nil
}

func (m *mockOrderRepo) GetByID(id uint) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	return &copied, nil
}

func (m *mockOrderRepo) GetByIDForUser(id, userID uint) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok || order.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	return &copied, nil
}

func (m *mockOrderRepo) GetByIDForProvider(id, providerID uint) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok || (order.ProviderID != nil && *order.ProviderID != providerID) {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	return &copied, nil
}

func (m *mockOrderRepo) ListByUser(userID uint) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var orders []models.Order
	for _, order := range m.orders {
		if order.UserID == userID {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (m *mockOrderRepo) ListForProvider(providerID uint) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var orders []models.Order
	for _, order := range m.orders {
		if order.ProviderID == nil || *order.ProviderID == providerID {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (m *mockOrderRepo) Claim(orderID, providerID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[orderID]
	if !ok {
		return false, nil
	}
	if order.ProviderID != nil || order.Status != string(models.OrderPending) {
		return false, nil
	}
	pid := providerID
	order.ProviderID = &pid
	order.TakenByProvider = true
	order.Status = string(models.OrderProcessing)
	order.UpdatedAt = time.Now()
	return true, nil
}

func (m *mockOrderRepo) Release(orderID, providerID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[orderID]
	if !ok {
		return false, nil
	}
	if order.ProviderID == nil || *order.ProviderID != providerID {
		return false, nil
	}
	order.ProviderID = nil
	order.TakenByProvider = false
	order.Status = string(models.OrderPending)
	order.UpdatedAt = time.Now()
	return true, nil
}

func (m *mockOrderRepo) Update(order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *order
	m.orders[order.ID] = &copied
	return nil
}

func (m *mockOrderRepo) Delete(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.orders, id)
	return nil
}

// Fixtures

func client(id uint) *models.UserAccount {
	return &models.UserAccount{ID: id, Email: "client@example.com", Role: string(models.RoleClient)}
}

func provider(id uint) *models.UserAccount {
	return &models.UserAccount{ID: id, Email: "provider@example.com", Role: string(models.RoleProvider)}
}

func pendingOrder(userID uint) *models.Order {
	return &models.Order{
		UserID:     userID,
		EventType:  "Wedding",
		TotalPrice: decimal.RequireFromString("3000.00"),
		Telephone:  "0712345678",
		Location:   "Nairobi",
		Date:       time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		Status:     string(models.OrderPending),
	}
}

func newTestOrderService(orderRepo *mockOrderRepo, serviceRepo *mockServiceRepo) OrderService {
	return NewOrderService(orderRepo, serviceRepo, nil)
}

// Claim / release state machine

func TestClaimOrder_AssignsProvider(t *testing.T) {
	repo := newMockOrderRepo()
	order := repo.add(pendingOrder(1))
	svc := newTestOrderService(repo, newMockServiceRepo())

	claimed, err := svc.ClaimOrder(provider(7), order.ID)
	if err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if claimed.ProviderID == nil || *claimed.ProviderID != 7 {
		t.Errorf("expected provider 7, got %v", claimed.ProviderID)
	}
	if claimed.Status != string(models.OrderProcessing) {
		t.Errorf("expected status PROCESSING, got %s", claimed.Status)
	}
	if !claimed.TakenByProvider {
		t.Error("expected taken_by_provider to be true")
	}
}

func TestClaimOrder_ClientForbidden(t *testing.T) {
	repo := newMockOrderRepo()
	order := repo.add(pendingOrder(1))
	svc := newTestOrderService(repo, newMockServiceRepo())

	_, err := svc.ClaimOrder(client(2), order.ID)
	if !errors.Is(err, ErrOnlyProvidersCanClaim) {
		t.Fatalf("expected ErrOnlyProvidersCanClaim, got %v", err)
	}

	stored, _ := repo.GetByID(order.ID)
	if stored.ProviderID != nil || stored.Status != string(models.OrderPending) {
		t.Error("order must be unchanged after a forbidden claim")
	}
}

func TestClaimOrder_AlreadyClaimed(t *testing.T) {
	repo := newMockOrderRepo()
	order := pendingOrder(1)
	other := uint(5)
	order.ProviderID = &other
	order.TakenByProvider = true
	order.Status = string(models.OrderProcessing)
	repo.add(order)
	svc := newTestOrderService(repo, newMockServiceRepo())

	_, err := svc.ClaimOrder(provider(7), order.ID)
	if !errors.Is(err, ErrOrderAlreadyClaimed) {
		t.Fatalf("expected ErrOrderAlreadyClaimed, got %v", err)
	}

	stored, _ := repo.GetByID(order.ID)
	if stored.ProviderID == nil || *stored.ProviderID != other {
		t.Error("order provider must be unchanged")
	}
}

func TestClaimOrder_StatusGuardIndependent(t *testing.T) {
	// Provider is null but status is already PROCESSING; both guards must
	// hold on their own because the fields are not guaranteed consistent.
	repo := newMockOrderRepo()
	order := pendingOrder(1)
	order.Status = string(models.OrderProcessing)
	repo.add(order)
	svc := newTestOrderService(repo, newMockServiceRepo())

	_, err := svc.ClaimOrder(provider(7), order.ID)
	if !errors.Is(err, ErrOrderNotPending) {
		t.Fatalf("expected ErrOrderNotPending, got %v", err)
	}
}

func TestClaimOrder_NotFound(t *testing.T) {
	svc := newTestOrderService(newMockOrderRepo(), newMockServiceRepo())

	_, err := svc.ClaimOrder(provider(7), 42)
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestClaimOrder_Concurrent(t *testing.T) {
	repo := newMockOrderRepo()
	order := repo.add(pendingOrder(1))
	svc := newTestOrderService(repo, newMockServiceRepo())

	const attempts = 20
	var successCount atomic.Int32
	var conflictCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			_, err := svc.ClaimOrder(provider(id), order.ID)
			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, ErrOrderAlreadyClaimed):
				conflictCount.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(uint(100 + i))
	}
	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("expected exactly 1 successful claim, got %d", successCount.Load())
	}
	if conflictCount.Load() != attempts-1 {
		t.Errorf("expected %d conflicts, got %d", attempts-1, conflictCount.Load())
	}

	stored, _ := repo.GetByID(order.ID)
	if stored.ProviderID == nil || stored.Status != string(models.OrderProcessing) {
		t.Error("order must end claimed by the single winner")
	}
}

func TestReleaseOrder_RequiresOwnership(t *testing.T) {
	repo := newMockOrderRepo()
	order := pendingOrder(1)
	owner := uint(5)
	order.ProviderID = &owner
	order.TakenByProvider = true
	order.Status = string(models.OrderProcessing)
	repo.add(order)
	svc := newTestOrderService(repo, newMockServiceRepo())

	_, err := svc.ReleaseOrder(provider(7), order.ID)
	if !errors.Is(err, ErrNotClaimedByActor) {
		t.Fatalf("expected ErrNotClaimedByActor, got %v", err)
	}

	stored, _ := repo.GetByID(order.ID)
	if stored.ProviderID == nil || *stored.ProviderID != owner {
		t.Error("order must be unchanged after a forbidden release")
	}
	if stored.Status != string(models.OrderProcessing) || !stored.TakenByProvider {
		t.Error("order state must be unchanged after a forbidden release")
	}
}

func TestReleaseOrder_UnclaimedForbidden(t *testing.T) {
	// A null provider never equals the actor, so releasing an unclaimed
	// order fails the same ownership check.
	repo := newMockOrderRepo()
	order := repo.add(pendingOrder(1))
	svc := newTestOrderService(repo, newMockServiceRepo())

	_, err := svc.ReleaseOrder(provider(7), order.ID)
	if !errors.Is(err, ErrNotClaimedByActor) {
		t.Fatalf("expected ErrNotClaimedByActor, got %v", err)
	}
}

func TestClaimThenRelease_RoundTrip(t *testing.T) {
	repo := newMockOrderRepo()
	order := repo.add(pendingOrder(1))
	svc := newTestOrderService(repo, newMockServiceRepo())
	actor := provider(7)

	if _, err := svc.ClaimOrder(actor, order.ID); err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	released, err := svc.ReleaseOrder(actor, order.ID)
	if err != nil {
		t.Fatalf("release failed: %v", err)
	}

	if released.ProviderID != nil {
		t.Errorf("expected provider to be null, got %v", released.ProviderID)
	}
	if released.Status != string(models.OrderPending) {
		t.Errorf("expected status PENDING, got %s", released.Status)
	}
	if released.TakenByProvider {
		t.Error("expected taken_by_provider to be false")
	}
}

// Creation

func cateringService() *models.Service {
	return &models.Service{
		ID:         1,
		Name:       "Buffet catering",
		Price:      decimal.RequireFromString("1500.00"),
		CategoryID: 1,
	}
}

func TestCreateOrder_DerivesTotal(t *testing.T) {
	repo := newMockOrderRepo()
	svc := newTestOrderService(repo, newMockServiceRepo(cateringService()))

	order, err := svc.CreateOrder(client(1), CreateOrderInput{
		EventType: "Wedding",
		Telephone: "0712345678",
		Location:  "Nairobi",
		Date:      "2026-10-01",
		Items: []OrderItemInput{
			{ServiceID: 1, Quantity: 2, Price: "1500.00"},
			{ServiceID: 1, Quantity: 1, Price: "2000.00"},
		},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if got := order.TotalPrice.StringFixed(2); got != "5000.00" {
		t.Errorf("expected total 5000.00, got %s", got)
	}
	if order.Status != string(models.OrderPending) {
		t.Errorf("expected status PENDING, got %s", order.Status)
	}
	if order.ProviderID != nil || order.TakenByProvider || order.Paid {
		t.Error("new order must be unclaimed and unpaid")
	}
}

func TestCreateOrder_TotalMismatchRejected(t *testing.T) {
	repo := newMockOrderRepo()
	svc := newTestOrderService(repo, newMockServiceRepo(cateringService()))

	_, err := svc.CreateOrder(client(1), CreateOrderInput{
		Telephone:  "0712345678",
		Location:   "Nairobi",
		Date:       "2026-10-01",
		TotalPrice: "9999.00",
		Items: []OrderItemInput{
			{ServiceID: 1, Quantity: 2, Price: "1500.00"},
		},
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Error("nothing must be persisted when the supplied total mismatches")
	}
}

func TestCreateOrder_AtomicOnBadPrice(t *testing.T) {
	repo := newMockOrderRepo()
	svc := newTestOrderService(repo, newMockServiceRepo(cateringService()))

	_, err := svc.CreateOrder(client(1), CreateOrderInput{
		Telephone: "0712345678",
		Location:  "Nairobi",
		Date:      "2026-10-01",
		Items: []OrderItemInput{
			{ServiceID: 1, Quantity: 1, Price: "1500.00"},
			{ServiceID: 1, Quantity: 1, Price: "10.999"},
			{ServiceID: 1, Quantity: 1, Price: "2000.00"},
		},
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if repo.createCalls != 0 || len(repo.orders) != 0 {
		t.Error("a bad item price must leave zero order and item rows")
	}
}

func TestCreateOrder_UnknownServiceRejected(t *testing.T) {
	repo := newMockOrderRepo()
	svc := newTestOrderService(repo, newMockServiceRepo(cateringService()))

	_, err := svc.CreateOrder(client(1), CreateOrderInput{
		Telephone: "0712345678",
		Location:  "Nairobi",
		Date:      "2026-10-01",
		Items: []OrderItemInput{
			{ServiceID: 99, Quantity: 1, Price: "1500.00"},
		},
	})
	if !errors.Is(err, ErrServiceNotFound) {
		t.Fatalf("expected ErrServiceNotFound, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Error("nothing must be persisted for an unknown service id")
	}
}

func TestCreateOrder_NonPositiveQuantityRejected(t *testing.T) {
	repo := newMockOrderRepo()
	svc := newTestOrderService(repo, newMockServiceRepo(cateringService()))

	for _, quantity := range []int{0, -3} {
		_, err := svc.CreateOrder(client(1), CreateOrderInput{
			Telephone: "0712345678",
			Location:  "Nairobi",
			Date:      "2026-10-01",
			Items: []OrderItemInput{
				{ServiceID: 1, Quantity: quantity, Price: "1500.00"},
			},
		})
		if !errors.Is(err, ErrValidation) {
			t.Errorf("quantity %d: expected ErrValidation, got %v", quantity, err)
		}
	}
	if repo.createCalls != 0 {
		t.Error("nothing must be persisted for a non-positive quantity")
	}
}

func TestCreateOrder_EmptyItemsRejected(t *testing.T) {
	repo := newMockOrderRepo()
	svc := newTestOrderService(repo, newMockServiceRepo())

	_, err := svc.CreateOrder(client(1), CreateOrderInput{
		Telephone: "0712345678",
		Location:  "Nairobi",
		Date:      "2026-10-01",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

// Visibility

func TestListOrders_VisibilityScoping(t *testing.T) {
	repo := newMockOrderRepo()
	clientOrder := repo.add(pendingOrder(1))
	otherClientOrder := repo.add(pendingOrder(2))
	unclaimed := repo.add(pendingOrder(3))

	mine := pendingOrder(4)
	me := uint(10)
	mine.ProviderID = &me
	mine.Status = string(models.OrderProcessing)
	repo.add(mine)

	theirs := pendingOrder(5)
	them := uint(11)
	theirs.ProviderID = &them
	theirs.Status = string(models.OrderProcessing)
	repo.add(theirs)

	svc := newTestOrderService(repo, newMockServiceRepo())

	clientOrders, err := svc.ListOrders(client(1))
	if err != nil {
		t.Fatalf("client list failed: %v", err)
	}
	if len(clientOrders) != 1 || clientOrders[0].ID != clientOrder.ID {
		t.Errorf("client must see only their own order, got %d orders", len(clientOrders))
	}

	providerOrders, err := svc.ListOrders(provider(me))
	if err != nil {
		t.Fatalf("provider list failed: %v", err)
	}
	visible := make(map[uint]bool)
	for _, order := range providerOrders {
		visible[order.ID] = true
	}
	for _, id := range []uint{clientOrder.ID, otherClientOrder.ID, unclaimed.ID, mine.ID} {
		if !visible[id] {
			t.Errorf("provider must see order %d", id)
		}
	}
	if visible[theirs.ID] {
		t.Error("provider must not see another provider's claimed order")
	}

	legacy := &models.UserAccount{ID: 99, Role: "CATERER"}
	legacyOrders, err := svc.ListOrders(legacy)
	if err != nil {
		t.Fatalf("legacy-role list failed: %v", err)
	}
	if len(legacyOrders) != 0 {
		t.Errorf("unknown role must see no orders, got %d", len(legacyOrders))
	}
}

func TestGetOrder_ScopeLooksLikeAbsence(t *testing.T) {
	repo := newMockOrderRepo()
	order := repo.add(pendingOrder(1))

	claimed := pendingOrder(1)
	owner := uint(10)
	claimed.ProviderID = &owner
	claimed.Status = string(models.OrderProcessing)
	repo.add(claimed)

	svc := newTestOrderService(repo, newMockServiceRepo())

	if _, err := svc.GetOrder(client(2), order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("another client's order must read as not found, got %v", err)
	}
	if _, err := svc.GetOrder(provider(11), claimed.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("another provider's claimed order must read as not found, got %v", err)
	}
	if _, err := svc.GetOrder(client(1), order.ID); err != nil {
		t.Errorf("owner must see their order, got %v", err)
	}
}

// Payment

type rejectingVerifier struct{}

func (rejectingVerifier) VerifyTransaction(code string) error {
	return errors.New("gateway rejected transaction")
}

func TestRecordPayment_OwnerOnly(t *testing.T) {
	repo := newMockOrderRepo()
	order := repo.add(pendingOrder(1))
	svc := newTestOrderService(repo, newMockServiceRepo())

	if _, err := svc.RecordPayment(client(2), order.ID, "QK12XY89"); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("another user's order must read as not found, got %v", err)
	}

	paid, err := svc.RecordPayment(client(1), order.ID, "QK12XY89")
	if err != nil {
		t.Fatalf("payment failed: %v", err)
	}
	if !paid.Paid || paid.MpesaCode != "QK12XY89" {
		t.Errorf("expected paid order with code, got paid=%v code=%s", paid.Paid, paid.MpesaCode)
	}
}

func TestRecordPayment_CodeValidation(t *testing.T) {
	repo := newMockOrderRepo()
	order := repo.add(pendingOrder(1))
	svc := newTestOrderService(repo, newMockServiceRepo())

	for _, code := range []string{"", "WAYTOOLONGCODE"} {
		if _, err := svc.RecordPayment(client(1), order.ID, code); !errors.Is(err, ErrValidation) {
			t.Errorf("code %q: expected ErrValidation, got %v", code, err)
		}
	}
}

func TestRecordPayment_GatewayRejection(t *testing.T) {
	repo := newMockOrderRepo()
	order := repo.add(pendingOrder(1))
	svc := NewOrderService(repo, newMockServiceRepo(), rejectingVerifier{})

	if _, err := svc.RecordPayment(client(1), order.ID, "QK12XY89"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation on gateway rejection, got %v", err)
	}

	stored, _ := repo.GetByID(order.ID)
	if stored.Paid {
		t.Error("order must stay unpaid when the gateway rejects the code")
	}
}
