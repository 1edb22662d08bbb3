package repository

import (
	"eventeasy/internal/models"

	"gorm.io/gorm"
)

type OrderRepository interface {
	// CreateWithItems persists an order and its items in one transaction.
	CreateWithItems(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetByIDForUser(id, userID uint) (*models.Order, error)
	GetByIDForProvider(id, providerID uint) (*models.Order, error)
	ListByUser(userID uint) ([]models.Order, error)
	ListForProvider(providerID uint) ([]models.Order, error)
	// Claim conditionally assigns a provider to an unclaimed pending order.
	// Returns false when the row was not in the expected state, so a lost
	// race surfaces as a conflict instead of a silent overwrite.
	Claim(orderID, providerID uint) (bool, error)
	// Release conditionally returns an order claimed by providerID to the
	// unclaimed pending state. Returns false when providerID does not hold
	// the order.
	Release(orderID, providerID uint) (bool, error)
	Update(order *models.Order) error
	Delete(id uint) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) preloaded() *gorm.DB {
	return r.db.Preload("User").Preload("Provider").Preload("Items.Service")
}

func (r *orderRepository) CreateWithItems(order *models.Order) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.preloaded().First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByIDForUser(id, userID uint) (*models.Order, error) {
	var order models.Order
	err := r.preloaded().Where("user_id = ?", userID).First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByIDForProvider(id, providerID uint) (*models.Order, error) {
	var order models.Order
	err := r.preloaded().
		Where("provider_id IS NULL OR provider_id = ?", providerID).
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListByUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.preloaded().Where("user_id = ?", userID).Find(&orders).Error
	return orders, err
}

func (r *orderRepository) ListForProvider(providerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.preloaded().
		Where("provider_id IS NULL OR provider_id = ?", providerID).
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) Claim(orderID, providerID uint) (bool, error) {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND provider_id IS NULL AND status = ?", orderID, string(models.OrderPending)).
		Updates(map[string]interface{}{
			"provider_id":       providerID,
			"taken_by_provider": true,
			"status":            string(models.OrderProcessing),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *orderRepository) Release(orderID, providerID uint) (bool, error) {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND provider_id = ?", orderID, providerID).
		Updates(map[string]interface{}{
			"provider_id":       nil,
			"taken_by_provider": false,
			"status":            string(models.OrderPending),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *orderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}

func (r *orderRepository) Delete(id uint) error {
	return r.db.Delete(&models.Order{}, id).Error
}
