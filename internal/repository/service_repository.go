package repository

import (
	"eventeasy/internal/models"

	"gorm.io/gorm"
)

type ServiceRepository interface {
	Create(service *models.Service) error
	GetByID(id uint) (*models.Service, error)
	GetByCategoryID(categoryID uint) ([]models.Service, error)
	GetAll() ([]models.Service, error)
	Update(service *models.Service) error
	Delete(id uint) error
}

type serviceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(service *models.Service) error {
	return r.db.Create(service).Error
}

func (r *serviceRepository) GetByID(id uint) (*models.Service, error) {
	var service models.Service
	err := r.db.Preload("Category").First(&service, id).Error
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) GetByCategoryID(categoryID uint) ([]models.Service, error) {
	var services []models.Service
	err := r.db.Preload("Category").Where("category_id = ?", categoryID).Find(&services).Error
	return services, err
}

func (r *serviceRepository) GetAll() ([]models.Service, error) {
	var services []models.Service
	err := r.db.Preload("Category").Find(&services).Error
	return services, err
}

func (r *serviceRepository) Update(service *models.Service) error {
	return r.db.Save(service).Error
}

func (r *serviceRepository) Delete(id uint) error {
	return r.db.Delete(&models.Service{}, id).Error
}
