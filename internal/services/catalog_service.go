package services

import (
	"errors"
	"fmt"

	"eventeasy/internal/models"
	"eventeasy/internal/repository"

	"gorm.io/gorm"
)

type CategoryInput struct {
	Name        string
	Description string
}

type ServiceInput struct {
	Name        string
	Description string
	Price       string
	CategoryID  uint
	ImageURL    string
}

type CatalogService interface {
	CreateCategory(input CategoryInput) (*models.Category, error)
	GetCategories() ([]models.Category, error)
	GetCategory(id uint) (*models.Category, error)
	UpdateCategory(id uint, input CategoryInput) (*models.Category, error)
	DeleteCategory(id uint) error

	CreateService(input ServiceInput) (*models.Service, error)
	GetServices() ([]models.Service, error)
	GetServicesByCategory(categoryID uint) ([]models.Service, error)
	GetService(id uint) (*models.Service, error)
	UpdateService(id uint, input ServiceInput) (*models.Service, error)
	DeleteService(id uint) error
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	serviceRepo  repository.ServiceRepository
}

func NewCatalogService(categoryRepo repository.CategoryRepository, serviceRepo repository.ServiceRepository) CatalogService {
	return &catalogService{categoryRepo: categoryRepo, serviceRepo: serviceRepo}
}

func (s *catalogService) CreateCategory(input CategoryInput) (*models.Category, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	category := &models.Category{Name: input.Name, Description: input.Description}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *catalogService) GetCategories() ([]models.Category, error) {
	return s.categoryRepo.GetAll()
}

func (s *catalogService) GetCategory(id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *catalogService) UpdateCategory(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	category.Name = input.Name
	category.Description = input.Description
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *catalogService) DeleteCategory(id uint) error {
	if _, err := s.GetCategory(id); err != nil {
		return err
	}
	return s.categoryRepo.Delete(id)
}

func (s *catalogService) CreateService(input ServiceInput) (*models.Service, error) {
	service, err := s.buildService(&models.Service{}, input)
	if err != nil {
		return nil, err
	}
	if err := s.serviceRepo.Create(service); err != nil {
		return nil, err
	}
	return s.GetService(service.ID)
}

func (s *catalogService) GetServices() ([]models.Service, error) {
	return s.serviceRepo.GetAll()
}

func (s *catalogService) GetServicesByCategory(categoryID uint) ([]models.Service, error) {
	if _, err := s.GetCategory(categoryID); err != nil {
		return nil, err
	}
	return s.serviceRepo.GetByCategoryID(categoryID)
}

func (s *catalogService) GetService(id uint) (*models.Service, error) {
	service, err := s.serviceRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return service, nil
}

func (s *catalogService) UpdateService(id uint, input ServiceInput) (*models.Service, error) {
	service, err := s.GetService(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.buildService(service, input); err != nil {
		return nil, err
	}
	if err := s.serviceRepo.Update(service); err != nil {
		return nil, err
	}
	return s.GetService(service.ID)
}

func (s *catalogService) DeleteService(id uint) error {
	if _, err := s.GetService(id); err != nil {
		return err
	}
	return s.serviceRepo.Delete(id)
}

func (s *catalogService) buildService(service *models.Service, input ServiceInput) (*models.Service, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	price, err := ParsePrice(input.Price)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetCategory(input.CategoryID); err != nil {
		return nil, err
	}
	service.Name = input.Name
	service.Description = input.Description
	service.Price = price
	service.CategoryID = input.CategoryID
	service.ImageURL = input.ImageURL
	return service, nil
}
