package repository

import (
	"eventeasy/internal/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *models.UserAccount) error
	GetByID(id uint) (*models.UserAccount, error)
	GetByEmail(email string) (*models.UserAccount, error)
	GetAll() ([]models.UserAccount, error)
	Update(user *models.UserAccount) error
	Delete(id uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.UserAccount) error {
	return r.db.Create(user).Error
}

func (r *userRepository) GetByID(id uint) (*models.UserAccount, error) {
	var user models.UserAccount
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(email string) (*models.UserAccount, error) {
	var user models.UserAccount
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetAll() ([]models.UserAccount, error) {
	var users []models.UserAccount
	err := r.db.Find(&users).Error
	return users, err
}

func (r *userRepository) Update(user *models.UserAccount) error {
	return r.db.Save(user).Error
}

func (r *userRepository) Delete(id uint) error {
	return r.db.Delete(&models.UserAccount{}, id).Error
}
