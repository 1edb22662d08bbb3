package services

import (
	"errors"
	"fmt"

	"eventeasy/internal/models"
	"eventeasy/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Telephone string
	Location  string
	Role      string
}

type UserService interface {
	Register(input RegisterInput) (*models.UserAccount, error)
	Authenticate(email, password string) (*models.UserAccount, error)
	GetUserByID(id uint) (*models.UserAccount, error)
	GetUserByEmail(email string) (*models.UserAccount, error)
	UpdateProfile(user *models.UserAccount) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Register(input RegisterInput) (*models.UserAccount, error) {
	if input.Email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if input.FirstName == "" {
		return nil, fmt.Errorf("%w: first_name is required", ErrValidation)
	}
	if len(input.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	role := input.Role
	if role == "" {
		role = string(models.RoleClient)
	}
	if !models.ValidRole(role) {
		return nil, fmt.Errorf("%w: role must be CLIENT or PROVIDER", ErrValidation)
	}

	if _, err := s.userRepo.GetByEmail(input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.UserAccount{
		Email:        input.Email,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Telephone:    input.Telephone,
		Location:     input.Location,
		Role:         role,
		IsActive:     true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Authenticate(email, password string) (*models.UserAccount, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) GetUserByID(id uint) (*models.UserAccount, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUserByEmail(email string) (*models.UserAccount, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateProfile(user *models.UserAccount) error {
	return s.userRepo.Update(user)
}
