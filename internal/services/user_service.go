package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"leadflow/internal/apperr"
	"leadflow/internal/models"
	"leadflow/internal/repositories"
)

type UserService interface {
	Create(user *models.User, plainPassword string) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Deactivate(id int) error
	List(f repositories.UserFilter, limit, offset int) ([]*models.User, error)
	Count() (int, error)
}

type userService struct {
	repo         repositories.UserRepository
	emailService EmailService
	authService  AuthService
}

func NewUserService(repo repositories.UserRepository, emailService EmailService, authService AuthService) UserService {
	return &userService{
		repo:         repo,
		emailService: emailService,
		authService:  authService,
	}
}

// Create checks email uniqueness, hashes the password and persists the user
// with isActive=true. The plaintext password never reaches the repository.
func (s *userService) Create(user *models.User, plainPassword string) error {
	if strings.TrimSpace(plainPassword) == "" {
		return fmt.Errorf("password is required")
	}

	existing, err := s.repo.GetByEmail(user.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperr.Conflict("User already exists")
	}

	hashedPassword, err := s.authService.HashPassword(plainPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hashedPassword
	user.IsActive = true
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	if err := s.repo.Create(user); err != nil {
		return err
	}

	if s.emailService != nil {
		if err := s.emailService.SendWelcomeEmail(user.Email, user.FirstName); err != nil {
			// warn but do not fail creation
			log.Printf("Create: warning: failed to send welcome email to %s: %v", user.Email, err)
		}
	}

	return nil
}

func (s *userService) GetByID(id int) (*models.User, error) {
	return s.repo.GetByID(id)
}

func (s *userService) GetByEmail(email string) (*models.User, error) {
	return s.repo.GetByEmail(email)
}

func (s *userService) Update(user *models.User) error {
	return s.repo.Update(user)
}

func (s *userService) Deactivate(id int) error {
	return s.repo.Deactivate(id)
}

func (s *userService) List(f repositories.UserFilter, limit, offset int) ([]*models.User, error) {
	return s.repo.List(f, limit, offset)
}

func (s *userService) Count() (int, error) {
	return s.repo.Count()
}
