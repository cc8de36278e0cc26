package services

import (
	"log"
	"time"

	"leadflow/internal/apperr"
	"leadflow/internal/models"
	"leadflow/internal/repositories"
)

type LeadService interface {
	Create(lead *models.Lead) error
	GetByID(id int) (*models.Lead, error)
	Update(lead *models.Lead) error
	Deactivate(id int) error
	List(assignedTo, limit, offset int) ([]*models.Lead, error)
	Count(assignedTo int) (int, error)
}

type leadService struct {
	repo     repositories.LeadRepository
	notifier LeadNotifier
}

func NewLeadService(repo repositories.LeadRepository, notifier LeadNotifier) LeadService {
	return &leadService{repo: repo, notifier: notifier}
}

// Create rejects leads whose email or phone is already taken by any lead,
// active or not, then persists with the NEW status. The duplicate lookup is
// advisory under concurrency; the schema constraint is the backstop.
func (s *leadService) Create(lead *models.Lead) error {
	existing, err := s.repo.FindByEmailOrPhone(lead.Email, lead.Phone)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperr.Conflict("Lead with the same email or phone number already exists")
	}

	lead.Status = models.StatusNew
	lead.IsActive = true
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now()
	}

	if err := s.repo.Create(lead); err != nil {
		return err
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyNewLead(lead); err != nil {
			// warn but do not fail creation
			log.Printf("Create: warning: failed to notify about lead %d: %v", lead.ID, err)
		}
	}

	return nil
}

func (s *leadService) GetByID(id int) (*models.Lead, error) {
	return s.repo.GetByID(id)
}

func (s *leadService) Update(lead *models.Lead) error {
	return s.repo.Update(lead)
}

func (s *leadService) Deactivate(id int) error {
	return s.repo.Deactivate(id)
}

func (s *leadService) List(assignedTo, limit, offset int) ([]*models.Lead, error) {
	return s.repo.List(assignedTo, limit, offset)
}

func (s *leadService) Count(assignedTo int) (int, error) {
	return s.repo.Count(assignedTo)
}
