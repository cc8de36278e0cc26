package services

import (
	"time"

	"leadflow/internal/repositories"
)

type LeadSummary struct {
	Total       int            `json:"total"`
	ByStatus    map[string]int `json:"byStatus"`
	GeneratedAt time.Time      `json:"generatedAt"`
}

type ReportService interface {
	LeadSummary() (*LeadSummary, error)
}

type reportService struct {
	leadRepo repositories.LeadRepository
}

func NewReportService(leadRepo repositories.LeadRepository) ReportService {
	return &reportService{leadRepo: leadRepo}
}

func (s *reportService) LeadSummary() (*LeadSummary, error) {
	total, err := s.leadRepo.Count(0)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.leadRepo.CountByStatus()
	if err != nil {
		return nil, err
	}
	return &LeadSummary{
		Total:       total,
		ByStatus:    byStatus,
		GeneratedAt: time.Now(),
	}, nil
}
