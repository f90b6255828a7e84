package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ahmetcoskunkizilkaya/creatordash/internal/dto"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/models"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/repository"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/validation"
	"github.com/google/uuid"
)

var ErrReportNotFound = repository.ErrReportNotFound

// ReportService records user complaints about external posts and lets
// admins work through them.
type ReportService struct {
	users repository.UserRepository
}

func NewReportService(users repository.UserRepository) *ReportService {
	return &ReportService{users: users}
}

func (s *ReportService) CreateReport(ctx context.Context, reporterID uuid.UUID, postID string, req *dto.ReportPostRequest) (*models.PostReport, error) {
	if postID == "" {
		return nil, ErrEmptyPostID
	}
	req.Reason = strings.TrimSpace(req.Reason)
	req.Platform = strings.ToLower(strings.TrimSpace(req.Platform))
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByID(ctx, reporterID); err != nil {
		return nil, err
	}

	report := models.PostReport{
		ID:         uuid.New(),
		ReporterID: reporterID,
		PostID:     postID,
		Platform:   req.Platform,
		Reason:     req.Reason,
		Status:     models.ReportPending,
	}
	if err := s.users.CreateReport(ctx, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// ReportPage is one page of reports with the paging actually applied.
type ReportPage struct {
	Reports []models.PostReport `json:"reports"`
	Total   int64               `json:"total"`
	Limit   int                 `json:"limit"`
	Offset  int                 `json:"offset"`
}

func (s *ReportService) ListReports(ctx context.Context, status string, limit, offset int) (*ReportPage, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	reports, total, err := s.users.ListReports(ctx, repository.ReportFilter{Status: status, Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ReportPage{Reports: reports, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *ReportService) ActionReport(ctx context.Context, reportID uuid.UUID, req *dto.ActionReportRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}
	if err := s.users.UpdateReport(ctx, reportID, req.Status, req.AdminNote); err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return ErrReportNotFound
		}
		return err
	}
	return nil
}
