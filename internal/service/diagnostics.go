package service

import (
	"context"

	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/repo"
)

type DiagnosticsService struct {
	diagnosticsRepo repo.Diagnostics
}

func NewDiagnosticsService(repos *repo.Repositories) *DiagnosticsService {
	return &DiagnosticsService{repos.Diagnostics}
}

func (s *DiagnosticsService) Ping(ctx context.Context) error {
	if err := s.diagnosticsRepo.Ping(ctx); err != nil {
		return internal(err)
	}

	return nil
}
