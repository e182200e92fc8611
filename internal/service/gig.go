package service

import (
	"context"
	"errors"
	"strings"

	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/common"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/entity"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/policy"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/repo"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/repo/repo_errors"

	"github.com/google/uuid"
)

type GigService struct {
	gigRepo  repo.Gig
	userRepo repo.User
}

func NewGigService(repos *repo.Repositories) *GigService {
	return &GigService{
		gigRepo:  repos.Gig,
		userRepo: repos.User,
	}
}

// parseId treats a malformed id like an unknown one.
func parseId(id string, notFound *Error) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, notFound
	}
	return parsed, nil
}

func (s *GigService) getGig(ctx context.Context, gigId string) (*entity.Gig, error) {
	id, err := parseId(gigId, ErrGigNotFound)
	if err != nil {
		return nil, err
	}

	gig, err := s.gigRepo.GetGigById(ctx, id)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrGigNotFound
		}

		return nil, internal(err)
	}

	return gig, nil
}

func (s *GigService) output(ctx context.Context, gig *entity.Gig) (*entity.GigOutputModel, error) {
	users, err := s.userRepo.GetUsersByIds(ctx, []uuid.UUID{gig.OwnerId})
	if err != nil {
		return nil, internal(err)
	}

	return mapGig(gig, users), nil
}

func (s *GigService) outputs(ctx context.Context, gigs []entity.Gig) ([]entity.GigOutputModel, error) {
	users, err := s.userRepo.GetUsersByIds(ctx, gigOwnerIds(gigs))
	if err != nil {
		return nil, internal(err)
	}

	return mapGigs(gigs, users), nil
}

func (s *GigService) CreateGig(ctx context.Context, input *entity.CreateGigInput) (*entity.GigOutputModel, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	if input.Title == "" || input.Description == "" {
		return nil, ErrMissingFields
	}
	if input.Budget <= 0 {
		return nil, ErrInvalidBudget
	}

	id, err := s.gigRepo.CreateGig(ctx, input)
	if err != nil {
		return nil, internal(err)
	}

	gig, err := s.gigRepo.GetGigById(ctx, id)
	if err != nil {
		return nil, internal(err)
	}

	return s.output(ctx, gig)
}

func (s *GigService) GetOpenGigs(ctx context.Context, search *entity.GigSearch) ([]entity.GigOutputModel, error) {
	if search != nil {
		search.Text = strings.TrimSpace(search.Text)
	}

	gigs, err := s.gigRepo.GetOpenGigs(ctx, search)
	if err != nil {
		return nil, internal(err)
	}

	return s.outputs(ctx, gigs)
}

func (s *GigService) GetGigById(ctx context.Context, gigId string) (*entity.GigOutputModel, error) {
	gig, err := s.getGig(ctx, gigId)
	if err != nil {
		return nil, err
	}

	return s.output(ctx, gig)
}

func (s *GigService) GetUserGigs(ctx context.Context, requester uuid.UUID, pg *entity.PaginationInput) ([]entity.GigOutputModel, error) {
	gigs, err := s.gigRepo.GetGigsByOwnerId(ctx, requester, pg)
	if err != nil {
		return nil, internal(err)
	}

	return s.outputs(ctx, gigs)
}

func (s *GigService) EditGigById(ctx context.Context, gigId string, requester uuid.UUID, input *entity.UpdateGigInput) (*entity.GigOutputModel, error) {
	gig, err := s.getGig(ctx, gigId)
	if err != nil {
		return nil, err
	}

	if !policy.IsOwner(requester, gig) {
		return nil, ErrNotGigOwnerUpdate
	}
	if gig.Status != common.GigOpen {
		return nil, ErrGigUpdateAssigned
	}
	if input.Budget < 0 {
		return nil, ErrInvalidBudget
	}
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)

	if err := s.gigRepo.EditOpenGigById(ctx, gig.Id, input); err != nil {
		// assigned between the read and the write
		if errors.Is(err, repo_errors.ErrStatusMismatch) {
			return nil, ErrGigUpdateAssigned
		}

		return nil, internal(err)
	}

	gig, err = s.gigRepo.GetGigById(ctx, gig.Id)
	if err != nil {
		return nil, internal(err)
	}

	return s.output(ctx, gig)
}

// DeleteGigById removes an open gig and its bids. Assigned gigs stay, they
// carry the record of who was hired.
func (s *GigService) DeleteGigById(ctx context.Context, gigId string, requester uuid.UUID) error {
	gig, err := s.getGig(ctx, gigId)
	if err != nil {
		return err
	}

	if !policy.IsOwner(requester, gig) {
		return ErrNotGigOwnerDelete
	}
	if gig.Status != common.GigOpen {
		return ErrGigDeleteAssigned
	}

	if err := s.gigRepo.DeleteOpenGigById(ctx, gig.Id); err != nil {
		if errors.Is(err, repo_errors.ErrStatusMismatch) {
			return ErrGigDeleteAssigned
		}

		return internal(err)
	}

	return nil
}
