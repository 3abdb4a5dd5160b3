package service

import (
	"context"
	"time"

	"attomax-partners/internal/domain"
	"attomax-partners/internal/repo"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PartnerService interface {
	CreatePartner(ctx context.Context, in CreatePartnerInput) (*domain.Partner, error)
	GetPartner(ctx context.Context, id string) (*domain.Partner, error)
	ListPartners(ctx context.Context) ([]domain.Partner, error)
	PartnerStats(ctx context.Context, id string) (*domain.PartnerStats, error)
}

type partnerService struct {
	partnerRepo repo.PartnerRepo
}

func NewPartnerService(partnerRepo repo.PartnerRepo) PartnerService {
	return &partnerService{partnerRepo: partnerRepo}
}

type CreatePartnerInput struct {
	Name           string
	Email          string
	Domain         string
	LogoURL        string
	BrandName      string
	CommissionRate decimal.Decimal
	Status         string
	ShopifyTag     string
}

func (s *partnerService) CreatePartner(ctx context.Context, in CreatePartnerInput) (*domain.Partner, error) {
	if in.Name == "" {
		return nil, domain.ErrNameRequired
	}
	if in.Email == "" {
		return nil, domain.ErrEmailRequired
	}
	if in.CommissionRate.IsNegative() || in.CommissionRate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, domain.ErrInvalidRate
	}

	status := domain.PartnerPending
	if in.Status != "" {
		switch domain.PartnerStatus(in.Status) {
		case domain.PartnerPending, domain.PartnerActive, domain.PartnerSuspended:
			status = domain.PartnerStatus(in.Status)
		default:
			return nil, domain.ErrInvalidStatus
		}
	}

	existing, err := s.partnerRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrPartnerEmailTaken
	}

	now := time.Now()
	partner := &domain.Partner{
		ID:             uuid.New(),
		Name:           in.Name,
		Email:          in.Email,
		Domain:         in.Domain,
		LogoURL:        in.LogoURL,
		BrandName:      in.BrandName,
		CommissionRate: in.CommissionRate,
		Status:         status,
		ShopifyTag:     in.ShopifyTag,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// The unique index on email still backstops the race between the
	// FindByEmail check and this insert.
	if err := s.partnerRepo.Create(ctx, partner); err != nil {
		return nil, err
	}
	return partner, nil
}

func (s *partnerService) GetPartner(ctx context.Context, id string) (*domain.Partner, error) {
	partnerID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	partner, err := s.partnerRepo.FindById(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, domain.ErrPartnerNotFound
	}
	return partner, nil
}

func (s *partnerService) ListPartners(ctx context.Context) ([]domain.Partner, error) {
	return s.partnerRepo.List(ctx)
}

func (s *partnerService) PartnerStats(ctx context.Context, id string) (*domain.PartnerStats, error) {
	partnerID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	partner, err := s.partnerRepo.FindById(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, domain.ErrPartnerNotFound
	}
	return s.partnerRepo.Stats(ctx, partnerID)
}
