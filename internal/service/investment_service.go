package service

import (
	"fmt"

	"github.com/wealthos/wealth-os-backend/internal/apperrors"
	"github.com/wealthos/wealth-os-backend/internal/model"
	"github.com/wealthos/wealth-os-backend/internal/repository"
)

// InvestmentService handles investment listing with optional filters.
type InvestmentService struct {
	investmentRepo *repository.InvestmentRepository
	entityRepo     *repository.EntityRepository
}

// NewInvestmentService creates a new InvestmentService with the provided repositories.
func NewInvestmentService(
	investmentRepo *repository.InvestmentRepository,
	entityRepo *repository.EntityRepository,
) *InvestmentService {
	return &InvestmentService{
		investmentRepo: investmentRepo,
		entityRepo:     entityRepo,
	}
}

// GetInvestments retrieves active investments, optionally filtered by
// entity ID and asset class, enriched with entity names and unrealized
// gains in the investment's own currency.
func (s *InvestmentService) GetInvestments(entityID string, assetClass model.AssetClass) ([]model.InvestmentResponse, error) {
	var investments []model.Investment
	var err error

	if entityID != "" {
		if _, err := s.entityRepo.GetEntity(entityID); err != nil {
			return nil, err
		}
		investments, err = s.investmentRepo.GetInvestmentsByEntity(entityID)
	} else {
		investments, err = s.investmentRepo.GetInvestments(true)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveInvestments, err)
	}

	entityNames, err := s.entityRepo.GetEntityNames()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveEntities, err)
	}

	responses := []model.InvestmentResponse{}
	for _, inv := range investments {
		if assetClass != "" && inv.AssetClass != assetClass {
			continue
		}

		response := model.InvestmentResponse{
			Investment:     inv,
			EntityName:     entityNames[inv.EntityID],
			UnrealizedGain: inv.CurrentValue - inv.CostBasis,
		}
		if inv.CostBasis > 0 {
			response.UnrealizedGainPct = response.UnrealizedGain / inv.CostBasis
		}
		responses = append(responses, response)
	}
	return responses, nil
}
