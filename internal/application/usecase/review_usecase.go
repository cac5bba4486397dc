package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jfuentes/stock-ledger/internal/application/dto"
	"github.com/jfuentes/stock-ledger/internal/domain"
	"github.com/jfuentes/stock-ledger/internal/domain/entity"
	"github.com/jfuentes/stock-ledger/internal/domain/repository"
)

// ReviewUseCase reseñas de clientes y promedio de rating por variante.
type ReviewUseCase struct {
	reviewRepo  repository.ReviewRepository
	variantRepo repository.VariantRepository
}

// NewReviewUseCase construye el caso de uso.
func NewReviewUseCase(reviewRepo repository.ReviewRepository, variantRepo repository.VariantRepository) *ReviewUseCase {
	return &ReviewUseCase{reviewRepo: reviewRepo, variantRepo: variantRepo}
}

// Create registra una reseña; rating válido 1..5.
func (uc *ReviewUseCase) Create(variantID string, in dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if in.Rating < 1 || in.Rating > 5 || in.UserName == "" {
		return nil, domain.ErrValidation
	}
	variant, err := uc.variantRepo.GetByID(variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, domain.ErrNotFound
	}
	review := &entity.Review{
		ID:        uuid.New().String(),
		VariantID: variantID,
		Body:      in.Body,
		UserName:  in.UserName,
		Rating:    in.Rating,
		CreatedAt: time.Now(),
	}
	if err := uc.reviewRepo.Create(review); err != nil {
		return nil, err
	}
	return toReviewResponse(review), nil
}

// ListByVariant reseñas de una variante, más recientes primero.
func (uc *ReviewUseCase) ListByVariant(variantID string, limit, offset int) ([]dto.ReviewResponse, error) {
	list, err := uc.reviewRepo.ListByVariant(variantID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReviewResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toReviewResponse(r))
	}
	return items, nil
}

// Rating promedio de la variante; HasVotes=false si aún no tiene reseñas.
func (uc *ReviewUseCase) Rating(variantID string) (*dto.RatingResponse, error) {
	variant, err := uc.variantRepo.GetByID(variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, domain.ErrNotFound
	}
	avg, ok, err := uc.reviewRepo.AverageRating(variantID)
	if err != nil {
		return nil, err
	}
	return &dto.RatingResponse{VariantID: variantID, Average: avg, HasVotes: ok}, nil
}

func toReviewResponse(r *entity.Review) *dto.ReviewResponse {
	return &dto.ReviewResponse{
		ID:        r.ID,
		VariantID: r.VariantID,
		Body:      r.Body,
		UserName:  r.UserName,
		Rating:    r.Rating,
		CreatedAt: r.CreatedAt,
	}
}
