package review

import (
	"fmt"
	"strings"

	reviewRepo "citylinker/database/repository/review"
	"citylinker/models"
	"citylinker/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ListByProvider returns a provider's reviews. sort is one of newest, oldest,
// highest, lowest; newest when absent or unknown.
func (s *DefaultReviewService) ListByProvider(providerID, sort string) ([]models.Review, error) {
	var order reviewRepo.SortOrder
	switch sort {
	case "oldest":
		order = reviewRepo.SortOldest
	case "highest":
		order = reviewRepo.SortHighest
	case "lowest":
		order = reviewRepo.SortLowest
	default:
		order = reviewRepo.SortNewest
	}
	return s.Repo.GetByProvider(providerID, order)
}

// CreateReview persists a review and recomputes the provider's aggregate. The
// (provider, user) uniqueness is enforced twice: a pre-insert check for the
// friendlier message, and the store's unique index as the authoritative guard.
func (s *DefaultReviewService) CreateReview(req CreateReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, utils.ValidationError{Reason: "rating must be between 1 and 5"}
	}
	if strings.TrimSpace(req.Comment) == "" {
		return nil, utils.ValidationError{Reason: "comment is required"}
	}

	if _, err := s.ProviderRepo.GetByID(req.Provider); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetByProviderAndUser(req.Provider, req.User)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.ConflictError{Reason: "you have already reviewed this provider"}
	}

	rev := models.Review{
		ID:          uuid.New().String(),
		Provider:    req.Provider,
		User:        req.User,
		Rating:      req.Rating,
		Comment:     req.Comment,
		ServiceDate: req.ServiceDate,
		Verified:    false,
	}
	if err := s.Repo.Create(&rev); err != nil {
		return nil, err
	}

	if err := s.recomputeAggregates(req.Provider); err != nil {
		return nil, err
	}
	return &rev, nil
}

// UpdateReview changes rating and/or comment of the caller's own review, then
// recomputes the provider's aggregate.
func (s *DefaultReviewService) UpdateReview(id, callerID, callerRole string, req UpdateReviewRequest) (*models.Review, error) {
	rev, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rev.User != callerID && callerRole != models.RoleAdmin {
		return nil, utils.ForbiddenError{Reason: "you can only modify your own review"}
	}

	if req.Rating != 0 {
		if req.Rating < 1 || req.Rating > 5 {
			return nil, utils.ValidationError{Reason: "rating must be between 1 and 5"}
		}
		rev.Rating = req.Rating
	}
	if req.Comment != "" {
		rev.Comment = req.Comment
	}

	if err := s.Repo.Update(rev); err != nil {
		return nil, err
	}

	if err := s.recomputeAggregates(rev.Provider); err != nil {
		return nil, err
	}
	return rev, nil
}

// DeleteReview removes the caller's own review and recomputes the provider's
// aggregate, collapsing it to 0/0 when no reviews remain.
func (s *DefaultReviewService) DeleteReview(id, callerID, callerRole string) error {
	rev, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	if rev.User != callerID && callerRole != models.RoleAdmin {
		return utils.ForbiddenError{Reason: "you can only delete your own review"}
	}

	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	return s.recomputeAggregates(rev.Provider)
}

// aggregateRetries bounds the compare-and-swap loop below.
const aggregateRetries = 5

// recomputeAggregates makes provider.averageRating equal the arithmetic mean
// of all current review ratings (IEEE-754 double, unrounded) and reviewCount
// their count. The write is a compare-and-swap against the previously observed
// pair; on a lost race the aggregate is re-read and recomputed, so concurrent
// recomputations converge instead of interleaving.
func (s *DefaultReviewService) recomputeAggregates(providerID string) error {
	logger := utils.GetLogger()

	for attempt := 0; attempt < aggregateRetries; attempt++ {
		prov, err := s.ProviderRepo.GetByID(providerID)
		if err != nil {
			return err
		}

		avg, count, err := s.Repo.AggregateForProvider(providerID)
		if err != nil {
			return err
		}

		swapped, err := s.ProviderRepo.UpdateAggregates(providerID, prov.AverageRating, prov.ReviewCount, avg, count)
		if err != nil {
			return err
		}
		if swapped {
			return nil
		}

		logger.Debug("Aggregate swap lost a race, retrying",
			zap.String("provider", providerID),
			zap.Int("attempt", attempt+1))
	}
	return fmt.Errorf("failed to recompute aggregates for provider %s after %d attempts", providerID, aggregateRetries)
}
