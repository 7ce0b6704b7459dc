package review

import (
	"errors"
	"testing"

	providerRepo "citylinker/database/repository/provider"
	reviewRepo "citylinker/database/repository/review"
	"citylinker/models"
	"citylinker/utils"
)

type fakeReviewRepo struct {
	reviews  map[string]*models.Review
	lastSort reviewRepo.SortOrder
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[string]*models.Review)}
}

func (f *fakeReviewRepo) GetByID(id string) (*models.Review, error) {
	rev, ok := f.reviews[id]
	if !ok {
		return nil, utils.NotFoundError{Resource: "review", ID: id}
	}
	cp := *rev
	return &cp, nil
}

func (f *fakeReviewRepo) GetByProvider(providerID string, sort reviewRepo.SortOrder) ([]models.Review, error) {
	f.lastSort = sort
	var out []models.Review
	for _, rev := range f.reviews {
		if rev.Provider == providerID {
			out = append(out, *rev)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) GetByProviderAndUser(providerID, userID string) (*models.Review, error) {
	for _, rev := range f.reviews {
		if rev.Provider == providerID && rev.User == userID {
			cp := *rev
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewRepo) Create(review *models.Review) error {
	for _, rev := range f.reviews {
		if rev.Provider == review.Provider && rev.User == review.User {
			return utils.ConflictError{Reason: "you have already reviewed this provider"}
		}
	}
	cp := *review
	f.reviews[review.ID] = &cp
	return nil
}

func (f *fakeReviewRepo) Update(review *models.Review) error {
	stored, ok := f.reviews[review.ID]
	if !ok {
		return utils.NotFoundError{Resource: "review", ID: review.ID}
	}
	stored.Rating = review.Rating
	stored.Comment = review.Comment
	return nil
}

func (f *fakeReviewRepo) Delete(id string) error {
	if _, ok := f.reviews[id]; !ok {
		return utils.NotFoundError{Resource: "review", ID: id}
	}
	delete(f.reviews, id)
	return nil
}

func (f *fakeReviewRepo) AggregateForProvider(providerID string) (float64, int, error) {
	sum, count := 0, 0
	for _, rev := range f.reviews {
		if rev.Provider == providerID {
			sum += rev.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

type fakeProviderRepo struct {
	providers map[string]*models.Provider

	// failSwaps forces the next N UpdateAggregates calls to report a lost
	// compare-and-swap; swapCalls counts every attempt.
	failSwaps int
	swapCalls int
}

func newFakeProviderRepo(ids ...string) *fakeProviderRepo {
	f := &fakeProviderRepo{providers: make(map[string]*models.Provider)}
	for _, id := range ids {
		f.providers[id] = &models.Provider{ID: id, Name: "Provider " + id}
	}
	return f
}

func (f *fakeProviderRepo) GetByID(id string) (*models.Provider, error) {
	prov, ok := f.providers[id]
	if !ok {
		return nil, utils.NotFoundError{Resource: "provider", ID: id}
	}
	cp := *prov
	return &cp, nil
}

func (f *fakeProviderRepo) GetAll(owner string) ([]models.Provider, error)    { return nil, nil }
func (f *fakeProviderRepo) GetFeatured(limit int) ([]models.Provider, error)  { return nil, nil }
func (f *fakeProviderRepo) Search(term, cat string) ([]models.Provider, error) { return nil, nil }
func (f *fakeProviderRepo) GetByCategory(categoryID string, sort providerRepo.SortOrder) ([]models.Provider, error) {
	return nil, nil
}
func (f *fakeProviderRepo) Create(provider *models.Provider) error { return nil }
func (f *fakeProviderRepo) Update(provider *models.Provider) error { return nil }
func (f *fakeProviderRepo) Delete(id string) error                 { return nil }

func (f *fakeProviderRepo) UpdateAggregates(id string, oldAvg float64, oldCount int, newAvg float64, newCount int) (bool, error) {
	f.swapCalls++
	if f.failSwaps > 0 {
		f.failSwaps--
		return false, nil
	}
	prov, ok := f.providers[id]
	if !ok {
		return false, utils.NotFoundError{Resource: "provider", ID: id}
	}
	if prov.AverageRating != oldAvg || prov.ReviewCount != oldCount {
		return false, nil
	}
	prov.AverageRating = newAvg
	prov.ReviewCount = newCount
	return true, nil
}

func newTestService(providerIDs ...string) (*DefaultReviewService, *fakeReviewRepo, *fakeProviderRepo) {
	reviews := newFakeReviewRepo()
	providers := newFakeProviderRepo(providerIDs...)
	return &DefaultReviewService{Repo: reviews, ProviderRepo: providers}, reviews, providers
}

func TestCreateReviewValidation(t *testing.T) {
	svc, _, _ := newTestService("prov-1")

	tests := []struct {
		name string
		req  CreateReviewRequest
	}{
		{"rating too low", CreateReviewRequest{Provider: "prov-1", User: "u1", Rating: 0, Comment: "ok"}},
		{"rating too high", CreateReviewRequest{Provider: "prov-1", User: "u1", Rating: 6, Comment: "ok"}},
		{"empty comment", CreateReviewRequest{Provider: "prov-1", User: "u1", Rating: 4, Comment: "   "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateReview(tt.req)
			var ve utils.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestCreateReviewUnknownProvider(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateReview(CreateReviewRequest{Provider: "nope", User: "u1", Rating: 4, Comment: "fine"})
	var nf utils.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestCreateReviewOnePerUser(t *testing.T) {
	svc, _, _ := newTestService("prov-1")

	if _, err := svc.CreateReview(CreateReviewRequest{Provider: "prov-1", User: "u1", Rating: 5, Comment: "great"}); err != nil {
		t.Fatalf("first review failed: %v", err)
	}

	_, err := svc.CreateReview(CreateReviewRequest{Provider: "prov-1", User: "u1", Rating: 2, Comment: "changed my mind"})
	var ce utils.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError for second review by same user, got %v", err)
	}
}

func TestAggregateLifecycle(t *testing.T) {
	svc, _, providers := newTestService("prov-1")

	checkAggregate := func(t *testing.T, wantAvg float64, wantCount int) {
		t.Helper()
		prov := providers.providers["prov-1"]
		if prov.AverageRating != wantAvg || prov.ReviewCount != wantCount {
			t.Fatalf("aggregate = (%v, %d), want (%v, %d)",
				prov.AverageRating, prov.ReviewCount, wantAvg, wantCount)
		}
	}

	first, err := svc.CreateReview(CreateReviewRequest{Provider: "prov-1", User: "u1", Rating: 5, Comment: "great"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	checkAggregate(t, 5, 1)

	second, err := svc.CreateReview(CreateReviewRequest{Provider: "prov-1", User: "u2", Rating: 3, Comment: "decent"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	checkAggregate(t, 4, 2)

	if _, err := svc.UpdateReview(second.ID, "u2", models.RoleUser, UpdateReviewRequest{Rating: 1}); err != nil {
		t.Fatalf("update: %v", err)
	}
	checkAggregate(t, 3, 2)

	if err := svc.DeleteReview(second.ID, "u2", models.RoleUser); err != nil {
		t.Fatalf("delete: %v", err)
	}
	checkAggregate(t, 5, 1)

	if err := svc.DeleteReview(first.ID, "u1", models.RoleUser); err != nil {
		t.Fatalf("delete: %v", err)
	}
	checkAggregate(t, 0, 0)
}

func TestRecomputeRetriesLostSwap(t *testing.T) {
	svc, _, providers := newTestService("prov-1")
	providers.failSwaps = 2

	if _, err := svc.CreateReview(CreateReviewRequest{Provider: "prov-1", User: "u1", Rating: 5, Comment: "great"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	prov := providers.providers["prov-1"]
	if prov.AverageRating != 5 || prov.ReviewCount != 1 {
		t.Fatalf("aggregate = (%v, %d) after lost swaps, want (5, 1)", prov.AverageRating, prov.ReviewCount)
	}
	if providers.swapCalls != 3 {
		t.Fatalf("swap attempted %d times, want 3 (two lost, one won)", providers.swapCalls)
	}
}

func TestRecomputeGivesUpAfterExhaustedRetries(t *testing.T) {
	svc, _, providers := newTestService("prov-1")
	providers.failSwaps = aggregateRetries

	if _, err := svc.CreateReview(CreateReviewRequest{Provider: "prov-1", User: "u1", Rating: 5, Comment: "great"}); err == nil {
		t.Fatal("expected error once every swap attempt is lost")
	}
	if providers.swapCalls != aggregateRetries {
		t.Fatalf("swap attempted %d times, want %d", providers.swapCalls, aggregateRetries)
	}
}

func TestUpdateReviewOwnership(t *testing.T) {
	svc, _, _ := newTestService("prov-1")

	rev, err := svc.CreateReview(CreateReviewRequest{Provider: "prov-1", User: "u1", Rating: 4, Comment: "good"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.UpdateReview(rev.ID, "someone-else", models.RoleUser, UpdateReviewRequest{Rating: 1})
	var fe utils.ForbiddenError
	if !errors.As(err, &fe) {
		t.Fatalf("expected ForbiddenError for non-author, got %v", err)
	}

	updated, err := svc.UpdateReview(rev.ID, "moderator", models.RoleAdmin, UpdateReviewRequest{Comment: "moderated"})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.Comment != "moderated" {
		t.Fatalf("comment = %q, want %q", updated.Comment, "moderated")
	}
}

func TestDeleteReviewOwnership(t *testing.T) {
	svc, reviews, _ := newTestService("prov-1")

	rev, err := svc.CreateReview(CreateReviewRequest{Provider: "prov-1", User: "u1", Rating: 4, Comment: "good"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = svc.DeleteReview(rev.ID, "someone-else", models.RoleUser)
	var fe utils.ForbiddenError
	if !errors.As(err, &fe) {
		t.Fatalf("expected ForbiddenError for non-author, got %v", err)
	}

	if err := svc.DeleteReview(rev.ID, "moderator", models.RoleAdmin); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if len(reviews.reviews) != 0 {
		t.Fatalf("review still present after delete")
	}
}

func TestListByProviderSortMapping(t *testing.T) {
	svc, reviews, _ := newTestService("prov-1")

	tests := []struct {
		sort string
		want reviewRepo.SortOrder
	}{
		{"newest", reviewRepo.SortNewest},
		{"oldest", reviewRepo.SortOldest},
		{"highest", reviewRepo.SortHighest},
		{"lowest", reviewRepo.SortLowest},
		{"", reviewRepo.SortNewest},
		{"bogus", reviewRepo.SortNewest},
	}
	for _, tt := range tests {
		t.Run("sort="+tt.sort, func(t *testing.T) {
			if _, err := svc.ListByProvider("prov-1", tt.sort); err != nil {
				t.Fatalf("list: %v", err)
			}
			if reviews.lastSort != tt.want {
				t.Fatalf("sort order = %q, want %q", reviews.lastSort, tt.want)
			}
		})
	}
}
