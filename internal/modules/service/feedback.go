package service

import (
	"context"
	"errors"

	"github.com/tgcs/experience-api/internal/modules/repo"
)

type FeedbackService interface {
	// IDsByExperience maps experience ids to the ids of their feedback.
	IDsByExperience(ctx context.Context) (map[int64][]int64, error)
	Get(ctx context.Context, feedbackID int64) (repo.Record, error)
}

type feedbackService struct {
	r repo.FeedbackRepo
}

func NewFeedbackService(r repo.FeedbackRepo) FeedbackService {
	return &feedbackService{r: r}
}

func (s *feedbackService) IDsByExperience(ctx context.Context) (map[int64][]int64, error) {
	return s.r.IDsByExperience(ctx)
}

func (s *feedbackService) Get(ctx context.Context, feedbackID int64) (repo.Record, error) {
	f, err := s.r.Get(ctx, feedbackID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, err
	}
	return f, nil
}
