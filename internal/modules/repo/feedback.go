package repo

import (
	"context"
	"fmt"
)

var (
	feedbackFields  = []string{"feedback_id", "experience_id", "feedback"}
	feedbackColumns = BuildColumns("feedback", feedbackFields)
)

type FeedbackRepo interface {
	// IDsByExperience maps each experience_id to its feedback ids.
	IDsByExperience(ctx context.Context) (map[int64][]int64, error)
	Get(ctx context.Context, feedbackID int64) (Record, error)
}

type feedbackRepo struct{ q Querier }

func NewFeedbackRepo(q Querier) FeedbackRepo {
	return &feedbackRepo{q: q}
}

func (r *feedbackRepo) IDsByExperience(ctx context.Context) (map[int64][]int64, error) {
	rows, err := r.q.Query(ctx, "SELECT feedback.feedback_id, feedback.experience_id FROM feedback ORDER BY feedback.feedback_id")
	if err != nil {
		return nil, err
	}

	out := make(map[int64][]int64)
	for _, row := range rows {
		experienceID, err := KeyOf(row["experience_id"])
		if err != nil {
			return nil, fmt.Errorf("experience_id: %w", err)
		}
		feedbackID, err := KeyOf(row["feedback_id"])
		if err != nil {
			return nil, fmt.Errorf("feedback_id: %w", err)
		}
		out[experienceID] = append(out[experienceID], feedbackID)
	}
	return out, nil
}

func (r *feedbackRepo) Get(ctx context.Context, feedbackID int64) (Record, error) {
	rows, err := r.q.Query(ctx,
		"SELECT "+feedbackColumns+" FROM feedback WHERE feedback.feedback_id = ?",
		feedbackID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return shape(rows[0], "", feedbackFields), nil
}
