package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgcs/experience-api/internal/modules/repo"
)

type stubExperiences struct {
	list []Experience
	err  error
}

func (s stubExperiences) List(context.Context) ([]Experience, error) { return s.list, s.err }

func (s stubExperiences) Get(_ context.Context, id int64) (*Experience, error) {
	for i := range s.list {
		if s.list[i].ID == id {
			return &s.list[i], nil
		}
	}
	return nil, ErrExperienceNotFound
}

func exp(id int64, typ string, scores [4]float64, fee any, virtual int64, categories ...string) Experience {
	cats := make([]repo.Record, 0, len(categories))
	for _, c := range categories {
		cats = append(cats, repo.Record{"category": c})
	}
	return Experience{ID: id, Base: repo.Record{
		"experience_id":    id,
		"type":             typ,
		"score_time":       scores[0],
		"score_difficulty": scores[1],
		"score_benefit":    scores[2],
		"score_mgmt":       scores[3],
		"entry_fee":        fee,
		"virtual":          virtual,
		"categories":       cats,
	}}
}

func catalogue() []Experience {
	return []Experience{
		exp(1, "COMPETITION", [4]float64{5, 9, 8, 4}, "25.00", 0, "STEM", "math"),
		exp(2, "COMPETITION", [4]float64{5, 8, 8, 5}, "30.00", 0, "STEM", "math"),
		exp(3, "PROGRAM", [4]float64{1, 2, 3, 9}, "400.00", 1, "arts"),
		exp(4, "EXTRACURRICULAR", [4]float64{2, 2, 2, 2}, nil, 1, "sports"),
	}
}

func TestRecommendationService_Recommend(t *testing.T) {
	s := NewRecommendationService(stubExperiences{list: catalogue()})

	got, err := s.Recommend(context.Background(), RecommendInput{LikedIDs: []int64{1}})
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, int64(2), got[0].Experience.ID)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
	for _, r := range got {
		assert.NotEqual(t, int64(1), r.Experience.ID)
	}
}

func TestRecommendationService_Limit(t *testing.T) {
	s := NewRecommendationService(stubExperiences{list: catalogue()})

	got, err := s.Recommend(context.Background(), RecommendInput{LikedIDs: []int64{1, 3}, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestRecommendationService_Errors(t *testing.T) {
	t.Run("unknown liked ids", func(t *testing.T) {
		s := NewRecommendationService(stubExperiences{list: catalogue()})
		_, err := s.Recommend(context.Background(), RecommendInput{LikedIDs: []int64{42}})
		assert.ErrorIs(t, err, ErrExperienceNotFound)
	})

	t.Run("store failure", func(t *testing.T) {
		s := NewRecommendationService(stubExperiences{err: errors.New("down")})
		_, err := s.Recommend(context.Background(), RecommendInput{LikedIDs: []int64{1}})
		assert.EqualError(t, err, "down")
	})
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float64{1, 2}, []float64{2, 4}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float64{1, 0}, []float64{0, 1}), 1e-9)
	assert.Equal(t, 0.0, cosineSimilarity([]float64{0, 0}, []float64{1, 1}))
	assert.InDelta(t, math.Sqrt2/2, cosineSimilarity([]float64{1, 0}, []float64{1, 1}), 1e-9)
}

func TestToFloat(t *testing.T) {
	assert.Equal(t, 2.5, toFloat("2.5"))
	assert.Equal(t, 3.0, toFloat(int64(3)))
	assert.Equal(t, 1.0, toFloat(true))
	assert.Equal(t, 1.0, toFloat(uint8(1)))
	assert.Equal(t, 0.0, toFloat(nil))
	assert.Equal(t, 0.0, toFloat("n/a"))
}
