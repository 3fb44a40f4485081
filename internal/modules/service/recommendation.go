package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/tgcs/experience-api/internal/modules/model"
	"github.com/tgcs/experience-api/internal/modules/repo"
)

const (
	DefaultRecommendationLimit = 10
	MaxRecommendationLimit     = 50
)

var (
	scoreFields     = []string{"score_time", "score_difficulty", "score_benefit", "score_mgmt"}
	experienceTypes = []model.ExperienceType{model.TypeCompetition, model.TypeProgram, model.TypeExtracurricular}
)

type RecommendInput struct {
	// LikedIDs are experiences the caller liked; they are never recommended.
	LikedIDs []int64
	Limit    int
}

type Recommendation struct {
	Experience Experience `json:"experience"`
	Score      float64    `json:"score"`
}

type RecommendationService interface {
	// Recommend ranks the experiences not in LikedIDs by cosine similarity
	// to the mean of the liked experiences' feature vectors.
	Recommend(ctx context.Context, in RecommendInput) ([]Recommendation, error)
}

type recommendationService struct {
	experiences ExperienceService
}

func NewRecommendationService(experiences ExperienceService) RecommendationService {
	return &recommendationService{experiences: experiences}
}

func (s *recommendationService) Recommend(ctx context.Context, in RecommendInput) ([]Recommendation, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}
	if limit > MaxRecommendationLimit {
		limit = MaxRecommendationLimit
	}

	all, err := s.experiences.List(ctx)
	if err != nil {
		return nil, err
	}

	liked := make(map[int64]bool, len(in.LikedIDs))
	for _, id := range in.LikedIDs {
		liked[id] = true
	}

	vectors := featureVectors(all)

	var profile []float64
	n := 0
	for i, e := range all {
		if !liked[e.ID] {
			continue
		}
		if profile == nil {
			profile = make([]float64, len(vectors[i]))
		}
		for d, v := range vectors[i] {
			profile[d] += v
		}
		n++
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: none of the liked ids exist", ErrExperienceNotFound)
	}
	for d := range profile {
		profile[d] /= float64(n)
	}

	out := make([]Recommendation, 0, len(all))
	for i, e := range all {
		if liked[e.ID] {
			continue
		}
		out = append(out, Recommendation{Experience: e, Score: cosineSimilarity(profile, vectors[i])})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Score > out[b].Score })

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// featureVectors builds one vector per experience: the four scores and the
// entry fee scaled by their maximum, the virtual flag, a type one-hot and a
// multi-hot over every category seen.
func featureVectors(experiences []Experience) [][]float64 {
	categoryIndex := map[string]int{}
	for _, e := range experiences {
		for _, c := range categoriesOf(e) {
			if _, ok := categoryIndex[c]; !ok {
				categoryIndex[c] = len(categoryIndex)
			}
		}
	}

	numeric := append(append([]string{}, scoreFields...), "entry_fee")
	maxes := make([]float64, len(numeric))
	for _, e := range experiences {
		for i, f := range numeric {
			maxes[i] = math.Max(maxes[i], math.Abs(toFloat(e.Base[f])))
		}
	}

	dims := len(numeric) + 1 + len(experienceTypes) + len(categoryIndex)
	vectors := make([][]float64, len(experiences))
	for i, e := range experiences {
		v := make([]float64, dims)
		for j, f := range numeric {
			if maxes[j] > 0 {
				v[j] = toFloat(e.Base[f]) / maxes[j]
			}
		}
		off := len(numeric)
		v[off] = toFloat(e.Base["virtual"])
		off++
		for j, t := range experienceTypes {
			if e.Type() == t {
				v[off+j] = 1
			}
		}
		off += len(experienceTypes)
		for _, c := range categoriesOf(e) {
			v[off+categoryIndex[c]] = 1
		}
		vectors[i] = v
	}
	return vectors
}

func categoriesOf(e Experience) []string {
	records, _ := e.Base["categories"].([]repo.Record)
	out := make([]string, 0, len(records))
	for _, r := range records {
		if c, ok := r["category"].(string); ok && c != "" {
			out = append(out, c)
		}
	}
	return out
}

// toFloat reads a numeric column value. Drivers return decimals as strings
// and booleans as small integers.
func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int8:
		return float64(n)
	case uint8:
		return float64(n)
	case uint64:
		return float64(n)
	case bool:
		if n {
			return 1
		}
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f
		}
	}
	return 0
}

func cosineSimilarity(a, b []float64) float64 {
	var dot, aMag, bMag float64
	for i := range a {
		dot += a[i] * b[i]
		aMag += a[i] * a[i]
		bMag += b[i] * b[i]
	}
	if aMag == 0 || bMag == 0 {
		return 0
	}
	return dot / (math.Sqrt(aMag) * math.Sqrt(bMag))
}
