package mockserver

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/bp-review/bp-review-go/internal/review/domain"
)

func (s *Store) Scores(id string) (domain.ProjectScores, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return domain.ProjectScores{}, false
	}
	return rec.scores.Clone(), true
}

// UpdateScores replaces the full dimension set. Scores are clamped to
// [0, max_score] server-side as well, the project total is recomputed
// and an immutable history snapshot is appended.
func (s *Store) UpdateScores(id, modifiedBy string, scores domain.ProjectScores) (domain.ProjectScores, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return domain.ProjectScores{}, false
	}

	clamped := scores.Clone()
	total := 0.0
	for i := range clamped.Dimensions {
		d := &clamped.Dimensions[i]
		d.Score = clamp(d.Score, d.MaxScore)
		for j := range d.SubDimensions {
			sub := &d.SubDimensions[j]
			sub.Score = clamp(sub.Score, sub.MaxScore)
		}
		total += d.Score
	}

	rec.scores = clamped
	rec.project.TotalScore = &total
	now := time.Now().UTC()
	rec.project.UpdatedAt = &now

	snapshot := make(map[string]domain.HistoryDimension, len(clamped.Dimensions))
	for _, d := range clamped.Dimensions {
		subs := make([]domain.SubScore, len(d.SubDimensions))
		copy(subs, d.SubDimensions)
		snapshot[d.Dimension] = domain.HistoryDimension{
			Score:         d.Score,
			MaxScore:      d.MaxScore,
			Comments:      d.Comments,
			SubDimensions: subs,
		}
	}
	rec.history = append(rec.history, domain.ScoreHistoryItem{
		ID:                uuid.NewString(),
		TotalScore:        total,
		ModifiedBy:        modifiedBy,
		ModificationNotes: "人工调整评分",
		CreatedAt:         now,
		Dimensions:        snapshot,
	})

	return clamped.Clone(), true
}

func clamp(v, max float64) float64 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

func (s *Store) Summary(id string) (domain.ScoreSummary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return domain.ScoreSummary{}, false
	}

	summary := domain.ScoreSummary{
		ProjectID:          rec.project.ID,
		ProjectName:        rec.project.ProjectName,
		EnterpriseName:     rec.project.EnterpriseName,
		DimensionBreakdown: make(map[string]domain.DimensionRollup),
		LastUpdated:        rec.project.CreatedAt,
	}
	if rec.project.UpdatedAt != nil {
		summary.LastUpdated = *rec.project.UpdatedAt
	}

	for _, d := range rec.scores.Dimensions {
		summary.TotalScore += d.Score
		summary.TotalPossible += d.MaxScore
		summary.DimensionBreakdown[d.Dimension] = domain.DimensionRollup{
			Score:      d.Score,
			MaxScore:   d.MaxScore,
			Percentage: percentage(d.Score, d.MaxScore),
		}
	}
	summary.OverallPercentage = percentage(summary.TotalScore, summary.TotalPossible)
	switch {
	case summary.OverallPercentage >= 80:
		summary.Recommendation = "推荐通过"
	case summary.OverallPercentage >= 60:
		summary.Recommendation = "有条件通过"
	default:
		summary.Recommendation = "不推荐通过"
	}
	return summary, true
}

func percentage(score, possible float64) float64 {
	if possible <= 0 {
		return 0
	}
	return math.Round(score/possible*10000) / 100
}

func (s *Store) History(id string) (domain.ScoreHistory, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return domain.ScoreHistory{}, false
	}

	items := make([]domain.ScoreHistoryItem, len(rec.history))
	copy(items, rec.history)
	return domain.ScoreHistory{
		ProjectID:      rec.project.ID,
		ProjectName:    rec.project.ProjectName,
		EnterpriseName: rec.project.EnterpriseName,
		History:        items,
	}, true
}

func (s *Store) MissingInfo(id string) ([]domain.MissingInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, false
	}
	items := make([]domain.MissingInfo, len(rec.missing))
	copy(items, rec.missing)
	return items, true
}

// AddMissingInfo appends an item; a dimension+type pair may only be
// flagged once per project.
func (s *Store) AddMissingInfo(id string, item domain.MissingInfo) (domain.MissingInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return domain.MissingInfo{}, domain.ErrNotFound
	}
	for _, existing := range rec.missing {
		if existing.Dimension == item.Dimension && existing.InformationType == item.InformationType {
			return domain.MissingInfo{}, domain.ErrDuplicateMissingInfo
		}
	}
	item.ID = uuid.NewString()
	if item.Status == "" {
		item.Status = domain.MissingInfoPending
	}
	rec.missing = append(rec.missing, item)
	return item, nil
}

func (s *Store) UpdateMissingInfo(id, infoID string, item domain.MissingInfo) (domain.MissingInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return domain.MissingInfo{}, domain.ErrNotFound
	}
	for i := range rec.missing {
		if rec.missing[i].ID == infoID {
			item.ID = infoID
			if item.Status == "" {
				item.Status = rec.missing[i].Status
			}
			rec.missing[i] = item
			return item, nil
		}
	}
	return domain.MissingInfo{}, domain.ErrNotFound
}

func (s *Store) DeleteMissingInfo(id, infoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return domain.ErrNotFound
	}
	for i := range rec.missing {
		if rec.missing[i].ID == infoID {
			rec.missing = append(rec.missing[:i], rec.missing[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
