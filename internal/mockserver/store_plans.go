package mockserver

import (
	"fmt"
	"time"

	"github.com/bp-review/bp-review-go/internal/review/domain"
)

// SaveUpload stores the uploaded document and (re)starts parse
// progress for the project.
func (s *Store) SaveUpload(id, fileName string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return domain.ErrNotFound
	}
	rec.plan = &businessPlan{
		FileName:   fileName,
		Data:       data,
		UploadedAt: time.Now().UTC(),
		Progress:   10,
		Message:    "已接收BP文档",
	}
	rec.project.Status = domain.StatusProcessing
	return nil
}

func (s *Store) PlanStatus(id string) (domain.ProcessingStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return domain.ProcessingStatus{}, domain.ErrNotFound
	}
	if rec.plan == nil {
		return domain.ProcessingStatus{}, domain.ErrNoBusinessPlan
	}
	return domain.ProcessingStatus{Progress: rec.plan.Progress, Message: rec.plan.Message}, nil
}

func (s *Store) PlanInfo(id string) (domain.BusinessPlanInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return domain.BusinessPlanInfo{}, domain.ErrNotFound
	}
	if rec.plan == nil {
		return domain.BusinessPlanInfo{}, domain.ErrNoBusinessPlan
	}
	uploadedAt := rec.plan.UploadedAt
	return domain.BusinessPlanInfo{
		FileName:   rec.plan.FileName,
		FileSize:   int64(len(rec.plan.Data)),
		UploadedAt: &uploadedAt,
		Exists:     true,
	}, nil
}

func (s *Store) PlanData(id string) (string, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return "", nil, domain.ErrNotFound
	}
	if rec.plan == nil {
		return "", nil, domain.ErrNoBusinessPlan
	}
	return rec.plan.FileName, rec.plan.Data, nil
}

// ProjectStatus returns the current status string for the WS poller.
func (s *Store) ProjectStatus(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return "", false
	}
	return rec.project.Status, true
}

// AdvancePipeline steps every processing project through the simulated
// review pipeline. Once progress reaches 100 the project completes and
// receives generated scores, which is what flips the live status
// channel and the detail page over.
func (s *Store) AdvancePipeline() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records {
		if rec.project.Status != domain.StatusProcessing {
			continue
		}
		if rec.plan == nil {
			// Nothing to parse yet; wait for an upload.
			continue
		}

		rec.plan.Progress += 20
		switch {
		case rec.plan.Progress < 40:
			rec.plan.Message = "正在解析BP文档"
		case rec.plan.Progress < 80:
			rec.plan.Message = "正在评估各维度"
		case rec.plan.Progress < 100:
			rec.plan.Message = "正在生成评分"
		default:
			rec.plan.Progress = 100
			rec.plan.Message = "评审完成"
			s.completeLocked(rec)
		}
	}
}

func (s *Store) completeLocked(rec *record) {
	if len(rec.scores.Dimensions) == 0 {
		rec.scores = generatedScores()
	}
	total := 0.0
	for _, d := range rec.scores.Dimensions {
		total += d.Score
	}
	rec.project.TotalScore = &total
	rec.project.Status = domain.StatusCompleted
	if total >= 60 {
		rec.project.ReviewResult = "通过"
	} else {
		rec.project.ReviewResult = "不通过"
	}
	now := time.Now().UTC()
	rec.project.UpdatedAt = &now
}

func generatedScores() domain.ProjectScores {
	return domain.ProjectScores{Dimensions: []domain.Score{
		{
			Dimension: "团队能力", Score: 28, MaxScore: 40, Comments: "团队结构完整",
			SubDimensions: []domain.SubScore{
				{SubDimension: "核心成员", Score: 15, MaxScore: 20},
				{SubDimension: "技术能力", Score: 13, MaxScore: 20},
			},
		},
		{Dimension: "市场前景", Score: 22, MaxScore: 30, Comments: "赛道竞争激烈", SubDimensions: []domain.SubScore{}},
		{Dimension: "商业模式", Score: 14, MaxScore: 20, Comments: "收入模式待验证", SubDimensions: []domain.SubScore{}},
		{Dimension: "财务情况", Score: 12, MaxScore: 20, Comments: "现金流一般", SubDimensions: []domain.SubScore{}},
	}}
}

// minimalPDF produces a tiny single-page PDF so downloads stream real
// bytes with the right magic.
func minimalPDF(title string) []byte {
	content := fmt.Sprintf("BT /F1 18 Tf 72 720 Td (%s) Tj ET", title)
	return []byte(fmt.Sprintf(`%%PDF-1.4
1 0 obj << /Type /Catalog /Pages 2 0 R >> endobj
2 0 obj << /Type /Pages /Kids [3 0 R] /Count 1 >> endobj
3 0 obj << /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >> endobj
4 0 obj << /Length %d >> stream
%s
endstream endobj
5 0 obj << /Type /Font /Subtype /Type1 /BaseFont /Helvetica >> endobj
trailer << /Root 1 0 R >>
%%%%EOF
`, len(content), content))
}
