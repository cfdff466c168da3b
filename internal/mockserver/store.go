package mockserver

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bp-review/bp-review-go/internal/review/domain"
)

type businessPlan struct {
	FileName   string
	Data       []byte
	UploadedAt time.Time
	Progress   int
	Message    string
}

type record struct {
	project domain.Project
	scores  domain.ProjectScores
	missing []domain.MissingInfo
	history []domain.ScoreHistoryItem
	plan    *businessPlan
}

// Store is the mock backend's in-memory state, seeded with the sample
// data local development runs against. All access is mutex-guarded so
// the WS poller, the cron pipeline and request handlers can share it.
type Store struct {
	mu      sync.Mutex
	records map[string]*record
	order   []string
	nextID  int
}

func NewStore() *Store {
	s := &Store{
		records: make(map[string]*record),
		nextID:  3,
	}
	s.seed()
	return s
}

func (s *Store) seed() {
	score88 := 88.0
	s.records["1"] = &record{
		project: domain.Project{
			ID:             "1",
			EnterpriseName: "测试企业C",
			ProjectName:    "AI智能投研",
			TeamMembers:    "张三（CEO）、李四（CTO）、王五（COO）",
			Status:         domain.StatusCompleted,
			TotalScore:     &score88,
			ReviewResult:   "通过",
			CreatedAt:      mustTime("2024-05-01T12:00:00Z"),
		},
		scores: domain.ProjectScores{Dimensions: []domain.Score{
			{
				Dimension: "团队能力", Score: 30, MaxScore: 40, Comments: "团队经验丰富",
				SubDimensions: []domain.SubScore{
					{SubDimension: "核心成员", Score: 18, MaxScore: 20, Comments: "核心成员背景优秀"},
					{SubDimension: "技术能力", Score: 12, MaxScore: 20, Comments: "技术能力较强"},
				},
			},
			{Dimension: "市场前景", Score: 25, MaxScore: 30, Comments: "市场空间大", SubDimensions: []domain.SubScore{}},
			{Dimension: "商业模式", Score: 18, MaxScore: 20, Comments: "模式清晰", SubDimensions: []domain.SubScore{}},
			{Dimension: "财务情况", Score: 15, MaxScore: 20, Comments: "", SubDimensions: []domain.SubScore{}},
		}},
		missing: []domain.MissingInfo{
			{ID: uuid.NewString(), Dimension: "财务情况", InformationType: "财务报表", Description: "缺少2023年财务报表", Status: domain.MissingInfoPending},
		},
	}
	s.records["2"] = &record{
		project: domain.Project{
			ID:             "2",
			EnterpriseName: "测试企业B",
			ProjectName:    "区块链金融",
			Status:         domain.StatusProcessing,
			CreatedAt:      mustTime("2024-05-02T12:00:00Z"),
		},
		scores: domain.ProjectScores{Dimensions: []domain.Score{}},
		plan: &businessPlan{
			FileName:   "bp.pdf",
			Data:       minimalPDF("区块链金融 BP"),
			UploadedAt: mustTime("2024-05-02T12:05:00Z"),
			Progress:   80,
			Message:    "正在解析BP文档",
		},
	}
	s.order = []string{"1", "2"}
}

func mustTime(v string) time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		panic(err)
	}
	return t
}

// List filters, sorts and paginates projects.
func (s *Store) List(params domain.ProjectListParams) domain.ProjectList {
	s.mu.Lock()
	defer s.mu.Unlock()

	var all []domain.Project
	for _, id := range s.order {
		p := s.records[id].project
		if params.Status != "" && p.Status != params.Status {
			continue
		}
		if params.Search != "" &&
			!strings.Contains(p.EnterpriseName, params.Search) &&
			!strings.Contains(p.ProjectName, params.Search) {
			continue
		}
		all = append(all, p)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := len(all)
	page, size := params.Page, params.Size
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	items := all[start:end]
	if items == nil {
		items = []domain.Project{}
	}
	return domain.ProjectList{Total: total, Items: items}
}

func (s *Store) Get(id string) (domain.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return domain.Project{}, false
	}
	return rec.project, true
}

func (s *Store) Create(data domain.ProjectCreate) domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newIDLocked()
	p := domain.Project{
		ID:             id,
		EnterpriseName: data.EnterpriseName,
		ProjectName:    data.ProjectName,
		Description:    data.Description,
		Status:         domain.StatusProcessing,
		CreatedAt:      time.Now().UTC(),
	}
	s.records[id] = &record{
		project: p,
		scores:  domain.ProjectScores{Dimensions: []domain.Score{}},
	}
	s.order = append(s.order, id)
	return p
}

func (s *Store) newIDLocked() string {
	id := s.nextID
	s.nextID++
	return strconv.Itoa(id)
}

func (s *Store) Update(id string, data domain.ProjectCreate) (domain.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return domain.Project{}, false
	}
	rec.project.EnterpriseName = data.EnterpriseName
	rec.project.ProjectName = data.ProjectName
	rec.project.Description = data.Description
	now := time.Now().UTC()
	rec.project.UpdatedAt = &now
	return rec.project, true
}

func (s *Store) UpdateTeamMembers(id, members string) (domain.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return domain.Project{}, false
	}
	rec.project.TeamMembers = members
	now := time.Now().UTC()
	rec.project.UpdatedAt = &now
	return rec.project, true
}

func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return false
	}
	delete(s.records, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Statistics recomputes the dashboard aggregate on every call.
func (s *Store) Statistics() domain.Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := domain.Statistics{RecentProjects: []domain.Project{}}
	var recent []domain.Project
	for _, id := range s.order {
		p := s.records[id].project
		switch p.Status {
		case domain.StatusPendingReview, domain.StatusProcessing:
			stats.PendingReview++
		case domain.StatusCompleted:
			stats.Completed++
		case domain.StatusNeedsInfo:
			stats.NeedsInfo++
		}
		recent = append(recent, p)
	}
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > 5 {
		recent = recent[:5]
	}
	stats.RecentProjects = recent
	return stats
}
