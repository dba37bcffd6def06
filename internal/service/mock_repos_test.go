package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/funnyprom/work-management-system/internal/model"
	"github.com/funnyprom/work-management-system/internal/repository"
	"github.com/funnyprom/work-management-system/pkg/redis"
)

// ── Mock PurchaseRequestRepository ──

type mockPurchaseRequestRepo struct {
	prs    map[string]*model.PurchaseRequest
	nextID int64
	calls  int

	// 注入错误
	createErr error
	getErr    error
	statsErr  error
	listErr   error
}

func newMockPurchaseRequestRepo() *mockPurchaseRequestRepo {
	return &mockPurchaseRequestRepo{prs: make(map[string]*model.PurchaseRequest)}
}

func (m *mockPurchaseRequestRepo) Create(_ context.Context, pr *model.PurchaseRequest) error {
	m.calls++
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	pr.PRID = m.nextID
	pr.PRGuid = fmt.Sprintf("00000000-0000-0000-0000-%012d", m.nextID)
	pr.CreatedAt = time.Now()
	pr.UpdatedAt = pr.CreatedAt
	for i := range pr.Items {
		pr.Items[i].PRID = pr.PRID
		pr.Items[i].ItemGuid = fmt.Sprintf("10000000-0000-0000-0000-%06d%06d", pr.PRID, i)
	}
	stored := *pr
	stored.Items = append([]model.PurchaseRequestItem(nil), pr.Items...)
	m.prs[pr.PRGuid] = &stored
	return nil
}

func (m *mockPurchaseRequestRepo) Replace(_ context.Context, guid string, pr *model.PurchaseRequest) error {
	m.calls++
	current, ok := m.prs[guid]
	if !ok || current.IsDeleted {
		return gorm.ErrRecordNotFound
	}
	if m.createErr != nil {
		return m.createErr
	}
	pr.PRID = current.PRID
	pr.PRGuid = current.PRGuid
	if pr.RequestDate.IsZero() {
		pr.RequestDate = current.RequestDate
	}
	for i := range pr.Items {
		pr.Items[i].PRID = pr.PRID
	}
	stored := *pr
	stored.CreatedAt = current.CreatedAt
	stored.UpdatedAt = time.Now()
	stored.Items = append([]model.PurchaseRequestItem(nil), pr.Items...)
	m.prs[guid] = &stored
	return nil
}

func (m *mockPurchaseRequestRepo) GetByGUID(_ context.Context, guid string) (*model.PurchaseRequest, error) {
	m.calls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	pr, ok := m.prs[guid]
	if !ok || pr.IsDeleted {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *pr
	return &cp, nil
}

func (m *mockPurchaseRequestRepo) List(_ context.Context, filter repository.PurchaseRequestFilter) ([]model.PurchaseRequest, error) {
	m.calls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	result := make([]model.PurchaseRequest, 0)
	for _, pr := range m.prs {
		if pr.IsDeleted {
			continue
		}
		if filter.Status != "" && pr.Status != filter.Status {
			continue
		}
		if filter.Department != "" && pr.Department != filter.Department {
			continue
		}
		result = append(result, *pr)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].PRID > result[j].PRID })
	return result, nil
}

func (m *mockPurchaseRequestRepo) SoftDelete(_ context.Context, guid string) error {
	m.calls++
	pr, ok := m.prs[guid]
	if !ok || pr.IsDeleted {
		return gorm.ErrRecordNotFound
	}
	pr.IsDeleted = true
	return nil
}

func (m *mockPurchaseRequestRepo) Stats(_ context.Context) (*model.PurchaseRequestStats, error) {
	m.calls++
	if m.statsErr != nil {
		return nil, m.statsErr
	}
	stats := &model.PurchaseRequestStats{TotalAmount: decimal.Zero}
	for _, pr := range m.prs {
		if pr.IsDeleted {
			continue
		}
		stats.Total++
		stats.TotalAmount = stats.TotalAmount.Add(pr.TotalAmount)
		switch pr.Status {
		case model.PRStatusDraft:
			stats.Draft++
		case model.PRStatusPending:
			stats.Pending++
		case model.PRStatusApproved:
			stats.Approved++
		case model.PRStatusRejected:
			stats.Rejected++
		}
	}
	return stats, nil
}

// ── Mock TaskRepository ──

type mockTaskRepo struct {
	tasks  map[string]*model.Task
	nextID int64
	calls  int
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{tasks: make(map[string]*model.Task)}
}

func (m *mockTaskRepo) Create(_ context.Context, task *model.Task) error {
	m.calls++
	m.nextID++
	task.TaskID = m.nextID
	task.TaskGuid = fmt.Sprintf("20000000-0000-0000-0000-%012d", m.nextID)
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	cp := *task
	m.tasks[task.TaskGuid] = &cp
	return nil
}

func (m *mockTaskRepo) GetByGUID(_ context.Context, guid string) (*model.Task, error) {
	m.calls++
	t, ok := m.tasks[guid]
	if !ok || t.IsDeleted {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *mockTaskRepo) List(_ context.Context) ([]model.Task, error) {
	m.calls++
	result := make([]model.Task, 0)
	for _, t := range m.tasks {
		if !t.IsDeleted {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *mockTaskRepo) Update(_ context.Context, guid string, task *model.Task) error {
	m.calls++
	t, ok := m.tasks[guid]
	if !ok || t.IsDeleted {
		return gorm.ErrRecordNotFound
	}
	t.Title = task.Title
	t.Description = task.Description
	t.Status = task.Status
	t.Priority = task.Priority
	t.Assignee = task.Assignee
	t.DueDate = task.DueDate
	t.UpdatedAt = time.Now()
	return nil
}

func (m *mockTaskRepo) SoftDelete(_ context.Context, guid string) error {
	m.calls++
	t, ok := m.tasks[guid]
	if !ok || t.IsDeleted {
		return gorm.ErrRecordNotFound
	}
	t.IsDeleted = true
	return nil
}

func (m *mockTaskRepo) Stats(_ context.Context, now time.Time) (*model.TaskStats, error) {
	m.calls++
	stats := &model.TaskStats{}
	for _, t := range m.tasks {
		if t.IsDeleted {
			continue
		}
		stats.Total++
		switch t.Status {
		case model.TaskStatusTodo:
			stats.Todo++
		case model.TaskStatusInProgress:
			stats.InProgress++
		case model.TaskStatusDone:
			stats.Done++
		}
		if t.Priority == model.TaskPriorityHigh {
			stats.HighPriority++
		}
		if t.DueDate != nil && t.DueDate.Before(now) && t.Status != model.TaskStatusDone {
			stats.Overdue++
		}
	}
	return stats, nil
}

// ── Mock DepartmentRepository ──

type mockDeptRepo struct {
	depts     []model.Department
	createErr error
}

func newMockDeptRepo() *mockDeptRepo {
	return &mockDeptRepo{}
}

func (m *mockDeptRepo) Create(_ context.Context, dept *model.Department) error {
	if m.createErr != nil {
		return m.createErr
	}
	dept.DepartmentID = len(m.depts) + 1
	dept.CreatedAt = time.Now()
	m.depts = append(m.depts, *dept)
	return nil
}

func (m *mockDeptRepo) List(_ context.Context) ([]model.Department, error) {
	result := make([]model.Department, 0)
	for _, d := range m.depts {
		if d.IsActive {
			result = append(result, d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DepartmentName < result[j].DepartmentName })
	return result, nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[int]*model.User
	calls int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	m.calls++
	user.UserID = len(m.users) + 1
	user.CreatedAt = time.Now()
	cp := *user
	m.users[user.UserID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int) (*model.User, error) {
	m.calls++
	u, ok := m.users[id]
	if !ok || !u.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	m.calls++
	result := make([]model.User, 0)
	for _, u := range m.users {
		if u.IsActive {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FullName < result[j].FullName })
	return result, nil
}

// ── Mock StatsCache ──

type mockStatsCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	deletes int
	sets    int
}

func newMockStatsCache() *mockStatsCache {
	return &mockStatsCache{data: make(map[string][]byte)}
}

func (m *mockStatsCache) GetJSON(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	if !ok {
		return redis.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *mockStatsCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.sets++
	m.data[key] = raw
	return nil
}

func (m *mockStatsCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	m.deletes++
	return nil
}

// errStore 模拟存储层故障
var errStore = errors.New("connection refused")

// ── 测试装配 ──

type testRepos struct {
	pr    *mockPurchaseRequestRepo
	task  *mockTaskRepo
	dept  *mockDeptRepo
	user  *mockUserRepo
	cache *mockStatsCache
}

func newTestRepository() (*repository.Repository, *testRepos) {
	r := &testRepos{
		pr:    newMockPurchaseRequestRepo(),
		task:  newMockTaskRepo(),
		dept:  newMockDeptRepo(),
		user:  newMockUserRepo(),
		cache: newMockStatsCache(),
	}
	return &repository.Repository{
		PurchaseRequest: r.pr,
		Task:            r.task,
		Department:      r.dept,
		User:            r.user,
	}, r
}
