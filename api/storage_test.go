package api

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/fintrack/backend/db"
	"github.com/fintrack/backend/models"
	"github.com/fintrack/backend/notify"
	"github.com/shopspring/decimal"
)

// memStorage is an in-memory Storage used by the handler tests.
type memStorage struct {
	mu           sync.Mutex
	users        []models.User
	categories   []models.Category
	transactions map[int]models.Transaction
	properties   map[string]*models.UserProperties
	nextTxID     int
	pingErr      error
}

func newMemStorage() *memStorage {
	return &memStorage{
		categories: []models.Category{
			{ID: 1, Name: "Salary", Type: models.TypeIncome},
			{ID: 2, Name: "Bonus", Type: models.TypeIncome},
			{ID: 6, Name: "Food", Type: models.TypeExpense},
			{ID: 8, Name: "Housing", Type: models.TypeExpense},
		},
		transactions: map[int]models.Transaction{},
		properties:   map[string]*models.UserProperties{},
	}
}

func (s *memStorage) CreateUser(_ context.Context, userName, email, hash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return nil, db.ErrEmailTaken
		}
		if u.UserName == userName {
			return nil, db.ErrUserNameTaken
		}
	}
	u := models.User{ID: len(s.users) + 1, UserName: userName, Email: email, Password: hash, RegisteredAt: time.Now()}
	s.users = append(s.users, u)
	s.properties[userName] = &models.UserProperties{UserName: userName, CreatedAt: u.RegisteredAt, LastUpdated: u.RegisteredAt}
	return &u, nil
}

func (s *memStorage) findUser(match func(models.User) bool) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if match(u) {
			u := u
			return &u
		}
	}
	return nil
}

func (s *memStorage) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return s.findUser(func(u models.User) bool { return u.Email == email }), nil
}

func (s *memStorage) GetUserByUserName(_ context.Context, userName string) (*models.User, error) {
	return s.findUser(func(u models.User) bool { return u.UserName == userName }), nil
}

func (s *memStorage) GetCategories(context.Context) ([]models.Category, error) {
	return append([]models.Category(nil), s.categories...), nil
}

func (s *memStorage) GetCategory(_ context.Context, id int) (*models.Category, error) {
	for _, c := range s.categories {
		if c.ID == id {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (s *memStorage) categoryName(id int) (string, bool) {
	for _, c := range s.categories {
		if c.ID == id {
			return c.Name, true
		}
	}
	return "", false
}

func (s *memStorage) CreateTransaction(_ context.Context, t *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categoryName(t.CategoryID); !ok {
		return db.ErrUnknownCategory
	}
	s.nextTxID++
	t.ID = s.nextTxID
	t.CreatedAt, t.UpdatedAt = time.Now(), time.Now()
	s.transactions[t.ID] = *t
	return nil
}

func matches(t models.Transaction, userName string, f models.TransactionFilter) bool {
	return t.UserName == userName &&
		(f.Type == "" || t.Type == f.Type) &&
		(f.CategoryID == 0 || t.CategoryID == f.CategoryID) &&
		(f.From == nil || !t.TransactionDate.Before(*f.From)) &&
		(f.To == nil || t.TransactionDate.Before(*f.To))
}

func (s *memStorage) GetTransactions(_ context.Context, userName string, f models.TransactionFilter) ([]models.Transaction, error) {
	if f.Type != "" && !models.ValidType(f.Type) {
		return nil, db.ErrInvalidFilter
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Transaction{}
	for _, t := range s.transactions {
		if matches(t, userName, f) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TransactionDate.After(out[j].TransactionDate) })
	return out, nil
}

func (s *memStorage) GetTransaction(_ context.Context, id int, userName string) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transactions[id]
	if !ok || t.UserName != userName {
		return nil, nil
	}
	return &t, nil
}

func (s *memStorage) UpdateTransaction(_ context.Context, t *models.Transaction) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.transactions[t.ID]
	if !ok || old.UserName != t.UserName {
		return false, nil
	}
	if _, ok := s.categoryName(t.CategoryID); !ok {
		return false, db.ErrUnknownCategory
	}
	t.CreatedAt, t.UpdatedAt = old.CreatedAt, time.Now()
	s.transactions[t.ID] = *t
	return true, nil
}

func (s *memStorage) DeleteTransaction(_ context.Context, id int, userName string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transactions[id]
	if !ok || t.UserName != userName {
		return false, nil
	}
	delete(s.transactions, id)
	return true, nil
}

func (s *memStorage) GetTotals(ctx context.Context, userName string, f models.TransactionFilter) (*models.Totals, error) {
	list, err := s.GetTransactions(ctx, userName, f)
	if err != nil {
		return nil, err
	}
	byCategory := map[int]*models.CategoryTotal{}
	totals := &models.Totals{Categories: []models.CategoryTotal{}}
	for _, t := range list {
		ct, ok := byCategory[t.CategoryID]
		if !ok {
			name, _ := s.categoryName(t.CategoryID)
			ct = &models.CategoryTotal{CategoryID: t.CategoryID, CategoryName: name, TransactionType: t.Type}
			byCategory[t.CategoryID] = ct
		}
		ct.Total = ct.Total.Add(t.Amount)
	}
	for _, ct := range byCategory {
		totals.Categories = append(totals.Categories, *ct)
	}
	sort.Slice(totals.Categories, func(i, j int) bool {
		return totals.Categories[i].CategoryID < totals.Categories[j].CategoryID
	})
	totals.Sum()
	return totals, nil
}

func (s *memStorage) GetProperties(_ context.Context, userName string) (*models.UserProperties, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.properties[userName]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *memStorage) UpdateCurrentProperty(_ context.Context, userName string, amount decimal.Decimal) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.properties[userName]
	if !ok {
		return false, nil
	}
	p.CurrentProperty = amount
	p.LastUpdated = time.Now()
	return true, nil
}

func (s *memStorage) SetGoal(_ context.Context, userName string, g *models.Goal) (*models.UserProperties, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.properties[userName]
	if !ok {
		return nil, nil
	}
	deadline := g.GoalDeadline
	p.PropertyGoal = g.PropertyGoal
	p.GoalDeadline = &deadline
	p.GoalMotivation = g.GoalMotivation
	p.GoalNote = g.GoalNote
	p.MonthlyGoal = g.MonthlyGoal
	p.MonthlyGoalDeadline = g.MonthlyGoalDeadline
	p.LastUpdated = time.Now()
	cp := *p
	return &cp, nil
}

func (s *memStorage) Ping(context.Context) error {
	return s.pingErr
}

// recordingPublisher keeps every published notification.
type recordingPublisher struct {
	mu   sync.Mutex
	sent []notify.Notification
	err  error
}

func (p *recordingPublisher) Publish(_ context.Context, n notify.Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, n)
	return nil
}

func (p *recordingPublisher) notifications() []notify.Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]notify.Notification(nil), p.sent...)
}

var errPing = errors.New("connection refused")
