package store

import (
	"context"
	"sync"

	"github.com/seojoohe-netizen/ai-survey/internal/models"
)

// MemoryStore keeps submissions in process memory, in append order.
// It is the default driver for local runs and the double for tests.
type MemoryStore struct {
	mu   sync.RWMutex
	subs []*models.Submission
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{subs: []*models.Submission{}}
}

func copySubmission(sub *models.Submission) *models.Submission {
	cp := *sub
	if sub.Answers != nil {
		cp.Answers = make(map[string]string, len(sub.Answers))
		for k, v := range sub.Answers {
			cp.Answers[k] = v
		}
	}
	return &cp
}

func (s *MemoryStore) LoadAll(ctx context.Context) ([]*models.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Submission, 0, len(s.subs))
	for _, sub := range s.subs {
		out = append(out, copySubmission(sub))
	}
	return out, nil
}

func (s *MemoryStore) Append(ctx context.Context, sub *models.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, copySubmission(sub))
	return nil
}

func (s *MemoryStore) Close() error { return nil }
