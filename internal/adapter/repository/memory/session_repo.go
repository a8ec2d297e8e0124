// Package memory holds live crop sessions in process memory. Sessions end
// with the process.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/geocrop/internal/domain"
	"github.com/marcos-nsantos/geocrop/internal/domain/entity"
	"github.com/marcos-nsantos/geocrop/internal/pkg/pagination"
)

type SessionRepo struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*entity.Session
}

func NewSessionRepo() *SessionRepo {
	return &SessionRepo{sessions: make(map[uuid.UUID]*entity.Session)}
}

func (r *SessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
	return nil
}

func (r *SessionRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

// List returns the operator's sessions, newest first.
func (r *SessionRepo) List(_ context.Context, operatorID uuid.UUID, params pagination.Params) ([]*entity.Session, *pagination.Info, error) {
	r.mu.RLock()
	var owned []*entity.Session
	for _, s := range r.sessions {
		if s.OperatorID == operatorID {
			owned = append(owned, s)
		}
	}
	r.mu.RUnlock()

	sort.Slice(owned, func(i, j int) bool {
		if owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].ID.String() < owned[j].ID.String()
		}
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})

	total := len(owned)
	start := min(params.Offset(), total)
	end := min(start+params.Limit(), total)

	return owned[start:end], pagination.NewInfo(params.Page, params.PerPage, total), nil
}

func (r *SessionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// DeleteIdleSince removes sessions untouched since cutoff. A session whose
// lock is held is in use and kept for the next sweep, so a long export
// never stalls the repository.
func (r *SessionRepo) DeleteIdleSince(_ context.Context, cutoff time.Time) (int, error) {
	r.mu.RLock()
	snapshot := make([]*entity.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		snapshot = append(snapshot, s)
	}
	r.mu.RUnlock()

	var idle []*entity.Session
	for _, s := range snapshot {
		if !s.TryLock() {
			continue
		}
		if s.UpdatedAt.Before(cutoff) {
			idle = append(idle, s)
		}
		s.Unlock()
	}
	if len(idle) == 0 {
		return 0, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for _, s := range idle {
		if r.sessions[s.ID] == s {
			delete(r.sessions, s.ID)
			removed++
		}
	}
	return removed, nil
}
