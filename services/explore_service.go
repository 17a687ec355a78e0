package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/karlseguin/ccache/v3"

	"basha-backend/models"
)

var ErrInvalidViewMode = errors.New("invalid_view_mode")

// ExploreService keeps per-session explore page state: view mode, filters
// and the "search this area" prompt.
type ExploreService struct {
	search *SearchService
	states *ccache.Cache[models.ExploreState]
	ttl    time.Duration
	mu     sync.Mutex
}

func NewExploreService(search *SearchService, ttl time.Duration) *ExploreService {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &ExploreService{
		search: search,
		states: ccache.New(ccache.Configure[models.ExploreState]().MaxSize(10000)),
		ttl:    ttl,
	}
}

func (s *ExploreService) Close() {
	s.states.Stop()
}

func NewExploreSessionID() string {
	return uuid.NewString()
}

func (s *ExploreService) load(sid string) models.ExploreState {
	if item := s.states.Get(sid); item != nil && !item.Expired() {
		return item.Value()
	}
	return models.NewExploreState(sid)
}

func (s *ExploreService) update(ctx context.Context, sid string, fn func(st *models.ExploreState) error) (models.ExploreView, error) {
	s.mu.Lock()
	st := s.load(sid)
	if err := fn(&st); err != nil {
		s.mu.Unlock()
		return models.ExploreView{}, err
	}
	s.states.Set(sid, st, s.ttl)
	s.mu.Unlock()

	return s.view(ctx, st)
}

func (s *ExploreService) view(ctx context.Context, st models.ExploreState) (models.ExploreView, error) {
	res, err := s.search.Search(ctx, st.Filters)
	if err != nil {
		return models.ExploreView{}, err
	}
	return models.ExploreView{State: st, Result: res}, nil
}

// Mount enters the explore page. The state starts from the defaults and a
// deep-linked area, if any, is merged once. Nothing after Mount reads the URL.
func (s *ExploreService) Mount(ctx context.Context, sid, areaParam string) (models.ExploreView, error) {
	area, _ := models.ParseFilter(areaParam, func(v string) (string, error) { return v, nil })
	return s.update(ctx, sid, func(st *models.ExploreState) error {
		*st = models.NewExploreState(sid)
		if !area.IsAll() {
			st.Filters.Area = area
		}
		st.Mounted = true
		return nil
	})
}

func (s *ExploreService) Get(ctx context.Context, sid string) (models.ExploreView, error) {
	s.mu.Lock()
	st := s.load(sid)
	s.mu.Unlock()
	return s.view(ctx, st)
}

func (s *ExploreService) SetFilters(ctx context.Context, sid string, patch models.FilterPatch) (models.ExploreView, error) {
	return s.update(ctx, sid, func(st *models.ExploreState) error {
		st.Filters = patch.Apply(st.Filters)
		return nil
	})
}

func (s *ExploreService) SetViewMode(ctx context.Context, sid string, mode models.ViewMode) (models.ExploreView, error) {
	return s.update(ctx, sid, func(st *models.ExploreState) error {
		if !mode.Valid() {
			return ErrInvalidViewMode
		}
		st.ViewMode = mode
		if mode == models.ViewList {
			st.ShowSearchArea = false
		}
		return nil
	})
}

// BoundsChanged raises the "search this area" prompt in map mode. The bounds
// are not kept and never filter the catalog.
func (s *ExploreService) BoundsChanged(ctx context.Context, sid string, _ models.MapBounds) (models.ExploreView, error) {
	return s.update(ctx, sid, func(st *models.ExploreState) error {
		if st.ViewMode == models.ViewMap {
			st.ShowSearchArea = true
		}
		return nil
	})
}

// ConfirmSearchArea dismisses the prompt and widens the area filter to all.
func (s *ExploreService) ConfirmSearchArea(ctx context.Context, sid string) (models.ExploreView, error) {
	return s.update(ctx, sid, func(st *models.ExploreState) error {
		st.ShowSearchArea = false
		st.Filters.Area = models.All[string]()
		return nil
	})
}

// Reset restores the default filters. The view mode is kept.
func (s *ExploreService) Reset(ctx context.Context, sid string) (models.ExploreView, error) {
	return s.update(ctx, sid, func(st *models.ExploreState) error {
		st.Filters = models.DefaultFilterState()
		return nil
	})
}
