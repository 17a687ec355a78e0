package models

type ViewMode string

const (
	ViewList ViewMode = "list"
	ViewMap  ViewMode = "map"
)

func (m ViewMode) Valid() bool {
	return m == ViewList || m == ViewMap
}

// ExploreState is the per-session state of the explore page.
type ExploreState struct {
	SessionID      string      `json:"sessionId"`
	ViewMode       ViewMode    `json:"viewMode"`
	Filters        FilterState `json:"filters"`
	ShowSearchArea bool        `json:"showSearchArea"`
	Mounted        bool        `json:"mounted"`
}

func NewExploreState(sessionID string) ExploreState {
	return ExploreState{
		SessionID: sessionID,
		ViewMode:  ViewList,
		Filters:   DefaultFilterState(),
	}
}

// MapBounds is reported by the map surface. It is never used as a filter.
type MapBounds struct {
	North float64 `json:"north" binding:"latitude,gtefield=South"`
	South float64 `json:"south" binding:"latitude"`
	East  float64 `json:"east" binding:"longitude"`
	West  float64 `json:"west" binding:"longitude"`
}

type SetViewModeInput struct {
	Mode ViewMode `json:"mode" binding:"required,oneof=list map"`
}

// ExploreView pairs the session state with the rooms it selects.
type ExploreView struct {
	State  ExploreState `json:"state"`
	Result SearchResult `json:"result"`
}
