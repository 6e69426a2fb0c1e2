package complaints

import (
	"strings"
	"sync"
)

// Draft mirrors a complaint's editable fields plus the staged evidence image.
// An empty ID means "creating new"; a set ID means "editing existing".
type Draft struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Anonymous   bool   `json:"anonymous"`
	ImageURL    string `json:"imageUrl,omitempty"`
	ImagePath   string `json:"imagePath,omitempty"`
}

// HasStagedImage reports whether an uploaded image is attached to the draft.
func (d *Draft) HasStagedImage() bool {
	return d.ImageURL != ""
}

// Reducer actions
const (
	ActionSetField = "SET_FIELD"
	ActionSetForm  = "SET_FORM"
	ActionReset    = "RESET"
)

// Action is the tagged union consumed by Apply. SetField carries Field and
// Value; SetForm carries Complaint; Reset carries nothing.
type Action struct {
	Type      string
	Field     string
	Value     interface{}
	Complaint *Complaint
}

// EmptyDraft returns the initial form state.
func EmptyDraft() Draft {
	return Draft{Category: Categories[0]}
}

// Apply is a pure state transition: it returns a new draft and never mutates
// its input. Field values are not validated here; validation happens at
// submission.
func Apply(state Draft, action Action) Draft {
	switch action.Type {
	case ActionSetField:
		return setField(state, action.Field, action.Value)
	case ActionSetForm:
		if action.Complaint == nil {
			return state
		}
		c := action.Complaint
		return Draft{
			ID:          c.ID,
			Title:       c.Title,
			Category:    c.Category,
			Location:    c.Location,
			Description: c.Description,
			Anonymous:   c.Anonymous,
		}
	case ActionReset:
		return EmptyDraft()
	default:
		return state
	}
}

func setField(state Draft, field string, value interface{}) Draft {
	next := state
	switch strings.ToLower(field) {
	case "title":
		if v, ok := value.(string); ok {
			next.Title = v
		}
	case "category":
		if v, ok := value.(string); ok {
			next.Category = v
		}
	case "location":
		if v, ok := value.(string); ok {
			next.Location = v
		}
	case "description":
		if v, ok := value.(string); ok {
			next.Description = v
		}
	case "anonymous":
		if v, ok := value.(bool); ok {
			next.Anonymous = v
		}
	case "imageurl":
		if v, ok := value.(string); ok {
			next.ImageURL = v
		}
	case "imagepath":
		if v, ok := value.(string); ok {
			next.ImagePath = v
		}
	}
	return next
}

// DraftStore holds one in-progress draft per client session.
type DraftStore struct {
	mu     sync.RWMutex
	drafts map[string]Draft
}

func NewDraftStore() *DraftStore {
	return &DraftStore{drafts: make(map[string]Draft)}
}

// Get returns the client's current draft, or the empty draft if none exists.
func (s *DraftStore) Get(clientKey string) Draft {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if d, ok := s.drafts[clientKey]; ok {
		return d
	}
	return EmptyDraft()
}

// Dispatch applies an action to the client's draft and returns the new state.
func (s *DraftStore) Dispatch(clientKey string, action Action) Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.drafts[clientKey]
	if !ok {
		state = EmptyDraft()
	}

	next := Apply(state, action)
	s.drafts[clientKey] = next
	return next
}
