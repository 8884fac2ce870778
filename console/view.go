package console

import (
	"dar_almal_go/models"
	"dar_almal_go/services"
)

// ViewState is the JSON snapshot of the console the admin UI renders from
type ViewState struct {
	Filter         services.BranchFilter `json:"filter"`
	Branches       []models.Branch       `json:"branches"`
	Loaded         bool                  `json:"loaded"`
	Buffer         *EditBuffer           `json:"buffer"`
	ArmedDeleteID  string                `json:"armedDeleteId,omitempty"`
	DeleteAllArmed bool                  `json:"deleteAllArmed"`
}

// View captures the console's current state in one consistent snapshot
func (c *Console) View() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := ViewState{
		Filter:         c.filter,
		Branches:       c.branches,
		Loaded:         c.loaded,
		ArmedDeleteID:  c.armedDeleteID,
		DeleteAllArmed: c.armedDeleteAll,
	}
	if state.Branches == nil {
		state.Branches = []models.Branch{}
	}
	if c.buffer != nil {
		copied := *c.buffer
		state.Buffer = &copied
	}
	return state
}
