package doctor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hay-kot/fmtdir/internal/core/history"
	"github.com/hay-kot/fmtdir/internal/core/state"
)

// StateCheck verifies that the persisted format history can be read.
type StateCheck struct {
	store state.Store
	path  string
}

// NewStateCheck creates a state check. path is only used for display.
func NewStateCheck(store state.Store, path string) *StateCheck {
	return &StateCheck{store: store, path: path}
}

func (c *StateCheck) Name() string {
	return "State"
}

func (c *StateCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	entry, err := c.store.Get(ctx, history.StorageKey)
	switch {
	case errors.Is(err, state.ErrKeyNotFound):
		result.Items = append(result.Items, CheckItem{
			Label:  "History",
			Status: StatusPass,
			Detail: "empty",
		})
		return result
	case err != nil:
		result.Items = append(result.Items, CheckItem{
			Label:  "State file",
			Status: StatusFail,
			Detail: fmt.Sprintf("%s: %v", c.path, err),
		})
		return result
	}

	var items []history.Item
	if err := json.Unmarshal([]byte(entry.Value), &items); err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "History",
			Status: StatusFail,
			Detail: "unreadable history, run 'fmtdir history --clear': " + err.Error(),
		})
		return result
	}

	result.Items = append(result.Items, CheckItem{
		Label:  "History",
		Status: StatusPass,
		Detail: fmt.Sprintf("%d of %d batches", len(items), history.MaxItems),
	})
	return result
}
