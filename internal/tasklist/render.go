package tasklist

import (
	"cmp"
	"context"
	"slices"

	dom "Todo/internal/domain"
)

// PlaceholderText is shown as the only row of an empty list.
const PlaceholderText = "No tasks yet! Add one above."

// SortTasks returns a copy of tasks ordered incomplete first, then by ascending id.
// The sort is stable so equal keys keep server order.
func SortTasks(tasks []dom.Task) []dom.Task {
	out := slices.Clone(tasks)
	slices.SortStableFunc(out, func(a, b dom.Task) int {
		if a.Completed != b.Completed {
			if !a.Completed {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// rows builds the full row set for a render, binding each row's actions.
func (c *Controller) rows(tasks []dom.Task) []Row {
	if len(tasks) == 0 {
		return []Row{{Text: PlaceholderText, Placeholder: true}}
	}
	sorted := SortTasks(tasks)
	rows := make([]Row, len(sorted))
	for i, t := range sorted {
		id, completed := t.ID, t.Completed
		rows[i] = Row{
			ID:        id,
			Text:      t.Text,
			Completed: completed,
			Toggle: func(ctx context.Context) error {
				return c.Toggle(ctx, id, completed)
			},
			Delete: func(ctx context.Context) error {
				return c.Delete(ctx, id)
			},
		}
	}
	return rows
}
