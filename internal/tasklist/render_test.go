package tasklist

import (
	"testing"

	dom "Todo/internal/domain"
)

func TestSortTasksIncompleteFirstThenID(t *testing.T) {
	in := []dom.Task{
		{ID: 4, Completed: true},
		{ID: 3},
		{ID: 1, Completed: true},
		{ID: 2},
	}
	got := SortTasks(in)

	want := []int64{2, 3, 1, 4}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: want id %d, got %d (%+v)", i, id, got[i].ID, got)
		}
	}
	if in[0].ID != 4 {
		t.Fatal("input slice must not be reordered")
	}
}

func TestSortTasksEmpty(t *testing.T) {
	if got := SortTasks(nil); len(got) != 0 {
		t.Fatalf("expected empty, got %+v", got)
	}
}

func TestRowsBindActionsPerTask(t *testing.T) {
	c, _ := newController(nil, &fakeView{}, answer(true))
	rows := c.rows([]dom.Task{{ID: 2, Text: "b", Completed: true}, {ID: 1, Text: "a"}})

	if len(rows) != 2 || rows[0].Text != "a" || rows[1].Text != "b" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	if rows[0].Placeholder || rows[1].Placeholder {
		t.Fatal("task rows are not placeholders")
	}
}
