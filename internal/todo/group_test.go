package todo

import (
	"fmt"
	"testing"
)

func TestGroupByPriorityOrder(t *testing.T) {
	groups := GroupByPriority(nil)
	if len(groups) != 3 {
		t.Fatalf("groups: got %d, want 3", len(groups))
	}
	want := []Priority{PriorityHigh, PriorityMedium, PriorityLow}
	for i, g := range groups {
		if g.Priority != want[i] {
			t.Errorf("groups[%d]: got %s, want %s", i, g.Priority, want[i])
		}
		if g.Tasks == nil || len(g.Tasks) != 0 {
			t.Errorf("groups[%d]: expected empty non-nil bucket, got %v", i, g.Tasks)
		}
	}
}

func TestGroupByPriorityIsPartition(t *testing.T) {
	priorities := []Priority{PriorityLow, PriorityHigh, PriorityMedium, PriorityHigh, PriorityLow, PriorityLow, PriorityMedium}
	l := NewList()
	for i, p := range priorities {
		l.Add(fmt.Sprintf("task %d", i+1), p, "")
	}

	groups := l.ByPriority()

	seen := make(map[int]bool)
	total := 0
	for _, g := range groups {
		last := 0
		for _, task := range g.Tasks {
			if task.Priority != g.Priority {
				t.Errorf("task %d with priority %s in %s bucket", task.ID, task.Priority, g.Priority)
			}
			if seen[task.ID] {
				t.Errorf("task %d appears twice", task.ID)
			}
			if task.ID <= last {
				t.Errorf("bucket %s out of order: %d after %d", g.Priority, task.ID, last)
			}
			seen[task.ID] = true
			last = task.ID
			total++
		}
	}
	if total != l.Len() {
		t.Errorf("grouped %d tasks, list has %d", total, l.Len())
	}
}

func TestGroupByPriorityDoesNotAliasInput(t *testing.T) {
	tasks := []Task{{ID: 1, Note: "a", Priority: PriorityHigh}}
	groups := GroupByPriority(tasks)
	groups[0].Tasks[0].Note = "changed"
	if tasks[0].Note != "a" {
		t.Errorf("GroupByPriority aliases input slice")
	}
}
