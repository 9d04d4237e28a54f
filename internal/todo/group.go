package todo

// Group is the set of tasks sharing one priority.
type Group struct {
	Priority Priority
	Tasks    []Task
}

// GroupByPriority partitions tasks into High, Medium and Low groups, in
// that order. Each group keeps the relative order of its tasks and is
// present even when empty. Tasks with an unknown priority are dropped.
func GroupByPriority(tasks []Task) []Group {
	groups := make([]Group, len(Priorities))
	slot := make(map[Priority]int, len(Priorities))
	for i, p := range Priorities {
		groups[i] = Group{Priority: p, Tasks: []Task{}}
		slot[p] = i
	}
	for _, t := range tasks {
		if i, ok := slot[t.Priority]; ok {
			groups[i].Tasks = append(groups[i].Tasks, t)
		}
	}
	return groups
}
