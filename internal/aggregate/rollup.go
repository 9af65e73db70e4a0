package aggregate

import (
	"time"

	"ntl/internal/domain"
)

// rollup creates a parent node whose statistics combine its immediate children
func rollup(kind domain.Kind, name, fullName string, children []*domain.Node) *domain.Node {
	node := &domain.Node{
		Kind:     kind,
		Name:     name,
		FullName: fullName,
		Children: children,
	}
	for _, child := range children {
		node.Counts.Add(child.Counts)
		node.Duration += child.Duration
		node.StartTime = earliest(node.StartTime, child.StartTime)
		node.EndTime = latest(node.EndTime, child.EndTime)
	}
	node.Result = node.Counts.Result()
	return node
}

func earliest(current, candidate *time.Time) *time.Time {
	if candidate == nil {
		return current
	}
	if current == nil || candidate.Before(*current) {
		t := *candidate
		return &t
	}
	return current
}

func latest(current, candidate *time.Time) *time.Time {
	if candidate == nil {
		return current
	}
	if current == nil || candidate.After(*current) {
		t := *candidate
		return &t
	}
	return current
}
