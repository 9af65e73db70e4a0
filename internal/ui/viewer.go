package ui

import "ntl/internal/domain"

// Viewer displays a saved run in an interactive TUI
type Viewer interface {
	View(summary *domain.Summary) error
}
