package domain

// Category groups tickets by problem area.
type Category struct {
	ID       string
	Name     string
	IsActive bool
}

// InternalSystem identifies the internal application a ticket concerns.
type InternalSystem struct {
	ID       string
	Name     string
	IsActive bool
}
