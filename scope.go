package celpaint

// Scope selects the frames an operation targets.
type Scope int

const (
	// ScopeCurrent targets the current frame only.
	ScopeCurrent Scope = iota
	// ScopeAll targets every frame in ascending index order.
	ScopeAll
)

// String returns the scope name.
func (s Scope) String() string {
	switch s {
	case ScopeCurrent:
		return "current"
	case ScopeAll:
		return "all"
	default:
		return "unknown"
	}
}

// ScopeOf returns ScopeAll when all is true and ScopeCurrent otherwise.
func ScopeOf(all bool) Scope {
	if all {
		return ScopeAll
	}
	return ScopeCurrent
}
