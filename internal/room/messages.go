package room

import "brawl/internal/match"

// Surface is one presentation-surface connection.
type Surface interface {
	Send([]byte) error
	Close() error
}

// Join: issued once the connection is upgraded.
type Join struct {
	Surface Surface
	Reply   chan<- JoinResult
}

type JoinResult struct {
	ViewerID string
}

// Act: one action from the input stream of a viewer.
type Act struct {
	ViewerID string
	Action   match.Action
}

// Leave: issued on disconnect.
type Leave struct {
	ViewerID string
}
