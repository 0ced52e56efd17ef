package session

import "time"

// Clock abstracts the animation pacing so the reveal sequence is
// testable without wall-clock waits.
type Clock interface {
	Sleep(d time.Duration)
}

// WallClock is the production clock.
type WallClock struct{}

func (WallClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// Presenter receives every frame of the table as it changes. The bot
// renders frames as message edits; tests record them.
type Presenter interface {
	Render(t Table)
}
