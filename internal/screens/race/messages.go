package race

import (
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
)

// frameInterval is the animation tick, roughly 60 frames per second.
const frameInterval = 16 * time.Millisecond

// frameMsg drives the race forward. seq identifies the screen that
// scheduled it so ticks from a finished race are dropped.
type frameMsg struct {
	seq int64
	at  time.Time
}

var screenSeq atomic.Int64

func frameCmd(seq int64) tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg{seq: seq, at: t}
	})
}
