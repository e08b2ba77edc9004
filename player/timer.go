package player

import "time"

// TickPeriod is the interval at which the pump runs.
const TickPeriod = 100 * time.Millisecond

// Timer delivers pump ticks. C returns nil while stopped.
type Timer interface {
	Start(period time.Duration)
	Stop()
	Active() bool
	C() <-chan time.Time
}

// Ticker is a Timer backed by time.Ticker. Ticks the receiver is too slow for are dropped.
type Ticker struct {
	ticker *time.Ticker
}

// NewTicker returns a stopped Ticker.
func NewTicker() *Ticker {
	return &Ticker{}
}

func (t *Ticker) Start(period time.Duration) {
	if t.ticker != nil {
		t.ticker.Reset(period)
		return
	}
	t.ticker = time.NewTicker(period)
}

func (t *Ticker) Stop() {
	if t.ticker == nil {
		return
	}
	t.ticker.Stop()
	t.ticker = nil
}

func (t *Ticker) Active() bool {
	return t.ticker != nil
}

func (t *Ticker) C() <-chan time.Time {
	if t.ticker == nil {
		return nil
	}
	return t.ticker.C
}
