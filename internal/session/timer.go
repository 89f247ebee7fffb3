package session

import "time"

// Countdown ticks once per second and signals expiry when the duration runs
// out. The session auto-submits on expiry, so the controller loop selects on
// Expired alongside user input.
type Countdown struct {
	// Tick receives the remaining duration once per second.
	Tick <-chan time.Duration
	// Expired is closed when the countdown reaches zero.
	Expired <-chan struct{}

	stop chan struct{}
}

// StartCountdown starts a countdown for the given duration.
func StartCountdown(duration time.Duration) *Countdown {
	tick := make(chan time.Duration, 1)
	expired := make(chan struct{})
	stop := make(chan struct{})

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		deadline := time.Now().Add(duration)
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				remaining := time.Until(deadline)
				if remaining <= 0 {
					close(expired)
					return
				}
				// Drop the tick if the consumer is mid-prompt; the next
				// one carries a fresher value anyway.
				select {
				case tick <- remaining:
				default:
				}
			}
		}
	}()

	return &Countdown{Tick: tick, Expired: expired, stop: stop}
}

// Stop cancels the countdown. Stopping an expired countdown is a no-op.
func (c *Countdown) Stop() {
	select {
	case <-c.stop:
	default:
		close(c.stop)
	}
}
