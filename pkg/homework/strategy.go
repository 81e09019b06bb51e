package homework

// EventsConsumerStrategy decides how many pending events one loop iteration
// delivers before rendering. poll waits up to timeoutMs for the first event
// and is then called with 0 for the rest.
type EventsConsumerStrategy interface {
	Consume(poll func(timeoutMs int) (Event, bool), handle func(Event), timeoutMs int) int
}

type drain struct {
	max int // 0 means no limit
}

func (d drain) Consume(poll func(timeoutMs int) (Event, bool), handle func(Event), timeoutMs int) int {
	count := 0
	for wait := timeoutMs; d.max == 0 || count < d.max; wait = 0 {
		event, ok := poll(wait)
		if !ok {
			break
		}
		handle(event)
		count++
	}
	return count
}

// DrainAll delivers every queued event each iteration.
func DrainAll() EventsConsumerStrategy {
	return drain{}
}

// DrainMax delivers at most n events each iteration so a flood of input
// cannot starve rendering. n below 1 is treated as 1.
func DrainMax(n int) EventsConsumerStrategy {
	if n < 1 {
		n = 1
	}
	return drain{max: n}
}
