package audio

import "context"

// MetadataEvent reports the outcome of a duration lookup for AudioRef.
type MetadataEvent struct {
	AudioRef        string
	DurationSeconds float64
	Err             error
}

// Watch resolves ref in the background. The returned channel yields exactly
// one event and is then closed; if ctx is cancelled first it is closed
// without an event.
func Watch(ctx context.Context, src Source, ref string) <-chan MetadataEvent {
	events := make(chan MetadataEvent, 1)
	go func() {
		defer close(events)
		seconds, err := src.Duration(ctx, ref)
		if ctx.Err() != nil {
			return
		}
		events <- MetadataEvent{AudioRef: ref, DurationSeconds: seconds, Err: err}
	}()
	return events
}
