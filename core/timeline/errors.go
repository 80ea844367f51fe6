package timeline

import (
	"errors"
	"fmt"
)

// ErrLengthMismatch is returned when a direct-substitution replacement
// array does not match the length of the series it replaces.
// The series is never truncated or padded to fit.
var ErrLengthMismatch = errors.New("aligned timestamps length does not match original series length")

// ErrUnsortedTimestamps is returned when a replacement array or knot array
// violates the required ordering.
var ErrUnsortedTimestamps = errors.New("timestamps are not sorted")

// MissingChannelError indicates that a requested synchronization channel
// does not exist on the source.
type MissingChannelError struct {
	// Channel is the requested channel name.
	Channel string
	// Available lists the channel names the source actually has.
	Available []string
}

func (e *MissingChannelError) Error() string {
	return fmt.Sprintf("channel %q not found, available channels: %v", e.Channel, e.Available)
}
