// Package events adapts discrete behavior-event streams (lever presses,
// licks, reward deliveries) recorded on a tracking system's own clock.
package events
