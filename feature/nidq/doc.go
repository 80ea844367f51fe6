// Package nidq adapts the digitizer's auxiliary synchronization channels.
// The TTL pulse trains extracted here serve as the reference clock for
// aligning every other interface's timestamps.
package nidq
