// Package alarm contains the alarm lifecycle of the vibration monitor.
//
// Machine is an edge-triggered two-state machine (Idle, Active) timed by
// polling a monotonic clock. Activation asserts the alarm indicator and
// starts a Sequencer that plays the buzzer pattern one phase per call, so
// the monitoring cycle never blocks. The alarm ends only when its window
// expires.
package alarm
