package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// TraceEvent captures one emitted key transition for post-mortem analysis
type TraceEvent struct {
	Cycle   uint32 // Poll cycle the event was emitted on
	Control uint8  // Control that produced it
	Event   Event
	Dropped bool // Sink refused the event
}

const (
	TraceRingSize = 32 // Keep last 32 events for post-mortem
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active
	debugEnabled bool = false

	// Async debug output channel
	debugChan chan string
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, USB, a logger, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// InitAsyncDebug starts the async debug output goroutine
// Call this from main() after SetDebugWriter
func InitAsyncDebug() {
	debugChan = make(chan string, 16) // Buffer 16 messages
	go debugOutputWorker()
}

// debugOutputWorker runs in background, drains debug channel
func debugOutputWorker() {
	for msg := range debugChan {
		if debugPrintln != nil {
			debugPrintln(msg)
		}
	}
}

// DebugPrintln writes a debug message using the platform-specific writer
// Blocks if debug is enabled (use DebugAsync from the poll loop)
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// DebugAsync queues a debug message for async output (non-blocking)
// Returns immediately even if channel is full (drops message)
func DebugAsync(msg string) {
	if !debugEnabled {
		return
	}
	if debugChan == nil {
		DebugPrintln(msg)
		return
	}
	select {
	case debugChan <- msg:
	default:
		// Channel full, drop message (non-blocking)
	}
}

// EventTrace is a fixed ring of the most recent emitted events. It is
// written only by the poll goroutine; dump it after the poller stops.
type EventTrace struct {
	ring [TraceRingSize]TraceEvent
	head uint8 // Next write position
	used uint8
}

// Record captures an event in the ring buffer
func (t *EventTrace) Record(ev TraceEvent) {
	t.ring[t.head] = ev
	t.head = (t.head + 1) % TraceRingSize
	if t.used < TraceRingSize {
		t.used++
	}
}

// Events returns the recorded events, oldest first
func (t *EventTrace) Events() []TraceEvent {
	out := make([]TraceEvent, 0, t.used)
	start := (t.head + TraceRingSize - t.used) % TraceRingSize
	for i := uint8(0); i < t.used; i++ {
		out = append(out, t.ring[(start+i)%TraceRingSize])
	}
	return out
}

// Clear empties the ring
func (t *EventTrace) Clear() {
	*t = EventTrace{}
}

// DumpEventTrace outputs the trace ring through the debug writer
func DumpEventTrace(t *EventTrace) {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[TRACE] === Event Trace Dump ===")
	for _, ev := range t.Events() {
		line := "[TRACE] cycle=" + itoa(int(ev.Cycle)) +
			" control=" + itoa(int(ev.Control)) +
			" " + ev.Event.String()
		if ev.Dropped {
			line += " DROPPED"
		}
		debugPrintln(line)
	}
	debugPrintln("[TRACE] === End Dump ===")
}
