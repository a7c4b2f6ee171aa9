// Package progress defines the observational sink the extraction
// pipeline reports through. The sink is purely informational: no
// core decision depends on its presence, and a no-op sink is a valid
// default.
package progress

// Sink receives human-readable progress messages.
type Sink interface {
	Progress(message string)
}

// Func adapts a plain function to a Sink.
type Func func(message string)

// Progress calls f(message).
func (f Func) Progress(message string) { f(message) }

type nopSink struct{}

func (nopSink) Progress(string) {}

// Nop returns a Sink that discards all messages.
func Nop() Sink { return nopSink{} }

// OrNop returns s, or a no-op sink when s is nil.
func OrNop(s Sink) Sink {
	if s == nil {
		return Nop()
	}
	return s
}
