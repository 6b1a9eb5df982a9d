package renderer

import (
	"fmt"
	"time"
)

// TraceStats counts the work done by Trace. All methods accept a nil receiver.
type TraceStats struct {
	Rays                     int // Scene queries issued
	Hits                     int // Queries that hit a solid
	Misses                   int // Queries resolved by the environment
	ReflectionRays           int // Reflected rays spawned
	RefractionRays           int // Refracted rays spawned
	TotalInternalReflections int // Refractions that fell back to reflection
	DepthExhausted           int // Calls that reached depth zero
}

func (s *TraceStats) addRay() {
	if s != nil {
		s.Rays++
	}
}

func (s *TraceStats) addHit() {
	if s != nil {
		s.Hits++
	}
}

func (s *TraceStats) addMiss() {
	if s != nil {
		s.Misses++
	}
}

func (s *TraceStats) addReflection() {
	if s != nil {
		s.ReflectionRays++
	}
}

func (s *TraceStats) addRefraction() {
	if s != nil {
		s.RefractionRays++
	}
}

func (s *TraceStats) addTotalInternalReflection() {
	if s != nil {
		s.TotalInternalReflections++
	}
}

func (s *TraceStats) addDepthExhausted() {
	if s != nil {
		s.DepthExhausted++
	}
}

// Merge adds other's counters into s
func (s *TraceStats) Merge(other TraceStats) {
	s.Rays += other.Rays
	s.Hits += other.Hits
	s.Misses += other.Misses
	s.ReflectionRays += other.ReflectionRays
	s.RefractionRays += other.RefractionRays
	s.TotalInternalReflections += other.TotalInternalReflections
	s.DepthExhausted += other.DepthExhausted
}

// SecondaryRays returns the number of recursive rays spawned
func (s TraceStats) SecondaryRays() int {
	return s.ReflectionRays + s.RefractionRays
}

// FrameStats contains statistics about one rendered frame
type FrameStats struct {
	Frame    uint32        // Frame number the stats belong to
	Pixels   int           // Pixels rendered
	Workers  int           // Workers used
	Trace    TraceStats    // Aggregated tracing counters
	Duration time.Duration // Wall time spent rendering (overlay excluded)
}

// FPS returns the frame rate implied by Duration
func (fs FrameStats) FPS() float64 {
	if fs.Duration <= 0 {
		return 0
	}
	return 1.0 / fs.Duration.Seconds()
}

func (fs FrameStats) String() string {
	return fmt.Sprintf("frame %d: %d pixels, %d rays (%d hits, %d misses, %d secondary) in %v",
		fs.Frame, fs.Pixels, fs.Trace.Rays, fs.Trace.Hits, fs.Trace.Misses, fs.Trace.SecondaryRays(),
		fs.Duration.Round(time.Millisecond))
}
