package vitals

import (
	"runtime"

	"github.com/c9s/goprocinfo/linux"
)

const (
	// General memory stats
	CurrentMemoryUtilizationAlloc   Stat = "CurrentMemoryUtilizationAlloc"
	CurrentMemoryUtilizationHeapSys Stat = "CurrentMemoryUtilizationHeapSys"
	CurrentMemoryUtilizationActive  Stat = "CurrentMemoryUtilizationActive"
	MaxMemoryUtilizationAlloc       Stat = "MaxMemoryUtilizationAlloc"
	MaxMemoryUtilizationHeapSys     Stat = "MaxMemoryUtilizationHeapSys"
	MaxMemoryUtilizationActive      Stat = "MaxMemoryUtilizationActive"

	// Request stats
	TotalRequestsReceived Stat = "TotalRequestsReceived"
)

// commonStats is the Stats used to seed the initial set of stats
var commonStats = Stats{
	CurrentMemoryUtilizationAlloc:   0,
	CurrentMemoryUtilizationHeapSys: 0,
	CurrentMemoryUtilizationActive:  0,
	MaxMemoryUtilizationAlloc:       0,
	MaxMemoryUtilizationHeapSys:     0,
	MaxMemoryUtilizationActive:      0,
	TotalRequestsReceived:           0,
}

// Option describes an option that can be set on a Stats map.
// Various types implement this interface.
type Option interface {
	Set(Stats)
}

// Stat is a named piece of data to be tracked
type Stat string

// Set creates the stat initially, if it does not already exist
func (s Stat) Set(stats Stats) {
	if _, ok := stats[s]; !ok {
		stats[s] = 0
	}
}

// Mutator functions are allowed to modify the passed-in stats.
type Mutator func(Stats)

func (f Mutator) Set(stats Stats) {
	f(stats)
}

// Inc increments the given stat by a certain amount
func Inc(stat Stat, value int) Mutator {
	return func(stats Stats) {
		stats[stat] += value
	}
}

// Set changes (or, initializes) the stat to the given value
func Set(stat Stat, value int) Mutator {
	return func(stats Stats) {
		stats[stat] = value
	}
}

// Ensure makes certain the given stat is defined.  If it does not exist,
// it is initialized to 0.  Otherwise, the existing stat value is left intact.
func Ensure(stat Stat) Mutator {
	return func(stats Stats) {
		if _, ok := stats[stat]; !ok {
			stats[stat] = 0
		}
	}
}

// Stats is a mapping of Stat to value
type Stats map[Stat]int

func (s Stats) Set(stats Stats) {
	for key, value := range s {
		stats[key] = value
	}
}

// NewStats constructs a Stats object seeded with the common stats and
// any supplied options.
func NewStats(options []Option) Stats {
	stats := make(Stats, len(commonStats)+len(options))
	stats.Apply(commonStats)
	for _, option := range options {
		stats.Apply(option)
	}

	return stats
}

// Clone returns a distinct copy of this Stats object
func (s Stats) Clone() Stats {
	clone := make(Stats, len(s))
	for key, value := range s {
		clone[key] = value
	}

	return clone
}

// Apply invokes Option.Set() on this stats map.
func (s Stats) Apply(options ...Option) {
	for _, option := range options {
		option.Set(s)
	}
}

// UpdateMemInfo takes memory information from a linux environment and
// sets the appropriate stats.
func (s Stats) UpdateMemInfo(memInfo *linux.MemInfo) {
	active := int(memInfo.Active * 1024)
	s[CurrentMemoryUtilizationActive] = active
	if active > s[MaxMemoryUtilizationActive] {
		s[MaxMemoryUtilizationActive] = active
	}
}

// UpdateMemStats takes a MemStats from the golang runtime and sets the
// appropriate stats.
func (s Stats) UpdateMemStats(memStats *runtime.MemStats) {
	alloc := int(memStats.Alloc)
	heapsys := int(memStats.HeapSys)

	// set current
	s[CurrentMemoryUtilizationAlloc] = alloc
	s[CurrentMemoryUtilizationHeapSys] = heapsys

	// set max
	if alloc > s[MaxMemoryUtilizationAlloc] {
		s[MaxMemoryUtilizationAlloc] = alloc
	}

	if heapsys > s[MaxMemoryUtilizationHeapSys] {
		s[MaxMemoryUtilizationHeapSys] = heapsys
	}
}

// UpdateMemory updates all the memory statistics
func (s Stats) UpdateMemory(memInfoReader *MemInfoReader) {
	memInfo, err := memInfoReader.Read()
	if err == nil {
		s.UpdateMemInfo(memInfo)
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	s.UpdateMemStats(&memStats)
}
