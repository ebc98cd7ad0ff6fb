package processor

import (
	"maps"
	"slices"
)

// Batch is the drained state of one contract.
type Batch struct {
	Contract     string
	Implementors []string          // sorted
	Sources      map[string]string // implementor → originating source file
}

// Aggregator accumulates accepted implementors per contract.
type Aggregator struct {
	services map[string]map[string]struct{}
	files    map[string]string
}

// NewAggregator creates an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		services: make(map[string]map[string]struct{}),
		files:    make(map[string]string),
	}
}

// Record adds implementor to contract. Re-adding is a no-op apart from
// overwriting the implementor's source file.
func (a *Aggregator) Record(contract, implementor, source string) {
	set, ok := a.services[contract]
	if !ok {
		set = make(map[string]struct{})
		a.services[contract] = set
	}

	set[implementor] = struct{}{}
	a.files[implementor] = source
}

// Implementors returns the sorted implementors currently recorded for contract.
func (a *Aggregator) Implementors(contract string) []string {
	return slices.Sorted(maps.Keys(a.services[contract]))
}

// Len returns the number of contracts with recorded implementors.
func (a *Aggregator) Len() int {
	return len(a.services)
}

// DrainAll returns every recorded contract, sorted by name, and clears the state.
func (a *Aggregator) DrainAll() []Batch {
	batches := make([]Batch, 0, len(a.services))

	for _, contract := range slices.Sorted(maps.Keys(a.services)) {
		impls := slices.Sorted(maps.Keys(a.services[contract]))
		if len(impls) == 0 {
			continue
		}

		sources := make(map[string]string, len(impls))
		for _, impl := range impls {
			if file, ok := a.files[impl]; ok {
				sources[impl] = file
			}
		}

		batches = append(batches, Batch{
			Contract:     contract,
			Implementors: impls,
			Sources:      sources,
		})
	}

	clear(a.services)
	clear(a.files)

	return batches
}
