package shroud

import (
	"iter"
	"slices"
)

// ZoneSet is the ordered, read-only result of Parse.
// Order matches the input: consumers rely on first-match-wins.
type ZoneSet struct {
	zones []Zone
}

func newZoneSet(zones []Zone) ZoneSet {
	if len(zones) == 0 {
		return ZoneSet{}
	}
	return ZoneSet{zones: zones}
}

// Len returns the number of zones.
func (s ZoneSet) Len() int { return len(s.zones) }

// At returns the i-th zone in input order.
func (s ZoneSet) At(i int) Zone { return s.zones[i] }

// Zones returns a copy of the zones in input order.
func (s ZoneSet) Zones() []Zone { return slices.Clone(s.zones) }

// All iterates zones in input order.
func (s ZoneSet) All() iter.Seq2[int, Zone] {
	return func(yield func(int, Zone) bool) {
		for i, z := range s.zones {
			if !yield(i, z) {
				return
			}
		}
	}
}

// InRegion returns zones anchored in the given landblock, in input order.
func (s ZoneSet) InRegion(regionID uint16) []Zone {
	var result []Zone
	for _, z := range s.zones {
		if z.RegionID() == regionID {
			result = append(result, z)
		}
	}
	return result
}

// FirstContaining returns the first zone (in input order) whose trigger
// radius contains p.
func (s ZoneSet) FirstContaining(p Position) (Zone, bool) {
	for _, z := range s.zones {
		if z.Contains(p) {
			return z, true
		}
	}
	return Zone{}, false
}

// RegionIDs returns the distinct landblocks that carry zones, in order of
// first appearance.
func (s ZoneSet) RegionIDs() []uint16 {
	seen := make(map[uint16]struct{}, len(s.zones))
	var ids []uint16
	for _, z := range s.zones {
		id := z.RegionID()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
