package loader

import (
	"sort"

	"segcheck/internal/validation"
)

// SegmentStore maps segment ids to segment metadata.
type SegmentStore struct {
	byID map[string]validation.Segment
}

// NewSegmentStore builds a store from segments. The first occurrence of an id wins.
func NewSegmentStore(segments ...validation.Segment) *SegmentStore {
	store := &SegmentStore{byID: make(map[string]validation.Segment, len(segments))}
	for _, segment := range segments {
		store.add(segment)
	}
	return store
}

func (s *SegmentStore) add(segment validation.Segment) bool {
	if _, exists := s.byID[segment.ID]; exists {
		return false
	}
	s.byID[segment.ID] = segment
	return true
}

// Get returns the segment with id.
func (s *SegmentStore) Get(id string) (validation.Segment, bool) {
	if s == nil {
		return validation.Segment{}, false
	}
	segment, ok := s.byID[id]
	return segment, ok
}

// Len returns the number of segments.
func (s *SegmentStore) Len() int {
	if s == nil {
		return 0
	}
	return len(s.byID)
}

// IDs returns all segment ids in sorted order.
func (s *SegmentStore) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.byID))
	for id := range s.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ValidationStore groups validation records by segment id, preserving load order.
type ValidationStore struct {
	bySegment map[string][]validation.Record
	all       []validation.Record
}

// NewValidationStore builds a store from records.
func NewValidationStore(records ...validation.Record) *ValidationStore {
	store := &ValidationStore{bySegment: make(map[string][]validation.Record)}
	for _, record := range records {
		store.add(record)
	}
	return store
}

func (s *ValidationStore) add(record validation.Record) {
	s.bySegment[record.SegmentID] = append(s.bySegment[record.SegmentID], record)
	s.all = append(s.all, record)
}

// Records returns the records for one segment in load order.
func (s *ValidationStore) Records(segmentID string) []validation.Record {
	if s == nil {
		return nil
	}
	return s.bySegment[segmentID]
}

// All returns every record in load order.
func (s *ValidationStore) All() []validation.Record {
	if s == nil {
		return nil
	}
	return s.all
}

// BySegment returns the records grouped by segment id.
func (s *ValidationStore) BySegment() map[string][]validation.Record {
	if s == nil {
		return map[string][]validation.Record{}
	}
	out := make(map[string][]validation.Record, len(s.bySegment))
	for id, records := range s.bySegment {
		out[id] = records
	}
	return out
}

// SegmentIDs returns the ids of every validated segment in sorted order.
func (s *ValidationStore) SegmentIDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.bySegment))
	for id := range s.bySegment {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of records.
func (s *ValidationStore) Len() int {
	if s == nil {
		return 0
	}
	return len(s.all)
}
