package hashmap

// Stats summarizes the shape of a Map.
type Stats struct {
	Size          int     `json:"size"`
	Capacity      int     `json:"capacity"`
	LoadFactor    float64 `json:"load_factor"`
	UsedBuckets   int     `json:"used_buckets"`
	LongestBucket int     `json:"longest_bucket"`
	Rehashes      uint64  `json:"rehashes"`
}

// Stats returns statistics about the map's buckets.
func (m *Map[K, V]) Stats() Stats {
	s := Stats{
		Size:       m.size,
		Capacity:   len(m.buckets),
		LoadFactor: m.LoadFactor(),
		Rehashes:   m.rehashes,
	}
	for _, chain := range m.buckets {
		if len(chain) == 0 {
			continue
		}
		s.UsedBuckets++
		if len(chain) > s.LongestBucket {
			s.LongestBucket = len(chain)
		}
	}
	return s
}

// BucketLengths returns the length of every bucket, indexed by bucket.
func (m *Map[K, V]) BucketLengths() []int {
	lengths := make([]int, len(m.buckets))
	for i, chain := range m.buckets {
		lengths[i] = len(chain)
	}
	return lengths
}

// Histogram counts buckets by length: h[n] is the number of buckets
// holding exactly n pairs.
func (m *Map[K, V]) Histogram() []int {
	var h []int
	for _, chain := range m.buckets {
		for len(h) <= len(chain) {
			h = append(h, 0)
		}
		h[len(chain)]++
	}
	return h
}
