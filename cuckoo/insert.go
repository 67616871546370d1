package cuckoo

import "go.uber.org/zap"

// Add inserts key and returns the outcome with the resulting count.
//
// Total is incremented on every call. Count only grows on Inserted: a failed
// eviction walk leaves the table permuted but the count unchanged.
func (f *Filter) Add(key []byte) (Status, uint64) {
	f.total++

	fp, i1 := f.locate(key)
	i2 := f.altIndex(i1, fp)

	status := f.insert(i1, i2, fp)
	if status == Inserted {
		f.cnt++
	}

	return status, f.cnt
}

// Put is an alias for Add.
func (f *Filter) Put(key []byte) (Status, uint64) {
	return f.Add(key)
}

func (f *Filter) insert(i1, i2 uint64, fp fingerprint) Status {
	// any match in a candidate bucket counts as a duplicate
	if f.buckets[i1].contains(fp) || f.buckets[i2].contains(fp) {
		return Duplicate
	}

	if f.buckets[i1].add(fp) || f.buckets[i2].add(fp) {
		return Inserted
	}

	return f.kick(i1, i2, fp)
}

// kick runs the eviction walk. Swaps are not rolled back on failure.
func (f *Filter) kick(i1, i2 uint64, fp fingerprint) Status {
	i := i1
	if f.rng.IntN(2) == 1 {
		i = i2
	}

	for k := 0; k < MaxKicks; k++ {
		fp = f.buckets[i].swap(f.rng.IntN(BucketSize), fp)
		i = f.altIndex(i, fp)

		if f.buckets[i].contains(fp) {
			f.logger.Debug("cuckoo: evicted fingerprint collides in alternate bucket",
				zap.Int("kicks", k+1),
				zap.Uint64("bucket", i),
				zap.Uint64("count", f.cnt),
			)
			return InsertFailed
		}

		if f.buckets[i].add(fp) {
			return Inserted
		}
	}

	f.logger.Debug("cuckoo: eviction walk exhausted",
		zap.Int("kicks", MaxKicks),
		zap.Uint64("count", f.cnt),
		zap.Uint64("items", f.items),
	)

	return InsertFailed
}
