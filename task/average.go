package task

import "time"

// Bucket selects one of the tracker's accumulators.
type Bucket int

// Buckets tracked by a Tracker.
const (
	BucketTotal Bucket = iota
	BucketHigh
	BucketMedium
	BucketLow
)

// Averages holds the average completion time of each bucket, in whole minutes.
type Averages struct {
	Total  int64 `json:"totalTime"`
	High   int64 `json:"highTime"`
	Medium int64 `json:"mediumTime"`
	Low    int64 `json:"lowTime"`
}

type accumulator struct {
	seconds int64
	count   int64
}

func (a *accumulator) add(seconds int64) {
	a.seconds += seconds
	a.count++
}

func (a *accumulator) subtract(seconds int64) {
	a.seconds -= seconds
	a.count--
}

func (a accumulator) averageMinutes() int64 {
	if a.count == 0 {
		return 0
	}
	return a.seconds / a.count / 60
}

// Tracker keeps running sums of completion durations, overall and per
// priority, so averages never require a scan of all tasks.
//
// Every RetractCompletion must pair with an earlier RecordCompletion for the
// same priority and duration. The tracker does not check this.
type Tracker struct {
	total  accumulator
	high   accumulator
	medium accumulator
	low    accumulator
}

// RecordCompletion adds a completed task's duration to the total and to the
// bucket of its priority. Durations are counted in whole seconds.
func (tr *Tracker) RecordCompletion(p Priority, d time.Duration) {
	seconds := int64(d / time.Second)
	tr.total.add(seconds)
	if bucket := tr.bucketFor(p); bucket != nil {
		bucket.add(seconds)
	}
}

// RetractCompletion removes a previously recorded duration.
func (tr *Tracker) RetractCompletion(p Priority, d time.Duration) {
	seconds := int64(d / time.Second)
	tr.total.subtract(seconds)
	if bucket := tr.bucketFor(p); bucket != nil {
		bucket.subtract(seconds)
	}
}

// Average returns the bucket's mean completion time in whole minutes, or 0
// when nothing has been recorded.
func (tr *Tracker) Average(b Bucket) int64 {
	switch b {
	case BucketTotal:
		return tr.total.averageMinutes()
	case BucketHigh:
		return tr.high.averageMinutes()
	case BucketMedium:
		return tr.medium.averageMinutes()
	case BucketLow:
		return tr.low.averageMinutes()
	default:
		return 0
	}
}

// Averages returns the averages of all buckets.
func (tr *Tracker) Averages() Averages {
	return Averages{
		Total:  tr.Average(BucketTotal),
		High:   tr.Average(BucketHigh),
		Medium: tr.Average(BucketMedium),
		Low:    tr.Average(BucketLow),
	}
}

func (tr *Tracker) bucketFor(p Priority) *accumulator {
	switch p {
	case PriorityHigh:
		return &tr.high
	case PriorityMedium:
		return &tr.medium
	case PriorityLow:
		return &tr.low
	default:
		return nil
	}
}
