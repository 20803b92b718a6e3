package model

import (
	"fmt"
	"math"
)

// Bucket is a diameter range used to group cables into bundles.
// Buckets are ordered by increasing diameter.
type Bucket int

const (
	Bucket0To8 Bucket = iota
	Bucket8To15
	Bucket15To21
	Bucket21To30
	Bucket30To40
	Bucket40To45
	Bucket45To60
	Bucket60Plus
)

// Inclusive upper bounds, indexed by Bucket.
var bucketTable = [...]struct {
	max   float64
	label string
}{
	{8, "0-8"},
	{15, "8.1-15"},
	{21, "15.1-21"},
	{30, "21.1-30"},
	{40, "30.1-40"},
	{45, "40.1-45"},
	{60, "45.1-60"},
	{math.Inf(1), "60+"},
}

// BucketFor maps a diameter in mm to its bucket.
func BucketFor(diameter float64) (Bucket, error) {
	if math.IsNaN(diameter) || diameter <= 0 {
		return 0, fmt.Errorf("%w: diameter must be positive, got %g", ErrInvalidArgument, diameter)
	}
	for i, b := range bucketTable {
		if diameter <= b.max {
			return Bucket(i), nil
		}
	}
	return Bucket60Plus, nil
}

// Label returns the bucket's display label, e.g. "40.1-45".
func (b Bucket) Label() string {
	if b < 0 || int(b) >= len(bucketTable) {
		return fmt.Sprintf("Bucket(%d)", int(b))
	}
	return bucketTable[b].label
}

func (b Bucket) String() string { return b.Label() }

// Max returns the inclusive upper diameter bound; +Inf for the last bucket.
func (b Bucket) Max() float64 {
	return bucketTable[b].max
}

func (b Bucket) MarshalText() ([]byte, error) {
	return []byte(b.Label()), nil
}

func (b *Bucket) UnmarshalText(text []byte) error {
	parsed, err := ParseBucket(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseBucket looks a bucket up by label.
func ParseBucket(label string) (Bucket, error) {
	for i, b := range bucketTable {
		if b.label == label {
			return Bucket(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown diameter bucket %q", ErrInvalidArgument, label)
}

// Buckets returns all buckets in ascending order.
func Buckets() []Bucket {
	out := make([]Bucket, len(bucketTable))
	for i := range bucketTable {
		out[i] = Bucket(i)
	}
	return out
}
