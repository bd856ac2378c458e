package compute

// Method selects the numeric algorithm variant used by a Batch instance.
// Each algorithm family defines its own closed set of Method constants
// (with 0 conventionally the default dense variant); the value is fixed
// at Batch construction and immutable for the instance's lifetime.
type Method int
