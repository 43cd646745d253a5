package common

// Stats is a point in time view of one broadcast channel.
type Stats struct {
	Name      string `json:"name" yaml:"name"`
	Capacity  int    `json:"capacity" yaml:"capacity"`
	Readers   int    `json:"readers" yaml:"readers"`
	Sequence  uint64 `json:"sequence" yaml:"sequence"`   // next sequence number to be assigned
	Published uint64 `json:"published" yaml:"published"` // messages accepted into the buffer
	Rejected  uint64 `json:"rejected" yaml:"rejected"`   // TryPublish calls refused because the buffer was full
	Blocked   uint64 `json:"blocked" yaml:"blocked"`     // Publish calls that had to wait for a reader
	Consumed  uint64 `json:"consumed" yaml:"consumed"`   // messages handed to readers, summed over readers
	MaxLag    uint64 `json:"maxLag" yaml:"maxLag"`       // pending messages of the slowest reader
}

type StatsSource interface {
	Stats() Stats
}
