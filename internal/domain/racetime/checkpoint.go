package racetime

// Checkpoint names an intermediate timing mat on the marathon course.
type Checkpoint string

const (
	Checkpoint5K   Checkpoint = "5k"
	Checkpoint10K  Checkpoint = "10k"
	CheckpointHalf Checkpoint = "half"
	Checkpoint30K  Checkpoint = "30k"
	Checkpoint35K  Checkpoint = "35k"
	Checkpoint40K  Checkpoint = "40k"
)

// MarathonKm is the full course distance in kilometres.
const MarathonKm = 42.195

// CheckpointOrder lists the known checkpoints in course order.
var CheckpointOrder = []Checkpoint{
	Checkpoint5K,
	Checkpoint10K,
	CheckpointHalf,
	Checkpoint30K,
	Checkpoint35K,
	Checkpoint40K,
}

// CheckpointKm maps each checkpoint to its distance from the start in
// kilometres.
var CheckpointKm = map[Checkpoint]float64{
	Checkpoint5K:   5,
	Checkpoint10K:  10,
	CheckpointHalf: 21.0975,
	Checkpoint30K:  30,
	Checkpoint35K:  35,
	Checkpoint40K:  40,
}

// KnownCheckpoint reports whether the name refers to a checkpoint this
// engine understands.
func KnownCheckpoint(cp Checkpoint) bool {
	_, ok := CheckpointKm[cp]
	return ok
}
