package workout

// Stat is the running aggregate attached to workout, exercise session, and
// category views. It is derived from the current set rows on every query and
// never persisted.
type Stat struct {
	// Volume is the total work performed: weight times reps summed over
	// sets. Bodyweight sets (nil weight) contribute zero.
	Volume float64 `json:"volume"`
	// SetCount counts sets belonging to real workouts; placeholder
	// calendar entries contribute nothing.
	SetCount int `json:"set_count"`
	// AvgRPE is the mean of all non-nil RPE values folded so far, nil
	// until the first value is observed.
	AvgRPE *float64 `json:"avg_rpe"`

	// rpeObservations counts the non-nil RPE values behind AvgRPE so that
	// interleaved sets without an RPE never skew the mean.
	rpeObservations int
}

// Fold returns the accumulator updated with one logged set. It is a pure
// function: the receiver is copied, never mutated.
func (s Stat) Fold(set Set) Stat {
	s.SetCount++

	weight := 0.0
	if set.Weight != nil {
		weight = *set.Weight
	}
	s.Volume += weight * float64(set.Reps)

	if set.RPE != nil {
		if s.AvgRPE == nil {
			seed := *set.RPE
			s.AvgRPE = &seed
		} else {
			mean := (*s.AvgRPE*float64(s.rpeObservations) + *set.RPE) / float64(s.rpeObservations+1)
			s.AvgRPE = &mean
		}
		s.rpeObservations++
	}

	return s
}
