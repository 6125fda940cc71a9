// Package tuning builds the candidate calibration grid used by tuning
// detection: one equal-temperament note ladder per candidate reference
// frequency in [424.0, 448.0] Hz.
package tuning

// Grid geometry. Candidates are generated by integer step index so the grid
// always contains exactly GridSize entries regardless of float summation
// order.
const (
	GridMin  = 424.0
	GridMax  = 448.0
	GridStep = 0.1
	GridSize = 241

	// NotesPerLadder is 9 octaves of 12 semitones, C0 through B8.
	NotesPerLadder = 108
)

// reference440 is the equal-temperament note table anchored at A4 = 440 Hz.
var reference440 = [NotesPerLadder]float64{
	16.35, 17.32, 18.35, 19.45, 20.6, 21.83, 23.12, 24.5, 25.96, 27.5, 29.14, 30.87,
	32.7, 34.65, 36.71, 38.89, 41.2, 43.65, 46.25, 49, 51.91, 55, 58.27, 61.74,
	65.41, 69.3, 73.42, 77.78, 82.41, 87.31, 92.5, 98, 103.83, 110, 116.54, 123.47,
	130.81, 138.59, 146.83, 155.56, 164.81, 174.61, 185, 196, 207.65, 220, 233.08, 246.94,
	261.63, 277.18, 293.66, 311.13, 329.63, 349.23, 369.99, 392, 415.3, 440, 466.16, 493.88,
	523.25, 554.37, 587.33, 622.25, 659.25, 698.46, 739.99, 783.99, 830.61, 880, 932.33, 987.77,
	1046.5, 1108.73, 1174.66, 1244.51, 1318.51, 1396.91, 1479.98, 1567.98, 1661.22, 1760, 1864.66, 1975.53,
	2093, 2217.46, 2349.32, 2489.02, 2637.02, 2793.83, 2959.96, 3135.96, 3322.44, 3520, 3729.31, 3951.07,
	4186.01, 4434.92, 4698.63, 4978.03, 5274.04, 5587.65, 5919.91, 6271.93, 6644.88, 7040, 7458.62, 7902.13,
}

// Candidate is one calibration frequency with its full note ladder.
type Candidate struct {
	Frequency float64
	Ladder    []float64
}

// Grid is the immutable candidate set. Build it once with NewGrid and pass
// it into the detector.
type Grid struct {
	candidates []Candidate
}

// NewGrid constructs the full candidate grid. Each candidate ladder is the
// 440 Hz reference table scaled elementwise by candidate/440.
func NewGrid() Grid {
	candidates := make([]Candidate, 0, GridSize)

	for i := 0; i < GridSize; i++ {
		freq := GridMin + float64(i)*GridStep
		scale := freq / 440.0

		ladder := make([]float64, NotesPerLadder)
		for j, f := range reference440 {
			ladder[j] = f * scale
		}

		candidates = append(candidates, Candidate{Frequency: freq, Ladder: ladder})
	}

	return Grid{candidates: candidates}
}

// Candidates returns the candidates in ascending frequency order.
func (g Grid) Candidates() []Candidate {
	return g.candidates
}

// Len returns the candidate count.
func (g Grid) Len() int {
	return len(g.candidates)
}
