package consciousness

// Mood is the categorical component of the shared consciousness state.
type Mood string

const (
	MoodCalm          Mood = "calm"
	MoodContemplative Mood = "contemplative"
	MoodCurious       Mood = "curious"
	MoodFocused       Mood = "focused"
	MoodExcited       Mood = "excited"
	MoodAnxious       Mood = "anxious"
	MoodChaotic       Mood = "chaotic"
)

// State is the shared vector of scalar metrics that drives every module's
// derived visual intensity. A single instance exists per dashboard, mutated
// only through the Manager.
type State struct {
	SCUP           float64 `json:"scup" yaml:"scup"`                       // 0..100
	Entropy        float64 `json:"entropy" yaml:"entropy"`                 // 0..1
	Mood           Mood    `json:"mood" yaml:"mood"`                       // categorical
	NeuralActivity float64 `json:"neural_activity" yaml:"neural_activity"` // 0..1
	SystemUnity    float64 `json:"system_unity" yaml:"system_unity"`       // 0..1
	Paused         bool    `json:"paused" yaml:"paused"`
	DreamMode      bool    `json:"dream_mode" yaml:"dream_mode"`
}

// DefaultState returns the values the state is reset to.
func DefaultState() State {
	return State{
		SCUP:           75,
		Entropy:        0.3,
		Mood:           MoodContemplative,
		NeuralActivity: 0.5,
		SystemUnity:    0.8,
	}
}

// Patch is a partial state update; nil fields are left untouched. Scalar
// values are clamped to their documented ranges on apply.
type Patch struct {
	SCUP           *float64 `json:"scup,omitempty" yaml:"scup,omitempty"`
	Entropy        *float64 `json:"entropy,omitempty" yaml:"entropy,omitempty"`
	Mood           *Mood    `json:"mood,omitempty" yaml:"mood,omitempty"`
	NeuralActivity *float64 `json:"neural_activity,omitempty" yaml:"neural_activity,omitempty"`
	SystemUnity    *float64 `json:"system_unity,omitempty" yaml:"system_unity,omitempty"`
	DreamMode      *bool    `json:"dream_mode,omitempty" yaml:"dream_mode,omitempty"`
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
