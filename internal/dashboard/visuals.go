package dashboard

import "github.com/driftlab/pulseboard/internal/consciousness"

// DeriveVisuals maps the shared consciousness state onto the three derived
// visual scalars. Pure function; every module gets the same values each
// tick regardless of its config or category.
func DeriveVisuals(s consciousness.State) (glow, breathing, particles float64) {
	glow = 0.2 + (s.SCUP/100)*0.8
	breathing = 0.3 + s.NeuralActivity*0.7
	particles = 0.1 + s.Entropy*0.9
	return glow, breathing, particles
}
