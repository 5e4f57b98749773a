package calc

// Protection is the breaker and residual-current device for the circuit
type Protection struct {
	Breaker        int    `json:"breaker"`
	BreakerType    string `json:"breakerType"`
	RCD            int    `json:"rcd"`
	RCDSensitivity int    `json:"rcdSensitivity"` // mA
	Oversized      bool   `json:"oversized,omitempty"`
}

const (
	breakerMargin      = 1.25
	curveDThreshold    = 50.0
	poolRCDSensitivity = 30
)

// StandardBreakers and StandardRCDs list the ratings in amperes
var (
	StandardBreakers = []int{10, 16, 20, 25, 32, 40, 50, 63, 80, 100, 125}
	StandardRCDs     = []int{16, 25, 40, 63, 80, 100}
)

// SelectProtection sizes the breaker at 1.25 times the design current and
// an RCD at or above the breaker. Oversized is set when the current needs
// more than the largest standard breaker.
func SelectProtection(current float64) (Protection, error) {
	if err := requireFinite("current", current); err != nil {
		return Protection{}, err
	}
	p := Protection{BreakerType: "C", RCDSensitivity: poolRCDSensitivity}
	if current > curveDThreshold {
		p.BreakerType = "D"
	}

	minRating := current * breakerMargin
	p.Breaker = StandardBreakers[len(StandardBreakers)-1]
	p.Oversized = true
	for _, b := range StandardBreakers {
		if float64(b) >= minRating {
			p.Breaker = b
			p.Oversized = false
			break
		}
	}

	p.RCD = StandardRCDs[len(StandardRCDs)-1]
	for _, r := range StandardRCDs {
		if r >= p.Breaker {
			p.RCD = r
			break
		}
	}
	return p, nil
}
