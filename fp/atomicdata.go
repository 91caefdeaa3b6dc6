package fp

// Line identifies a characteristic emission line.
type Line int

// Characteristic lines known to the model.
const (
	KA1 Line = iota // K-L3
	KA2             // K-L2
	KB1             // K-M3
	LA1             // L3-M5
	LB1             // L2-M4
)

// String returns the conventional Siegbahn notation.
func (l Line) String() string {
	switch l {
	case KA1:
		return "KA1"
	case KA2:
		return "KA2"
	case KB1:
		return "KB1"
	case LA1:
		return "LA1"
	case LB1:
		return "LB1"
	}

	return "unknown"
}

// Shell identifies the shell a line originates from.
type Shell int

// Shells known to the model. L lines are treated as L3 throughout.
const (
	ShellK Shell = iota
	ShellL
)

// Shell returns the absorbing shell of the line.
func (l Line) Shell() Shell {
	if l == LA1 || l == LB1 {
		return ShellL
	}

	return ShellK
}

// AtomicData supplies the atomic physics quantities the Sherman model
// needs. Implementations return 0 for undefined element/line/shell
// combinations; the model treats a missing line as a valid physical
// outcome (zero contribution), not an error.
type AtomicData interface {
	// AtomicNumber returns Z for the element symbol.
	AtomicNumber(symbol string) (int, bool)
	// LineEnergy returns the line energy in keV, 0 when undefined.
	LineEnergy(symbol string, line Line) float64
	// EdgeEnergy returns the absorption edge energy in keV, 0 when undefined.
	EdgeEnergy(symbol string, shell Shell) float64
	// PhotoCS returns the photoelectric cross-section in cm²/g.
	PhotoCS(symbol string, energy float64) float64
	// TotalCS returns the total mass-attenuation coefficient in cm²/g.
	TotalCS(symbol string, energy float64) float64
	// FluorYield returns the fluorescence yield of the shell, in [0,1].
	FluorYield(symbol string, shell Shell) float64
	// JumpRatio returns the absorption-edge jump ratio of the shell.
	JumpRatio(symbol string, shell Shell) float64
}
