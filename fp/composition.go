package fp

// Composition maps element symbols to mass fractions in [0,1].
type Composition map[string]float64

// Uniform returns a composition with equal mass fractions across the
// given elements.
func Uniform(symbols []string) Composition {
	c := make(Composition, len(symbols))

	if len(symbols) == 0 {
		return c
	}

	frac := 1.0 / float64(len(symbols))
	for _, s := range symbols {
		c[s] = frac
	}

	return c
}

// Sum returns the total of all mass fractions.
func (c Composition) Sum() float64 {
	var total float64
	for _, v := range c {
		total += v
	}

	return total
}

// Clone returns a copy of the composition.
func (c Composition) Clone() Composition {
	out := make(Composition, len(c))
	for k, v := range c {
		out[k] = v
	}

	return out
}

// Normalize returns a copy rescaled so the fractions sum to 1. A
// composition whose fractions sum to 0 becomes uniform, so the result
// always satisfies the normalization invariant.
func (c Composition) Normalize() Composition {
	total := c.Sum()
	if total == 0 {
		symbols := make([]string, 0, len(c))
		for k := range c {
			symbols = append(symbols, k)
		}

		return Uniform(symbols)
	}

	out := make(Composition, len(c))
	for k, v := range c {
		out[k] = v / total
	}

	return out
}
