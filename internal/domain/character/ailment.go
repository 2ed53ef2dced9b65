package character

// Ailment is an active health reduction. Magnitude decays toward Floor
// each season; an ailment at zero magnitude with a zero floor is
// removed by the decay sweep.
type Ailment struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Magnitude   float64 `json:"magnitude"`
	Floor       float64 `json:"floor"`
	Decay       float64 `json:"decay"`
}

// Effect is the current health reduction.
func (a *Ailment) Effect() float64 { return a.Magnitude }

// Step applies one season of decay and reports whether the ailment has
// fully healed.
func (a *Ailment) Step() (healed bool) {
	a.Magnitude -= a.Decay
	if a.Magnitude < a.Floor {
		a.Magnitude = a.Floor
	}
	return a.Magnitude <= 0 && a.Floor <= 0
}

// Inflict adds an ailment to the character.
func (c *Character) Inflict(a *Ailment) {
	if a == nil {
		return
	}
	c.Ailments = append(c.Ailments, a)
}

// DecayAilments runs the per-season decay sweep over active ailments.
func (c *Character) DecayAilments() {
	kept := c.Ailments[:0]
	for _, a := range c.Ailments {
		if !a.Step() {
			kept = append(kept, a)
		}
	}
	c.Ailments = kept
	if len(c.Ailments) == 0 {
		c.Ailments = nil
	}
}

// AilmentTotal sums the active health reductions.
func (c *Character) AilmentTotal() float64 {
	var total float64
	for _, a := range c.Ailments {
		total += a.Effect()
	}
	return total
}
