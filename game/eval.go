package game

// EvaluateForces tallies each civilization's surviving health and cities to
// produce a score between -1 and 1 from civ's perspective against opponent.
func EvaluateForces(w *World, civ, opponent CivID) float64 {
	healthScore, unitScore := w.calculateUnitScores(civ, opponent)
	cityScore := w.calculateCityScore(civ, opponent)

	return (healthScore + unitScore + cityScore) / 3.0
}

func (w *World) calculateUnitScores(civ, opponent CivID) (healthScore, unitScore float64) {
	health := make(map[CivID]float64)
	units := make(map[CivID]float64)

	// Only military units count towards force
	for _, u := range w.Units {
		if u.Base.Type.IsMilitary() {
			units[u.Owner]++
			health[u.Owner] += float64(u.Health)
		}
	}

	healthScore = normalize(health[civ], health[opponent])
	unitScore = normalize(units[civ], units[opponent])
	return healthScore, unitScore
}

func (w *World) calculateCityScore(civ, opponent CivID) float64 {
	cities := make(map[CivID]float64)

	// Weight cities by population, capitals count double
	for _, c := range w.Cities {
		weight := float64(1 + c.Population)
		if c.Capital {
			weight *= 2
		}
		cities[c.Owner] += weight
	}

	return normalize(cities[civ], cities[opponent])
}

// normalize normalizes value relative to otherValue to a score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
