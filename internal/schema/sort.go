package schema

import (
	"log"
	"slices"
)

// SortTablesByFKCount orders tables so that every table comes after the tables it
// depends on. Cycles are broken with a scoring heuristic: fewest unresolved
// dependencies first, with a bonus for tables in a direct two-way cycle. Ties go to
// the alphabetically smaller name so the result is deterministic.
func SortTablesByFKCount(tables []*Table) []*Table {
	byName := make(map[string]*Table, len(tables))
	for _, t := range tables {
		byName[t.Name] = t
	}

	sorted := make([]*Table, 0, len(tables))
	processed := make(map[string]bool, len(tables))

	for len(sorted) < len(tables) {
		added := false

		// Pass 1: tables whose dependencies are all placed.
		for _, t := range tables {
			if processed[t.Name] || !depsSatisfied(t, byName, processed) {
				continue
			}
			sorted = append(sorted, t)
			processed[t.Name] = true
			added = true
		}
		if added {
			continue
		}

		// Pass 2: nothing placeable, so there is a cycle. Pick one table to break it.
		var best *Table
		bestScore := 0
		for _, t := range tables {
			if processed[t.Name] {
				continue
			}
			score := cycleScore(t, byName, processed)
			if best == nil || score > bestScore || (score == bestScore && t.Name < best.Name) {
				best = t
				bestScore = score
			}
		}
		if best == nil {
			break
		}
		sorted = append(sorted, best)
		processed[best.Name] = true
		log.Printf("[Sort] Breaking circular dependency: %s (Score: %d)", best.Name, bestScore)
	}

	return sorted
}

func depsSatisfied(t *Table, byName map[string]*Table, processed map[string]bool) bool {
	for _, dep := range t.Dependencies {
		// Tables outside the list can never be placed; ignore them.
		if _, known := byName[dep]; !known || dep == t.Name {
			continue
		}
		if !processed[dep] {
			return false
		}
	}
	return true
}

func cycleScore(t *Table, byName map[string]*Table, processed map[string]bool) int {
	score := 0
	circular := false
	for _, dep := range t.Dependencies {
		if processed[dep] {
			continue
		}
		score -= 100
		if parent, ok := byName[dep]; ok && slices.Contains(parent.Dependencies, t.Name) {
			circular = true
		}
	}
	if circular {
		score += 500
	}
	return score
}
