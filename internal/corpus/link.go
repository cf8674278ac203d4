package corpus

import "chronocorpus/internal/models"

// LinkChain wires an already-ordered sequence into a doubly linked chain:
// each record points at its immediate neighbours, the first has no prev, the
// last has no next. The field shape allows wider graphs; this linker never
// assigns more than one neighbour per side.
func LinkChain(records []models.Record) {
	for i := range records {
		if i > 0 {
			records[i].PrevEventID = records[i-1].ID
		}
		if i < len(records)-1 {
			records[i].NextEventID = records[i+1].ID
		}
	}
}
