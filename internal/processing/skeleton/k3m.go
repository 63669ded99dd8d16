package skeleton

import "skeleton-workbench/internal/processing/neighbors"

// k3m thins bitmap in place with the K3M algorithm and returns the number of
// passes run.
//
// A pass collects the current border pixels (phase 0) and runs phases 1..5
// over them in order, deleting every still-foreground candidate whose
// neighbourhood matches the phase table. When a pass deletes nothing, the
// phase-0 table is applied once over the whole image to reduce the skeleton
// to one pixel width; if that cleanup removed anything, thinning resumes so
// the result is a fixed point of the whole procedure.
func k3m(bitmap []uint8, s neighbors.Sampler) int {
	passes := 0
	border := make([]int, 0, len(bitmap)/4)

	for {
		for changed := true; changed; {
			changed = false
			passes++

			border = border[:0]
			for j, v := range bitmap {
				if v != stateBackground && s.Sample(bitmap, j).Matches(&k3mBorderTable) {
					border = append(border, j)
				}
			}

			for phase := range k3mPhaseTables {
				table := &k3mPhaseTables[phase]
				for _, j := range border {
					if bitmap[j] == stateBackground {
						continue
					}
					if s.Sample(bitmap, j).Matches(table) {
						bitmap[j] = stateBackground
						changed = true
					}
				}
			}
		}

		if thinToSingleWidth(bitmap, s) == 0 {
			return passes
		}
	}
}

// thinToSingleWidth removes the remaining border pixels phase 0 still
// matches and returns how many it removed.
func thinToSingleWidth(bitmap []uint8, s neighbors.Sampler) int {
	removed := 0
	for j, v := range bitmap {
		if v != stateBackground && s.Sample(bitmap, j).Matches(&k3mBorderTable) {
			bitmap[j] = stateBackground
			removed++
		}
	}
	return removed
}
