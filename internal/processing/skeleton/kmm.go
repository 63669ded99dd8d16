package skeleton

import "skeleton-workbench/internal/processing/neighbors"

// kmm thins bitmap in place with the KMM algorithm and returns the number of
// passes run, the last one being the pass that changed nothing.
//
// Each pass tags contour pixels (edge contact first, then corner contact),
// removes the pixels the contour table marks, then tests edge pixels and
// after them corner pixels against the deletion table. Deletions take effect
// immediately so later pixels of the same sweep see them.
func kmm(bitmap []uint8, s neighbors.Sampler) int {
	passes := 0
	for changed := true; changed; {
		changed = false
		passes++

		for j, v := range bitmap {
			if v == stateBackground {
				continue
			}
			p := s.Sample(bitmap, j)
			if p.TouchesEdge() {
				bitmap[j] = stateEdge
			} else if p.TouchesCorner() {
				bitmap[j] = stateCorner
			}
		}

		for j, v := range bitmap {
			if v == stateBackground {
				continue
			}
			if s.Sample(bitmap, j).Matches(&kmmContourTable) {
				bitmap[j] = stateMarked
				changed = true
			}
		}
		for j, v := range bitmap {
			if v == stateMarked {
				bitmap[j] = stateBackground
			}
		}

		for _, state := range [2]uint8{stateEdge, stateCorner} {
			for j, v := range bitmap {
				if v != state {
					continue
				}
				if s.Sample(bitmap, j).Matches(&kmmDeletionTable) {
					bitmap[j] = stateBackground
					changed = true
				} else {
					bitmap[j] = stateForeground
				}
			}
		}
	}
	return passes
}
