package views

// Filter-bar ordering and visibility bookkeeping. The display order users
// arrange is stored independently of which filters the current column
// configuration declares, so a column change neither resets nor misplaces
// the customization.

// EffectiveOrder merges the stored display order with the live set of
// filter fields: stored identifiers still present in live keep their
// positions, stale identifiers are dropped, and newly introduced fields
// are appended in live's own order. Every live field appears exactly once.
func EffectiveOrder(stored, live []string) []string {
	liveSet := make(map[string]bool, len(live))
	for _, f := range live {
		liveSet[f] = true
	}

	out := make([]string, 0, len(live))
	seen := make(map[string]bool, len(live))
	for _, f := range stored {
		if liveSet[f] && !seen[f] {
			out = append(out, f)
			seen[f] = true
		}
	}
	for _, f := range live {
		if !seen[f] {
			out = append(out, f)
			seen[f] = true
		}
	}
	return out
}

// VisibleFields filters an order down to the fields whose visibility flag
// is not explicitly false. Absence defaults to visible.
func VisibleFields(order []string, visibility map[string]bool) []string {
	out := make([]string, 0, len(order))
	for _, f := range order {
		if v, ok := visibility[f]; ok && !v {
			continue
		}
		out = append(out, f)
	}
	return out
}

// CommitReorder reconstructs a full order array from a drag-reorder of its
// visible subset. Walking the effective order, each position occupied by a
// member of the reordered set is filled with the next reordered
// identifier in sequence; positions held by fields outside the set (hidden
// filters interleaved positionally) keep their slots. The result is the
// new stored order.
func CommitReorder(effective, reordered []string) []string {
	inReordered := make(map[string]bool, len(reordered))
	for _, f := range reordered {
		inReordered[f] = true
	}

	out := make([]string, 0, len(effective))
	next := 0
	for _, f := range effective {
		if inReordered[f] && next < len(reordered) {
			out = append(out, reordered[next])
			next++
		} else {
			out = append(out, f)
		}
	}
	return out
}
