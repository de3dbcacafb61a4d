package match

// aggregateComposite applies §4.4's junction logic to a composite's
// already-evaluated children, preserving declaration order in both the
// statistics and the returned CompositeResult.
func aggregateComposite(cc *CompositeCriterion, children []Result) *CompositeResult {
	stats := Statistics{Total: len(children)}

	var reasons []string

	for _, child := range children {
		switch child.State() {
		case Matched:
			stats.Matched++
		case NotMatched:
			stats.NotMatched++
		case Undetermined:
			stats.Undetermined++
		}

		if child.State() != Matched {
			reasons = append(reasons, child.CriterionID()+": "+child.Reason())
		}
	}

	result := &CompositeResult{
		ID:         cc.ID,
		JunctionOp: cc.Junction,
		Children:   children,
		Stats:      stats,
	}

	result.Outcome = junctionState(cc.Junction, stats)

	if result.Outcome != Matched {
		result.Explanation = joinReasons(reasons)
	}

	return result
}

func junctionState(j Junction, stats Statistics) EvaluationState {
	if j == JunctionOr {
		if stats.Matched > 0 {
			return Matched
		}

		if stats.NotMatched == stats.Total {
			return NotMatched
		}

		return Undetermined
	}

	if stats.NotMatched > 0 {
		return NotMatched
	}

	if stats.Matched == stats.Total {
		return Matched
	}

	return Undetermined
}
