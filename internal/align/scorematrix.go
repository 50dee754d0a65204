package align

// newMatrix allocates a rows x cols grid of ints.
func newMatrix(rows, cols int) [][]int {
	flat := make([]int, rows*cols)
	m := make([][]int, rows)
	for i := range m {
		m[i] = flat[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return m
}

// scoreMatrix fills the banded forward score/path matrices. ri indexes the
// reference (columns, offset by one for the leading boundary column), si
// indexes the band row; the query position corresponding to (si, ri) is
// qPos = ri - (si - bandWidth + meanShift): ri - (bandWidth + meanShift) on
// the top row si = 2*bandWidth, one more on each row below it.
func scoreMatrix[L comparable](query, ref []L, gapOpenClose []int, bandWidth, meanShift int, params Parameters, scorer Scorer[L]) (scores, paths [][]int) {
	querySize := len(query)
	refSize := len(ref)
	nRows := bandWidth*2 + 1
	nCols := refSize + 1

	scores = newMatrix(nRows, nCols)
	paths = newMatrix(nRows, nCols)
	qryGaps := make([]int, nRows)

	match := params.ScoreMatch
	mismatch := params.PenaltyMismatch
	gapOpen := params.PenaltyGapOpen
	gapExtend := params.PenaltyGapExtend
	noAlign := -(match - mismatch) * refSize

	for si := 2 * bandWidth; si > bandWidth; si-- {
		paths[si][0] = pathQryGap
	}
	paths[bandWidth][0] = pathMatch
	qryGaps[bandWidth] = gapOpen
	for si := bandWidth - 1; si >= 0; si-- {
		paths[si][0] = pathRefGap
		qryGaps[si] = gapOpen
	}

	for ri := 0; ri < refSize; ri++ {
		qPos := ri - (bandWidth + meanShift)
		refGaps := gapOpenClose[ri]
		for si := 2 * bandWidth; si >= 0; si-- {
			tmpPath := 0
			var score, origin int

			switch {
			case qPos < 0:
				score = 0
				tmpPath += pathQryGapExtend
				refGaps = gapOpenClose[ri]
				origin = pathQryGap
			case qPos < querySize:
				tmpMatch := mismatch
				if scorer.Match(query[qPos], ref[ri]) {
					tmpMatch = match
				}
				score = scores[si][ri] + tmpMatch
				origin = pathMatch

				if si < 2*bandWidth {
					rGapExtend := refGaps + gapExtend
					rGapOpen := scores[si+1][ri+1] + gapOpenClose[ri+1]
					var tmpScore int
					if rGapExtend > rGapOpen {
						tmpScore = rGapExtend
						tmpPath += pathRefGapExtend
					} else {
						tmpScore = rGapOpen
					}
					refGaps = tmpScore
					if score < tmpScore {
						score = tmpScore
						origin = pathRefGap
					}
				} else {
					refGaps = noAlign
				}

				if si > 0 {
					qGapExtend := qryGaps[si-1] + gapExtend
					qGapOpen := scores[si-1][ri] + gapOpenClose[ri]
					var tmpScore int
					if qGapExtend > qGapOpen {
						tmpScore = qGapExtend
						tmpPath += pathQryGapExtend
					} else {
						tmpScore = qGapOpen
					}
					qryGaps[si] = tmpScore
					if score < tmpScore {
						score = tmpScore
						origin = pathQryGap
					}
				} else {
					qryGaps[si] = noAlign
				}
			default:
				score = endOfSequence
				origin = endOfSequence
			}

			tmpPath += origin
			paths[si][ri+1] = tmpPath
			scores[si][ri+1] = score
			qPos++
		}
	}

	return scores, paths
}
