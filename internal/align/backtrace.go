package align

// backTrace walks the path matrix from the best-scoring cell at the end of
// the query back to the origin, emitting overhangs on both ends as gaps.
func backTrace[L comparable](query, ref []L, scores, paths [][]int, meanShift int, gapLetter L) Result[L] {
	rowLength := len(scores[0])
	scoresSize := len(scores)
	querySize := len(query)
	refSize := len(ref)
	bandWidth := (scoresSize - 1) / 2

	indexToShift := func(si int) int { return si - bandWidth + meanShift }

	lastScoreByShift := make([]int, scoresSize)
	lastIndexByShift := make([]int, scoresSize)

	si := 0
	bestScore := 0
	for i := 0; i < scoresSize; i++ {
		is := indexToShift(i)
		li := querySize + is
		if li > rowLength-1 {
			li = rowLength - 1
		}
		lastIndexByShift[i] = li
		lastScoreByShift[i] = scores[i][li]
		if lastScoreByShift[i] > bestScore {
			bestScore = lastScoreByShift[i]
			si = i
		}
	}

	shift := indexToShift(si)
	rPos := lastIndexByShift[si] - 1
	qPos := rPos - shift

	var alnRef, alnQuery []L

	switch {
	case rPos < refSize-1:
		for ii := refSize - 1; ii > rPos; ii-- {
			alnQuery = append(alnQuery, gapLetter)
			alnRef = append(alnRef, ref[ii])
		}
	case qPos < querySize-1:
		for ii := querySize - 1; ii > qPos; ii-- {
			alnQuery = append(alnQuery, query[ii])
			alnRef = append(alnRef, gapLetter)
		}
	}

	currentMatrix := 0
backtraceLoop:
	for rPos >= 0 && qPos >= 0 {
		origin := paths[si][rPos+1]
		switch {
		case origin&pathMatch != 0 && currentMatrix == 0:
			alnQuery = append(alnQuery, query[qPos])
			alnRef = append(alnRef, ref[rPos])
			qPos--
			rPos--
		case (origin&pathRefGap != 0 && currentMatrix == 0) || currentMatrix == pathRefGap:
			alnQuery = append(alnQuery, query[qPos])
			alnRef = append(alnRef, gapLetter)
			qPos--
			si++
			if origin&pathRefGapExtend != 0 {
				currentMatrix = pathRefGap
			} else {
				currentMatrix = 0
			}
		case (origin&pathQryGap != 0 && currentMatrix == 0) || currentMatrix == pathQryGap:
			alnQuery = append(alnQuery, gapLetter)
			alnRef = append(alnRef, ref[rPos])
			rPos--
			si--
			if origin&pathQryGapExtend != 0 {
				currentMatrix = pathQryGap
			} else {
				currentMatrix = 0
			}
		default:
			break backtraceLoop
		}
	}

	switch {
	case rPos >= 0:
		for ii := rPos; ii >= 0; ii-- {
			alnQuery = append(alnQuery, gapLetter)
			alnRef = append(alnRef, ref[ii])
		}
	case qPos >= 0:
		for ii := qPos; ii >= 0; ii-- {
			alnQuery = append(alnQuery, query[ii])
			alnRef = append(alnRef, gapLetter)
		}
	}

	reverseInPlace(alnQuery)
	reverseInPlace(alnRef)

	return Result[L]{Ref: alnRef, Qry: alnQuery, Score: bestScore}
}

func reverseInPlace[L any](s []L) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
