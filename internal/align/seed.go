package align

import "math"

// roundHalfAwayFromZero mirrors C/C++ std::round semantics, used throughout
// the seed-matching arithmetic.
func roundHalfAwayFromZero(x float64) int {
	if x >= 0 {
		return int(math.Floor(x + 0.5))
	}
	return int(math.Ceil(x - 0.5))
}

// mapToGoodPositions returns query indices that are at least seedLength
// letters away (in the forward direction) from the last ambiguous letter,
// making them safe anchors for exact-match seed scanning.
func mapToGoodPositions[L comparable](query []L, seedLength int, isAmbiguous func(L) bool) []int {
	var out []int
	distanceToLastBad := 0
	for i, l := range query {
		if isAmbiguous(l) {
			distanceToLastBad = -1
		} else if distanceToLastBad > seedLength {
			out = append(out, i-seedLength)
		}
		distanceToLastBad++
	}
	return out
}

type seedMatchResult struct {
	shift int
	score int
}

// seedMatch finds the reference shift, at or after startPos, that maximizes
// the Hamming score of kmer against the reference, early-terminating a
// candidate shift once it can no longer beat allowedMismatches, and
// stopping outright on a perfect match.
func seedMatch[L comparable](kmer, ref []L, startPos, allowedMismatches int) seedMatchResult {
	refSize := len(ref)
	kmerSize := len(kmer)
	maxScore := 0
	maxShift := -1
	for shift := startPos; shift < refSize-kmerSize; shift++ {
		tmpScore := 0
		for pos := 0; pos < kmerSize; pos++ {
			if kmer[pos] == ref[shift+pos] {
				tmpScore++
			}
			if tmpScore+allowedMismatches < pos {
				break
			}
		}
		if tmpScore > maxScore {
			maxScore = tmpScore
			maxShift = shift
			if tmpScore == kmerSize {
				break
			}
		}
	}
	return seedMatchResult{shift: maxShift, score: maxScore}
}

type rawSeedMatch struct {
	qPos, shift, diff, score int
}

// seedAlignment estimates the diagonal shift and band width needed to align
// query against ref. When the naive band estimate (from sequence lengths
// alone) is already narrower than two seed lengths, seed matching is
// skipped entirely and the naive estimate is returned directly.
func seedAlignment[L comparable](query, ref []L, seedParams SeedParameters, scorer Scorer[L]) (seedAlignmentResult, error) {
	querySize := len(query)
	refSize := len(ref)
	seedLength := seedParams.SeedLength

	naiveBandWidth := roundHalfAwayFromZero(float64(refSize+querySize)*0.5) - 3
	if naiveBandWidth < 2*seedLength {
		return seedAlignmentResult{
			meanShift: roundHalfAwayFromZero(float64(refSize-querySize) * 0.5),
			bandWidth: naiveBandWidth,
		}, nil
	}

	seedSpacing := seedParams.SeedSpacing
	nSeeds := seedParams.MinSeeds
	if seedSpacing > 0 {
		if n := roundHalfAwayFromZero(float64(refSize) / float64(seedSpacing)); n > nSeeds {
			nSeeds = n
		}
	}
	margin := roundHalfAwayFromZero(float64(refSize) / 300.0)
	if margin > 30 {
		margin = 30
	}

	goodPositions := mapToGoodPositions(query, seedLength, scorer.IsAmbiguous)
	nGoodPositions := len(goodPositions)

	var matches []rawSeedMatch
	startPos := 0
	if nGoodPositions > 2*margin && nSeeds > 0 {
		seedCover := float64(nGoodPositions - 2*margin)
		var kmerSpacing float64
		if nSeeds > 1 {
			kmerSpacing = (seedCover - 1.0) / float64(nSeeds-1)
		}
		for ni := 0; ni < nSeeds; ni++ {
			idx := roundHalfAwayFromZero(float64(margin) + kmerSpacing*float64(ni))
			if idx < 0 || idx >= nGoodPositions {
				continue
			}
			qPos := goodPositions[idx]
			if qPos < 0 || qPos+seedLength > querySize {
				continue
			}
			m := seedMatch(query[qPos:qPos+seedLength], ref, startPos, seedParams.MismatchesAllowed)
			if m.score >= seedLength-seedParams.MismatchesAllowed {
				matches = append(matches, rawSeedMatch{qPos: qPos, shift: m.shift, diff: m.shift - qPos, score: m.score})
				startPos = m.shift
			}
		}
	}

	if len(matches) < 2 {
		return seedAlignmentResult{}, &NoSeedMatchesError{}
	}

	minShift := refSize
	maxShift := -refSize
	for _, m := range matches {
		if m.diff < minShift {
			minShift = m.diff
		}
		if m.diff > maxShift {
			maxShift = m.diff
		}
	}

	return seedAlignmentResult{
		meanShift: roundHalfAwayFromZero(0.5 * float64(minShift+maxShift)),
		bandWidth: maxShift - minShift + 9,
	}, nil
}
