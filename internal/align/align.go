package align

// Align performs a banded, seeded, affine-gap Needleman-Wunsch alignment of
// query against ref. gapOpenClose must have length len(ref)+2.
func Align[L comparable](query, ref []L, gapOpenClose []int, params Parameters, seedParams SeedParameters, scorer Scorer[L]) (Result[L], error) {
	if len(query) < params.MinimalLength {
		return Result[L]{}, &SequenceTooShortError{Length: len(query), MinimalLength: params.MinimalLength}
	}

	seeded, err := seedAlignment(query, ref, seedParams, scorer)
	if err != nil {
		return Result[L]{}, err
	}
	if seeded.bandWidth < 1 {
		seeded.bandWidth = 1
	}
	if seeded.bandWidth > params.MaxIndel {
		return Result[L]{}, &BadSeedMatchesError{BandWidth: seeded.bandWidth, MaxIndel: params.MaxIndel}
	}

	scores, paths := scoreMatrix(query, ref, gapOpenClose, seeded.bandWidth, seeded.meanShift, params, scorer)
	return backTrace(query, ref, scores, paths, seeded.meanShift, scorer.Gap), nil
}
