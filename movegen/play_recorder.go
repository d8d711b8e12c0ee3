package movegen

// A PlayRecorderFunc is called for every legal play found. The play is
// on gen's strip between start and end, inclusive.
type PlayRecorderFunc func(gen *GordonGenerator, start, end int, score int)

// NullPlayRecorder records nothing. Useful for counting search nodes.
func NullPlayRecorder(gen *GordonGenerator, start, end int, score int) {
}

// AllPlaysRecorder records every play.
func AllPlaysRecorder(gen *GordonGenerator, start, end int, score int) {
	gen.plays = append(gen.plays, gen.makeMove(start, end, score))
}

// TopPlayOnlyRecorder avoids allocating a lot of moves just to throw them
// out. It only records the very top play by score; the first play found
// wins ties.
func TopPlayOnlyRecorder(gen *GordonGenerator, start, end int, score int) {
	if len(gen.plays) > 0 && score <= gen.plays[0].Score() {
		return
	}
	m := gen.makeMove(start, end, score)
	if len(gen.plays) == 0 {
		gen.plays = append(gen.plays, m)
	} else {
		gen.plays[0] = m
	}
}
