package app

// scoreTable holds the prize for each question position; positions past the
// end reuse the last entry.
var scoreTable = [...]int{
	1000, 2000, 5000, 10000, 20000, 50000,
	100000, 200000, 300000, 400000, 500000, 1000000,
}

// ScoreFor returns the points awarded for a correct answer at a 0-based question index.
func ScoreFor(index int) int {
	if index < 0 {
		index = 0
	}
	if index >= len(scoreTable) {
		return scoreTable[len(scoreTable)-1]
	}
	return scoreTable[index]
}
