package installer

const (
	// StartPercent is reported before anything runs.
	StartPercent = 0
	// RefreshPercent is reported once the package index refresh succeeds.
	RefreshPercent = 20
	// DonePercent is reported once the last dependency is installed.
	DonePercent = 100
)

// Percent returns the progress after dependency i of n has been installed.
// Percent(0, n) is RefreshPercent and Percent(n, n) is DonePercent.
func Percent(i, n int) int {
	if n <= 0 {
		return DonePercent
	}
	if i < 0 {
		i = 0
	}
	if i > n {
		i = n
	}
	return RefreshPercent + i*(DonePercent-RefreshPercent)/n
}

// Milestones returns every progress value a successful run of n dependencies
// reports, starting with StartPercent.
func Milestones(n int) []int {
	out := []int{StartPercent, RefreshPercent}
	for i := 1; i <= n; i++ {
		out = append(out, Percent(i, n))
	}
	return out
}
