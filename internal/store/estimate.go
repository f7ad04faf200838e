package store

// EstimateWaitMinutes derives the expected wait from queue depth and the
// scope's average service duration. Zero when nobody is ahead.
func EstimateWaitMinutes(peopleAhead, avgServiceMinutes int) int {
	if peopleAhead <= 0 || avgServiceMinutes <= 0 {
		return 0
	}
	return peopleAhead * avgServiceMinutes
}
