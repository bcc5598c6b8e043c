package domain

// CleanDataset is the output of the cleaning stage.
type CleanDataset struct {
	Users   []User
	Matches []Match
	Chats   []Chat
}

// PreparedDataset is the output of the preparation stage.
type PreparedDataset struct {
	Users      []User
	Matches    []Match
	ChatStats  []ChatStats
	Candidates []CandidateRecord
}

// UserIndex maps user ids to their position in a slice.
func UserIndex(users []User) map[int64]int {
	idx := make(map[int64]int, len(users))
	for i, u := range users {
		idx[u.UserID] = i
	}
	return idx
}
