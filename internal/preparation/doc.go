// Package preparation derives analysis-ready tables from cleaned records.
//
// A Preparer sets user ages on a reference date, summarises each match's
// conversation (message counts, mean response time per responder and an
// interactivity metric in [-1, 1]) and joins matches with their chat
// statistics and users into domain.CandidateRecord rows sorted by match id.
// Every prepared record references an existing user.
package preparation
