// Package dataprocessing loads the raw users, matches and chats tables and
// renders cleaned or prepared records back into tables.
//
// # Architecture
//
//  1. Reader: delimited text (comma, semicolon or tab, auto-detected) or the
//     first sheet of an .xlsx workbook, into a Table of strings
//  2. Loader: reads the three input tables of a run in parallel
//  3. Encoders: turn domain records into Tables for export
//
// Column lookup is case-insensitive and accepts aliases, so an input
// exported with "id" and "candidate_id" resolves the same as one using
// "match_id" and "user_id".
//
// # Usage
//
//	raw, err := dataprocessing.LoadRaw(ctx, dataprocessing.Inputs{
//	    Users:   "data/users.csv",
//	    Matches: "data/matches.csv",
//	    Chats:   "data/chats.csv",
//	})
//	if err != nil {
//	    return err
//	}
//	col, err := raw.Matches.Column("match_id", "id")
//
// Encoded tables use the missing-value convention of the cleaning stage: a
// numeric field holding domain.Missing is written as an empty cell.
package dataprocessing
