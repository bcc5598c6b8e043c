package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tommurray222/candid-hospitality/internal/dataprocessing"
)

// TestAccountID is the user id the fixtures treat as a test account.
const TestAccountID int64 = 21

// UsersCSV exercises the users cleaning rules:
//
//	row 1 user 1   clean, salary with currency and grouping
//	row 2 user 2   compact dob, five digit culture code, no salary
//	row 3 user 3   bad dob, float culture code, non-numeric salary
//	row 4 user 21  test account
//	row 5 "abc"    invalid id
//	row 6 user 1   duplicate id
//	row 7 user 4   negative salary, latitude out of range
const UsersCSV = `candidate_id,dob,department,city,culture_code,expected_salary,ethnicity,gender,culture_text,lat,lng
1,1990-05-01,front of house,  london ,1234,"£28,000",White British,Female,I love working with people and I am very friendly!,51.5074,-0.1278
2,19850612,KITCHEN,Manchester,56789,,Asian,MALE,  Hardworking   chef.  ,53.4808,-2.2426
3,not a date,bar,Leeds,2345.0,abc,,female,I hate being late but I am reliable,,
21,1995-01-01,bar,London,1111,20000,,male,test bio,,
abc,1990-01-01,bar,London,1111,20000,,male,,,
1,1991-01-01,Spa,London,1111,20000,,male,,,
4,2000-02-29,Housekeeping,Bristol,,-500,Black,Non-Binary,,91,0
`

// MatchesCSV exercises the matches cleaning rules:
//
//	row 1 match 10  clean, liked and progressed
//	row 2 match 11  score_culture out of range, no department score, disliked and rejected
//	row 3 match 12  no overall score
//	row 4 match 13  unknown user 99, boolean literal flags
//	row 5 match 14  test account user 21
//	row 6 "x"       invalid id
//	row 7 match 15  non-numeric job id
const MatchesCSV = `id,job_id,candidate_id,score_overall,score_department,score_culture,score_competencies,score_compensation,score_benefits,liked,disliked,progressed,rejected
10,100,1,80,85,70,90,60,75,2024-01-03 10:00:00,,2024-01-05 12:00:00,
11,100,2,65.5,,150,40,50,55,,2024-01-04 09:00:00,,2024-01-06 09:00:00
12,101,3,,50,50,50,50,50,,,,
13,102,99,70,70,70,70,70,70,true,false,1,0
14,102,21,70,70,70,70,70,70,,,,
x,1,1,1,1,1,1,1,1,,,,
15,abc,4,90,90,90,90,90,90,yes,,,
`

// ChatsCSV holds a full conversation on match 10, a conversation with an
// unreadable timestamp on match 11, an invalid match id and a chat on the
// test account's match 14.
const ChatsCSV = `id,match_id,sender,timestamp,message
1,10,company,2024-01-03 10:00:00,Hi! We loved your profile.
2,10,candidate,2024-01-03 10:30:00,"Thank you so much, I am really excited"
3,10,company,2024-01-03 11:30:00,"Great, can you come in on Friday?"
4,10,Candidate,2024-01-03 11:40:00,Yes definitely
5,10,system,2024-01-03 11:41:00,Interview scheduled
6,11,company,2024-01-04 09:00:00,"Bad news, the role is filled"
7,11,candidate,garbage,ok
8,bad,candidate,2024-01-04 09:00:00,hello
9,14,candidate,2024-01-04 09:00:00,test message
`

// Table parses one of the fixture CSVs into a raw table.
func Table(t *testing.T, name, csv string) *dataprocessing.Table {
	t.Helper()
	table, err := dataprocessing.ReadDelimited(strings.NewReader(csv), name)
	require.NoError(t, err)
	return table
}

// RawDataset returns the three fixture tables.
func RawDataset(t *testing.T) *dataprocessing.RawDataset {
	t.Helper()
	return &dataprocessing.RawDataset{
		Users:   Table(t, "users", UsersCSV),
		Matches: Table(t, "matches", MatchesCSV),
		Chats:   Table(t, "chats", ChatsCSV),
	}
}

// WriteInputs writes the fixture CSVs into dir using the file names
// discovery expects and returns their paths.
func WriteInputs(t *testing.T, dir string) dataprocessing.Inputs {
	t.Helper()
	in := dataprocessing.Inputs{
		Users:   filepath.Join(dir, "users.csv"),
		Matches: filepath.Join(dir, "matches.csv"),
		Chats:   filepath.Join(dir, "chats.csv"),
	}
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(in.Users, []byte(UsersCSV), 0644))
	require.NoError(t, os.WriteFile(in.Matches, []byte(MatchesCSV), 0644))
	require.NoError(t, os.WriteFile(in.Chats, []byte(ChatsCSV), 0644))
	return in
}
