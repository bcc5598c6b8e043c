// Package cleaning turns raw users, matches and chats tables into typed
// domain records.
//
// Each table is cleaned row by row. Rows whose key cannot be trusted are
// dropped; individual malformed values are replaced by domain.Missing (or
// the zero time) and flagged. Every decision lands in a domain.Report and is
// logged as a "Data quality issue" warning, so a run never aborts on bad
// values. Only a missing required column is an error.
//
// Text is normalised to NFC with whitespace collapsed. Categorical fields are
// title- or lower-cased; free text keeps its case and is scored for sentiment
// by a SentimentScorer. Cleaning its own encoded output yields the same
// records and no new issues.
package cleaning
