package cleaning

import (
	"context"

	"github.com/tommurray222/candid-hospitality/internal/dataprocessing"
	"github.com/tommurray222/candid-hospitality/pkg/contracts/domain"
)

// CleanChats cleans a chats table. Rows without a valid match_id are
// dropped; unreadable timestamps are left zero and flagged. Every message is
// scored for sentiment.
func (c *Cleaner) CleanChats(ctx context.Context, t *dataprocessing.Table) ([]domain.Chat, *domain.Report, error) {
	matchCol, err := t.Column(dataprocessing.ColMatchID)
	if err != nil {
		return nil, nil, err
	}
	opt := func(name string) int { return t.OptionalColumn(name, dataprocessing.Aliases[name]...) }
	idCol := t.OptionalColumn(dataprocessing.ColID)
	senderCol := opt(dataprocessing.ColSender)
	tsCol := opt(dataprocessing.ColTimestamp)
	msgCol := opt(dataprocessing.ColMessage)

	run := newTableRun(ctx, c.logger, domain.TableChats, t.Len())
	chats := make([]domain.Chat, 0, t.Len())

	for i := range t.Rows {
		row := i + 1
		cell := func(col int) string { return t.Cell(i, col) }

		rawMatch := cell(matchCol)
		matchID, ok := ParseID(rawMatch)
		if !ok {
			run.drop(row, dataprocessing.ColMatchID, rawMatch, "match_id is not a positive integer")
			continue
		}

		chat := domain.Chat{
			ID:      domain.Missing,
			MatchID: matchID,
			Sender:  LowerText(cell(senderCol)),
			Message: FreeText(cell(msgCol)),
		}

		if rawID := cell(idCol); !IsNull(rawID) {
			if id, ok := ParseID(rawID); ok {
				chat.ID = id
			} else {
				run.flag(row, dataprocessing.ColID, rawID, "id is not a positive integer")
			}
		}

		rawTS := cell(tsCol)
		ts, present, ok := ParseTimestamp(rawTS)
		if present && !ok {
			run.flag(row, dataprocessing.ColTimestamp, rawTS, "unrecognised timestamp")
		}
		chat.Timestamp = ts

		chat.Sentiment = c.scorer.Score(chat.Message)

		if !run.checkRecord(row, chat) {
			continue
		}
		run.keep()
		chats = append(chats, chat)
	}

	return chats, run.done(), nil
}

// CleanChats cleans a chats table with default options.
func CleanChats(t *dataprocessing.Table) ([]domain.Chat, *domain.Report, error) {
	return NewCleaner(Options{}).CleanChats(context.Background(), t)
}
