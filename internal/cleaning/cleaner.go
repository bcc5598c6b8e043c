package cleaning

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tommurray222/candid-hospitality/internal/dataprocessing"
	"github.com/tommurray222/candid-hospitality/internal/infrastructure"
	"github.com/tommurray222/candid-hospitality/pkg/contracts/domain"
)

// Options configures a Cleaner.
type Options struct {
	// TestAccounts are user ids removed along with their matches and chats.
	TestAccounts []int64
	Scorer       SentimentScorer
	Logger       *slog.Logger
}

// Cleaner turns raw tables into typed, cleaned records.
type Cleaner struct {
	testAccounts map[int64]bool
	scorer       SentimentScorer
	logger       *slog.Logger
}

// NewCleaner creates a cleaner. A nil scorer selects VADER.
func NewCleaner(opts Options) *Cleaner {
	accounts := make(map[int64]bool, len(opts.TestAccounts))
	for _, id := range opts.TestAccounts {
		accounts[id] = true
	}
	if opts.Scorer == nil {
		opts.Scorer = NewVaderScorer()
	}
	return &Cleaner{
		testAccounts: accounts,
		scorer:       opts.Scorer,
		logger:       infrastructure.WithComponent(opts.Logger, "cleaning"),
	}
}

// Clean cleans all three tables. Matches belonging to test accounts and chats
// belonging to those matches are dropped as well. A missing required column is
// the only error; bad values never abort the run.
func (c *Cleaner) Clean(ctx context.Context, raw *dataprocessing.RawDataset) (*domain.CleanDataset, *domain.Report, error) {
	report := domain.NewReport()

	users, r, err := c.CleanUsers(ctx, raw.Users)
	if err != nil {
		return nil, nil, fmt.Errorf("clean users: %w", err)
	}
	report.Merge(r)

	matches, r, err := c.CleanMatches(ctx, raw.Matches)
	if err != nil {
		return nil, nil, fmt.Errorf("clean matches: %w", err)
	}
	report.Merge(r)

	chats, r, err := c.CleanChats(ctx, raw.Chats)
	if err != nil {
		return nil, nil, fmt.Errorf("clean chats: %w", err)
	}
	report.Merge(r)

	if len(c.testAccounts) > 0 {
		matches, chats = c.removeTestActivity(ctx, report, matches, chats)
	}

	return &domain.CleanDataset{Users: users, Matches: matches, Chats: chats}, report, nil
}

// removeTestActivity drops matches of test accounts and the chats on them.
// Issues raised here carry the record id in place of a row number.
func (c *Cleaner) removeTestActivity(ctx context.Context, report *domain.Report, matches []domain.Match, chats []domain.Chat) ([]domain.Match, []domain.Chat) {
	testMatches := make(map[int64]bool)
	keptMatches := matches[:0:0]
	for _, m := range matches {
		if c.testAccounts[m.UserID] {
			testMatches[m.MatchID] = true
			report.Add(domain.Issue{
				Table: domain.TableMatches, Row: int(m.MatchID), Column: dataprocessing.ColUserID,
				Value: fmt.Sprint(m.UserID), Action: domain.ActionDropped, Reason: "test account",
			})
			counts := report.Table(domain.TableMatches)
			counts.Kept--
			counts.Dropped++
			continue
		}
		keptMatches = append(keptMatches, m)
	}

	keptChats := chats[:0:0]
	for _, ch := range chats {
		if testMatches[ch.MatchID] {
			counts := report.Table(domain.TableChats)
			counts.Kept--
			counts.Dropped++
			continue
		}
		keptChats = append(keptChats, ch)
	}

	if dropped := len(chats) - len(keptChats); len(testMatches) > 0 {
		c.logger.InfoContext(ctx, "Removed test account activity",
			slog.Int("matches", len(testMatches)),
			slog.Int("chats", dropped))
	}

	return keptMatches, keptChats
}
