package preparation

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/tommurray222/candid-hospitality/internal/dataprocessing"
	apperrors "github.com/tommurray222/candid-hospitality/internal/errors"
	"github.com/tommurray222/candid-hospitality/internal/infrastructure"
	"github.com/tommurray222/candid-hospitality/pkg/contracts/domain"
)

// Options configures a Preparer.
type Options struct {
	// Reference is the date ages are computed on. Zero means today (UTC).
	Reference time.Time
	// Unit is the response time unit: s, m or h. Empty means minutes.
	Unit string
	// DropIncomplete excludes matches without an overall score.
	DropIncomplete bool
	Logger         *slog.Logger
}

// Preparer joins cleaned tables into analysis-ready records.
type Preparer struct {
	reference      time.Time
	unit           string
	dropIncomplete bool
	logger         *slog.Logger
}

// NewPreparer validates opts and creates a Preparer.
func NewPreparer(opts Options) (*Preparer, error) {
	if opts.Unit == "" {
		opts.Unit = UnitMinutes
	}
	if _, err := UnitDivisor(opts.Unit); err != nil {
		return nil, err
	}
	if opts.Reference.IsZero() {
		y, m, d := time.Now().UTC().Date()
		opts.Reference = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	return &Preparer{
		reference:      opts.Reference,
		unit:           opts.Unit,
		dropIncomplete: opts.DropIncomplete,
		logger:         infrastructure.WithComponent(opts.Logger, "preparation"),
	}, nil
}

// Prepare derives ages, computes chat statistics and joins every match with
// its statistics and its user. Matches whose user is unknown are excluded
// with an integrity issue; matches without an overall score are excluded
// when DropIncomplete is set. The input dataset is not modified.
func (p *Preparer) Prepare(ctx context.Context, clean *domain.CleanDataset) (*domain.PreparedDataset, *domain.Report, error) {
	report := domain.NewReport()

	users := p.prepareUsers(ctx, report, clean.Users)
	userIdx := domain.UserIndex(users)

	matchIDs := make(map[int64]bool, len(clean.Matches))
	for _, m := range clean.Matches {
		matchIDs[m.MatchID] = true
	}
	chats := p.knownChats(ctx, report, clean.Chats, matchIDs)

	stats, err := ChatStats(chats, p.unit)
	if err != nil {
		return nil, nil, fmt.Errorf("chat stats: %w", err)
	}
	statsIdx := make(map[int64]domain.ChatStats, len(stats))
	for _, s := range stats {
		statsIdx[s.MatchID] = s
	}

	matches := make([]domain.Match, len(clean.Matches))
	copy(matches, clean.Matches)
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].MatchID < matches[j].MatchID })

	counts := report.Table(domain.TableMatches)
	counts.Read = len(matches)
	kept := make([]domain.Match, 0, len(matches))
	records := make([]domain.CandidateRecord, 0, len(matches))

	for _, m := range matches {
		ui, ok := userIdx[m.UserID]
		if !ok {
			p.exclude(ctx, report, m, dataprocessing.ColUserID, strconv.FormatInt(m.UserID, 10), "user not found")
			continue
		}
		if p.dropIncomplete && domain.IsMissing(m.Scores.Overall) {
			p.exclude(ctx, report, m, "score_overall", "", "missing overall score")
			continue
		}

		s, ok := statsIdx[m.MatchID]
		if !ok {
			s = domain.EmptyChatStats(m.MatchID)
		}
		kept = append(kept, m)
		records = append(records, domain.NewCandidateRecord(m, s, users[ui]))
	}
	counts.Kept = len(kept)

	p.logger.InfoContext(ctx, "Preparation complete",
		slog.Int("users", len(users)),
		slog.Int("matches", len(kept)),
		slog.Int("excluded", counts.Dropped),
		slog.Int("chat_stats", len(stats)),
		slog.String("reference_date", p.reference.Format(domain.DateLayout)))

	return &domain.PreparedDataset{
		Users:      users,
		Matches:    kept,
		ChatStats:  stats,
		Candidates: records,
	}, report, nil
}

// prepareUsers copies users and sets their age on the reference date.
// Implausible ages become Missing and are flagged.
func (p *Preparer) prepareUsers(ctx context.Context, report *domain.Report, in []domain.User) []domain.User {
	counts := report.Table(domain.TableUsers)
	counts.Read = len(in)

	users := make([]domain.User, len(in))
	for i, u := range in {
		u.Age = AgeAt(u.DOB, p.reference)
		if u.Age != domain.Missing && !validAge(u.Age) {
			issue := domain.Issue{
				Table:  domain.TableUsers,
				Row:    int(u.UserID),
				Column: dataprocessing.ColAge,
				Value:  strconv.Itoa(u.Age),
				Action: domain.ActionFlagged,
				Reason: fmt.Sprintf("age outside [%d, %d]", MinAge, MaxAge),
			}
			report.Add(issue)
			counts.Flagged++
			p.logger.WarnContext(ctx, "Data quality issue",
				slog.String("table", issue.Table),
				slog.Int("user_id", issue.Row),
				slog.String("column", issue.Column),
				slog.String("value", issue.Value),
				slog.String("reason", issue.Reason))
			u.Age = domain.Missing
		}
		users[i] = u
	}
	counts.Kept = len(users)
	return users
}

// knownChats keeps chats whose match exists. One integrity issue is
// recorded per unknown match id.
func (p *Preparer) knownChats(ctx context.Context, report *domain.Report, chats []domain.Chat, matchIDs map[int64]bool) []domain.Chat {
	counts := report.Table(domain.TableChats)
	counts.Read = len(chats)

	orphans := make(map[int64]int)
	out := make([]domain.Chat, 0, len(chats))
	for _, c := range chats {
		if !matchIDs[c.MatchID] {
			orphans[c.MatchID]++
			continue
		}
		out = append(out, c)
	}

	ids := make([]int64, 0, len(orphans))
	for id := range orphans {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		report.Add(domain.Issue{
			Table:  domain.TableChats,
			Row:    int(id),
			Column: dataprocessing.ColMatchID,
			Value:  strconv.FormatInt(id, 10),
			Action: domain.ActionExcluded,
			Reason: fmt.Sprintf("%d chats reference an unknown match", orphans[id]),
		})
		p.integrityWarning(ctx, apperrors.NewIntegrityError(fmt.Sprintf("match %d not found", id)).
			WithContext("table", domain.TableChats).
			WithContext("chats", orphans[id]))
	}

	counts.Kept = len(out)
	counts.Dropped = len(chats) - len(out)
	return out
}

// exclude records a match left out of the prepared output.
func (p *Preparer) exclude(ctx context.Context, report *domain.Report, m domain.Match, column, value, reason string) {
	report.Add(domain.Issue{
		Table:  domain.TableMatches,
		Row:    int(m.MatchID),
		Column: column,
		Value:  value,
		Action: domain.ActionExcluded,
		Reason: reason,
	})
	report.Table(domain.TableMatches).Dropped++

	if column == dataprocessing.ColUserID {
		p.integrityWarning(ctx, apperrors.NewIntegrityError(fmt.Sprintf("user %d not found", m.UserID)).
			WithContext("table", domain.TableMatches).
			WithContext("match_id", m.MatchID))
		return
	}
	p.logger.WarnContext(ctx, "Incomplete match excluded",
		slog.Int64("match_id", m.MatchID),
		slog.Int64("user_id", m.UserID),
		slog.String("reason", reason))
}

// integrityWarning logs a broken reference; the row is already excluded.
func (p *Preparer) integrityWarning(ctx context.Context, err *apperrors.AppError) {
	attrs := []any{
		slog.String("error_type", string(err.Type)),
		slog.String("error", err.Error()),
	}
	keys := make([]string, 0, len(err.Context))
	for k := range err.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, err.Context[k]))
	}
	p.logger.WarnContext(ctx, "Integrity warning", attrs...)
}
