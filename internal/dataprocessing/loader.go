package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/tommurray222/candid-hospitality/pkg/contracts/domain"
)

// Inputs names the three source files of a run.
type Inputs struct {
	Users   string
	Matches string
	Chats   string
}

// RawDataset holds the three source tables before cleaning.
type RawDataset struct {
	Users   *Table
	Matches *Table
	Chats   *Table
}

// LoadRaw reads the three input tables in parallel. Each table is renamed to
// its domain table name so errors and reports refer to users, matches, chats.
func LoadRaw(ctx context.Context, in Inputs) (*RawDataset, error) {
	raw := &RawDataset{}
	g, gctx := errgroup.WithContext(ctx)

	load := func(dst **Table, path, name string) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t, err := ReadTable(path)
			if err != nil {
				return fmt.Errorf("load %s: %w", name, err)
			}
			t.Name = name
			*dst = t

			slog.DebugContext(gctx, "Table loaded",
				slog.String("table", name),
				slog.String("file", path),
				slog.Int("rows", t.Len()),
				slog.Int("columns", len(t.Header)))
			return nil
		})
	}

	load(&raw.Users, in.Users, domain.TableUsers)
	load(&raw.Matches, in.Matches, domain.TableMatches)
	load(&raw.Chats, in.Chats, domain.TableChats)

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return raw, nil
}
