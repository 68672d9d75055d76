package cards

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Schema creates the table read by LoadPostgres.
const Schema = `
CREATE TABLE IF NOT EXISTS dominion_cards (
	name           TEXT PRIMARY KEY,
	cost           INTEGER NOT NULL,
	types          TEXT[] NOT NULL,
	treasure       INTEGER NOT NULL DEFAULT 0,
	victory_points INTEGER NOT NULL DEFAULT 0,
	plus_cards     INTEGER NOT NULL DEFAULT 0,
	plus_actions   INTEGER NOT NULL DEFAULT 0,
	plus_buys      INTEGER NOT NULL DEFAULT 0,
	plus_coins     INTEGER NOT NULL DEFAULT 0,
	description    TEXT NOT NULL DEFAULT ''
)`

const selectCards = `
SELECT name, cost, types, treasure, victory_points,
       plus_cards, plus_actions, plus_buys, plus_coins, description
FROM dominion_cards
ORDER BY name`

const upsertCard = `
INSERT INTO dominion_cards (
	name, cost, types, treasure, victory_points,
	plus_cards, plus_actions, plus_buys, plus_coins, description
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (name) DO UPDATE SET
	cost = EXCLUDED.cost,
	types = EXCLUDED.types,
	treasure = EXCLUDED.treasure,
	victory_points = EXCLUDED.victory_points,
	plus_cards = EXCLUDED.plus_cards,
	plus_actions = EXCLUDED.plus_actions,
	plus_buys = EXCLUDED.plus_buys,
	plus_coins = EXCLUDED.plus_coins,
	description = EXCLUDED.description`

// Querier is the read side of a pgx pool, connection or transaction.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// TxStarter is satisfied by *pgxpool.Pool and *pgx.Conn.
type TxStarter interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// LoadPostgres reads a catalog from the dominion_cards table.
func LoadPostgres(ctx context.Context, q Querier) (*Catalog, error) {
	rows, err := q.Query(ctx, selectCards)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	infos, err := pgx.CollectRows(rows, scanInfo)
	if err != nil {
		return nil, fmt.Errorf("scan cards: %w", err)
	}
	return NewCatalog(infos)
}

func scanInfo(row pgx.CollectableRow) (Info, error) {
	var (
		info  Info
		types []string
	)
	err := row.Scan(
		&info.Name,
		&info.Cost,
		&types,
		&info.Treasure,
		&info.VictoryPoints,
		&info.Resources.Cards,
		&info.Resources.Actions,
		&info.Resources.Buys,
		&info.Resources.Coins,
		&info.Description,
	)
	if err != nil {
		return Info{}, err
	}
	info.Types = make([]Type, len(types))
	for i, t := range types {
		info.Types[i] = Type(t)
	}
	return info, nil
}

// StorePostgres creates the table if needed and upserts every catalog entry
// in one transaction. It returns the number of rows written.
func StorePostgres(ctx context.Context, db TxStarter, c *Catalog) (int, error) {
	if _, err := db.Exec(ctx, Schema); err != nil {
		return 0, fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	written := 0
	for _, info := range c.Infos() {
		if _, err := tx.Exec(ctx, upsertCard, storeArgs(info)...); err != nil {
			return 0, fmt.Errorf("upsert %s: %w", info.Name, err)
		}
		written++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return written, nil
}

func storeArgs(info Info) []any {
	types := make([]string, len(info.Types))
	for i, t := range info.Types {
		types[i] = string(t)
	}
	return []any{
		info.Name,
		info.Cost,
		types,
		info.Treasure,
		info.VictoryPoints,
		info.Resources.Cards,
		info.Resources.Actions,
		info.Resources.Buys,
		info.Resources.Coins,
		info.Description,
	}
}
