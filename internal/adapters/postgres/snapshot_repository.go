package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cryptoquote/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type SnapshotRepository struct {
	pool *pgxpool.Pool
}

type priceRow struct {
	Asset string `json:"asset"`
	Price string `json:"price"`
}

// Record writes one successful table with all of its prices in a single transaction.
func (r *SnapshotRepository) Record(ctx context.Context, fiat string, fetchedAt time.Time, table domain.RateTable) error {
	prices := table.Prices()
	if len(prices) == 0 {
		return nil
	}

	rows := make([]priceRow, 0, len(prices))
	for asset, price := range prices {
		rows = append(rows, priceRow{Asset: string(asset), Price: price.String()})
	}
	payloadJSON, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot prices: %w", err)
	}

	const insertSnapshot = `
		insert into rate_snapshots(id, fiat, fetched_at)
		values ($1, $2, $3);
	`
	const insertPrices = `
		insert into rate_snapshot_prices(snapshot_id, asset, price)
		select $1, r.asset, r.price::numeric
		from json_to_recordset($2::json) as r(asset text, price text);
	`

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	id := uuid.New()
	if _, err = tx.Exec(ctx, insertSnapshot, id, fiat, fetchedAt.UTC()); err != nil {
		return fmt.Errorf("failed to insert snapshot for %q: %w", fiat, err)
	}
	if _, err = tx.Exec(ctx, insertPrices, id, json.RawMessage(payloadJSON)); err != nil {
		return fmt.Errorf("failed to insert snapshot prices for %q: %w", fiat, err)
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Recent returns up to limit archived snapshots for fiat, newest first.
func (r *SnapshotRepository) Recent(ctx context.Context, fiat string, limit int) ([]domain.ArchivedSnapshot, error) {
	const q = `
		with recent as (
		  select id, fiat, fetched_at
		  from rate_snapshots
		  where fiat = $1
		  order by fetched_at desc
		  limit $2
		)
		select r.id, r.fiat, r.fetched_at, p.asset, p.price
		from recent r join rate_snapshot_prices p on p.snapshot_id = r.id
		order by r.fetched_at desc, r.id, p.asset;
	`

	rows, err := r.pool.Query(ctx, q, fiat, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots for %q: %w", fiat, err)
	}
	defer rows.Close()

	var (
		out     []domain.ArchivedSnapshot
		current *domain.ArchivedSnapshot
		prices  map[domain.AssetSymbol]decimal.Decimal
	)
	flush := func() {
		if current != nil {
			current.Table = domain.NewRateTable(prices)
			out = append(out, *current)
		}
	}
	for rows.Next() {
		var (
			id        uuid.UUID
			rowFiat   string
			fetchedAt time.Time
			asset     string
			price     decimal.Decimal
		)
		if err = rows.Scan(&id, &rowFiat, &fetchedAt, &asset, &price); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		if current == nil || current.ID != id {
			flush()
			current = &domain.ArchivedSnapshot{ID: id, Fiat: rowFiat, FetchedAt: fetchedAt}
			prices = make(map[domain.AssetSymbol]decimal.Decimal)
		}
		prices[domain.AssetSymbol(asset)] = price
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot rows: %w", err)
	}
	flush()
	return out, nil
}

func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}
