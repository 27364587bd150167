package repo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cocosip/go-huffman-codec/codec"
	_ "github.com/cocosip/go-huffman-codec/codec/packed"
	_ "github.com/cocosip/go-huffman-codec/codec/text"
	"github.com/cocosip/go-huffman-codec/internal/model"
)

// tables are stored serialized with a registered codec, whose name is kept
// next to the bytes so rows stay readable if the default format changes
type tableRepoPostgres struct {
	pool  *pgxpool.Pool
	codec codec.Codec
}

func NewTableRepoPostgres(pool *pgxpool.Pool, c codec.Codec) TableRepo {
	return &tableRepoPostgres{pool: pool, codec: c}
}

func (r *tableRepoPostgres) Save(ctx context.Context, t *model.Table) error {
	var buf bytes.Buffer
	if err := r.codec.WriteTable(&buf, t.Codes); err != nil {
		return fmt.Errorf("serialize table %s: %w", t.ID, err)
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO code_tables (id, format, codes, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE
SET format = EXCLUDED.format, codes = EXCLUDED.codes, created_at = EXCLUDED.created_at`,
		t.ID, r.codec.Name(), buf.Bytes(), t.CreatedAt)
	if err != nil {
		return fmt.Errorf("save table %s: %w", t.ID, err)
	}
	return nil
}

func (r *tableRepoPostgres) FindByID(ctx context.Context, id string) (*model.Table, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, format, codes, created_at FROM code_tables WHERE id = $1`, id)
	t, err := scanTable(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return t, err
}

func (r *tableRepoPostgres) List(ctx context.Context) ([]*model.Table, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, format, codes, created_at FROM code_tables ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var out []*model.Table
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return out, nil
}

func scanTable(row pgx.Row) (*model.Table, error) {
	var (
		id, format string
		data       []byte
		createdAt  time.Time
	)
	if err := row.Scan(&id, &format, &data, &createdAt); err != nil {
		return nil, err
	}
	c, err := codec.Get(format)
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", id, err)
	}
	codes, err := c.ReadTable(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", id, err)
	}
	return &model.Table{ID: id, Codes: codes, CreatedAt: createdAt}, nil
}
