package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/contact-finder/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	cfg.MaxConns = 10
	cfg.MinConns = 2
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id         UUID PRIMARY KEY,
	query      TEXT NOT NULL,
	org_type   TEXT NOT NULL,
	location   TEXT NOT NULL,
	fetch_cap  INTEGER NOT NULL DEFAULT 0,
	stats      JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS organizations (
	id             UUID PRIMARY KEY,
	run_id         UUID NOT NULL REFERENCES runs(id),
	name           TEXT NOT NULL,
	org_type       TEXT NOT NULL,
	phone          TEXT NOT NULL DEFAULT '',
	email          TEXT NOT NULL DEFAULT '',
	address        TEXT NOT NULL DEFAULT '',
	website_url    TEXT NOT NULL DEFAULT '',
	website_status TEXT NOT NULL DEFAULT '',
	tier           TEXT NOT NULL DEFAULT '',
	contact_status TEXT NOT NULL DEFAULT '',
	category       TEXT NOT NULL DEFAULT '',
	size           TEXT NOT NULL DEFAULT '',
	notes          TEXT NOT NULL DEFAULT '',
	social_media   JSONB,
	source         TEXT NOT NULL DEFAULT '',
	position       INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_organizations_run_id ON organizations(run_id);
CREATE INDEX IF NOT EXISTS idx_organizations_tier ON organizations(tier);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) CreateRun(ctx context.Context, run *model.Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	statsJSON, err := json.Marshal(run.Stats)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal stats")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO runs (id, query, org_type, location, fetch_cap, stats, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		run.ID, run.Query, string(run.Type), run.Location, run.Limit, statsJSON, run.CreatedAt,
	)
	return eris.Wrap(err, "postgres: insert run")
}

func (s *PostgresStore) GetRun(ctx context.Context, runID string) (*model.Run, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, query, org_type, location, fetch_cap, stats, created_at FROM runs WHERE id = $1`, runID)
	run, err := scanRun(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get run %s", runID)
	}
	return run, nil
}

func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, query, org_type, location, fetch_cap, stats, created_at FROM runs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list runs")
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan run")
		}
		runs = append(runs, *run)
	}
	return runs, eris.Wrap(rows.Err(), "postgres: iterate runs")
}

func (s *PostgresStore) SaveOrganizations(ctx context.Context, runID string, orgs []model.Organization) error {
	batch := &pgx.Batch{}
	for i, o := range orgs {
		social, err := marshalSocial(o.SocialMedia)
		if err != nil {
			return err
		}
		var socialArg any
		if social.Valid {
			socialArg = social.String
		}
		batch.Queue(
			`INSERT INTO organizations (id, run_id, name, org_type, phone, email, address, website_url,
				website_status, tier, contact_status, category, size, notes, social_media, source, position)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
			uuid.New().String(), runID, o.Name, string(o.Type), o.Phone, o.Email, o.Address,
			o.WebsiteURL, o.WebsiteStatus, string(o.Tier), string(o.ContactStatus),
			o.Category, o.Size, o.Notes, socialArg, o.Source, i,
		)
	}
	return eris.Wrap(s.pool.SendBatch(ctx, batch).Close(), "postgres: insert organizations")
}

func (s *PostgresStore) GetOrganizations(ctx context.Context, runID string) ([]model.Organization, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT name, org_type, phone, email, address, website_url, website_status,
			tier, contact_status, category, size, notes, social_media, source
		 FROM organizations WHERE run_id = $1 ORDER BY position`, runID)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get organizations for run %s", runID)
	}
	defer rows.Close()

	var orgs []model.Organization
	for rows.Next() {
		var o model.Organization
		var orgType, tier, status string
		var social sql.NullString
		err := rows.Scan(&o.Name, &orgType, &o.Phone, &o.Email, &o.Address, &o.WebsiteURL,
			&o.WebsiteStatus, &tier, &status, &o.Category, &o.Size, &o.Notes, &social, &o.Source)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan organization")
		}
		o.Type = model.OrgType(orgType)
		o.Tier = model.Tier(tier)
		o.ContactStatus = model.ContactStatus(status)
		if o.SocialMedia, err = unmarshalSocial(social); err != nil {
			return nil, err
		}
		orgs = append(orgs, o)
	}
	return orgs, eris.Wrap(rows.Err(), "postgres: iterate organizations")
}
