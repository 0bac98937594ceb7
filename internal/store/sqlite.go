package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/contact-finder/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	query      TEXT NOT NULL,
	org_type   TEXT NOT NULL,
	location   TEXT NOT NULL,
	fetch_cap  INTEGER NOT NULL DEFAULT 0,
	stats      TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS organizations (
	id             TEXT PRIMARY KEY,
	run_id         TEXT NOT NULL REFERENCES runs(id),
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
	social_media   TEXT,
	source         TEXT NOT NULL DEFAULT '',
	position       INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_organizations_run_id ON organizations(run_id);
CREATE INDEX IF NOT EXISTS idx_organizations_tier ON organizations(tier);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateRun(ctx context.Context, run *model.Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	statsJSON, err := json.Marshal(run.Stats)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal stats")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, query, org_type, location, fetch_cap, stats, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Query, string(run.Type), run.Location, run.Limit, string(statsJSON), run.CreatedAt,
	)
	return eris.Wrap(err, "sqlite: insert run")
}

func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*model.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, query, org_type, location, fetch_cap, stats, created_at FROM runs WHERE id = ?`, runID)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get run %s", runID)
	}
	return run, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, org_type, location, fetch_cap, stats, created_at FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		runs = append(runs, *run)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: iterate runs")
}

func (s *SQLiteStore) SaveOrganizations(ctx context.Context, runID string, orgs []model.Organization) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO organizations (id, run_id, name, org_type, phone, email, address, website_url,
			website_status, tier, contact_status, category, size, notes, social_media, source, position)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare insert organization")
	}
	defer stmt.Close()

	for i, o := range orgs {
		social, err := marshalSocial(o.SocialMedia)
		if err != nil {
			return err
		}
		_, err = stmt.ExecContext(ctx,
			uuid.New().String(), runID, o.Name, string(o.Type), o.Phone, o.Email, o.Address,
			o.WebsiteURL, o.WebsiteStatus, string(o.Tier), string(o.ContactStatus),
			o.Category, o.Size, o.Notes, social, o.Source, i,
		)
		if err != nil {
			return eris.Wrapf(err, "sqlite: insert organization %q", o.Name)
		}
	}
	return eris.Wrap(tx.Commit(), "sqlite: commit organizations")
}

func (s *SQLiteStore) GetOrganizations(ctx context.Context, runID string) ([]model.Organization, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, org_type, phone, email, address, website_url, website_status,
			tier, contact_status, category, size, notes, social_media, source
		 FROM organizations WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get organizations for run %s", runID)
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
			return nil, eris.Wrap(err, "sqlite: scan organization")
		}
		o.Type = model.OrgType(orgType)
		o.Tier = model.Tier(tier)
		o.ContactStatus = model.ContactStatus(status)
		if o.SocialMedia, err = unmarshalSocial(social); err != nil {
			return nil, err
		}
		orgs = append(orgs, o)
	}
	return orgs, eris.Wrap(rows.Err(), "sqlite: iterate organizations")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*model.Run, error) {
	var run model.Run
	var orgType, statsJSON string
	if err := row.Scan(&run.ID, &run.Query, &orgType, &run.Location, &run.Limit, &statsJSON, &run.CreatedAt); err != nil {
		return nil, err
	}
	run.Type = model.OrgType(orgType)
	if err := json.Unmarshal([]byte(statsJSON), &run.Stats); err != nil {
		return nil, eris.Wrap(err, "store: unmarshal stats")
	}
	return &run, nil
}

func marshalSocial(social map[string]string) (sql.NullString, error) {
	if len(social) == 0 {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(social)
	if err != nil {
		return sql.NullString{}, eris.Wrap(err, "store: marshal social media")
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func unmarshalSocial(social sql.NullString) (map[string]string, error) {
	if !social.Valid || social.String == "" {
		return nil, nil
	}
	out := make(map[string]string)
	if err := json.Unmarshal([]byte(social.String), &out); err != nil {
		return nil, eris.Wrap(err, "store: unmarshal social media")
	}
	return out, nil
}
