package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/abrezinsky/cubeplan/internal/models"
)

// Repository provides data access methods
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new Repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite3", withForeignKeys(dbPath))
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}

	// SQLite works best with a single connection; :memory: needs it.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	repo := &Repository{db: db}

	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return repo, nil
}

// DB returns the underlying database connection (for transactions)
func (r *Repository) DB() *sql.DB {
	return r.db
}

// Close closes the database connection
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// withForeignKeys makes every pooled connection enforce foreign keys, not
// only the one the PRAGMA below runs on.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

func (r *Repository) clock() time.Time {
	if r.now == nil {
		return time.Now().UTC()
	}
	return r.now()
}

// Ping checks if the database connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// migrate runs database migrations
func (r *Repository) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS competitions (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			total_competitors INTEGER NOT NULL DEFAULT 1,
			main_event TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS competition_days (
			competition_id TEXT NOT NULL,
			day_index INTEGER NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			PRIMARY KEY (competition_id, day_index),
			FOREIGN KEY (competition_id) REFERENCES competitions(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS category_settings (
			competition_id TEXT NOT NULL,
			category TEXT NOT NULL,
			display_order INTEGER NOT NULL,
			rounds INTEGER NOT NULL DEFAULT 1,
			cutoff TEXT NOT NULL DEFAULT 'none',
			final_size INTEGER NOT NULL DEFAULT 8,
			PRIMARY KEY (competition_id, category),
			FOREIGN KEY (competition_id) REFERENCES competitions(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS advancement (
			competition_id TEXT NOT NULL,
			category TEXT NOT NULL,
			round_index INTEGER NOT NULL,
			percent INTEGER NOT NULL,
			PRIMARY KEY (competition_id, category, round_index),
			FOREIGN KEY (competition_id, category) REFERENCES category_settings(competition_id, category) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_category_settings_order ON category_settings(competition_id, display_order)`,
	}

	for _, migration := range migrations {
		if _, err := r.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}

// ==================== Competition Methods ====================

// CreateCompetition inserts a competition with its days. Category settings
// are stored separately.
func (r *Repository) CreateCompetition(ctx context.Context, c *models.Competition) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO competitions (id, name, total_competitors, main_event, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, c.ID, c.Name, c.Config.TotalCompetitors, c.Config.MainEvent, c.CreatedAt, c.UpdatedAt); err != nil {
		return err
	}
	if err := insertDays(ctx, tx, c.ID, c.Config.Days); err != nil {
		return err
	}
	return tx.Commit()
}

// GetCompetition loads a competition with its days and category settings
func (r *Repository) GetCompetition(ctx context.Context, id string) (*models.Competition, error) {
	c := &models.Competition{ID: id}
	err := r.db.QueryRowContext(ctx, `
		SELECT name, total_competitors, main_event, created_at, updated_at
		FROM competitions WHERE id = ?
	`, id).Scan(&c.Name, &c.Config.TotalCompetitors, &c.Config.MainEvent, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if c.Config.Days, err = r.listDays(ctx, id); err != nil {
		return nil, err
	}

	rows, err := r.ListCategorySettings(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Settings = make(map[string]models.CategorySettings, len(rows))
	for _, row := range rows {
		c.Config.Categories = append(c.Config.Categories, row.Category)
		c.Settings[row.Category] = row.Settings
	}
	return c, nil
}

// ListCompetitions returns all competitions, most recently updated first
func (r *Repository) ListCompetitions(ctx context.Context) ([]models.CompetitionSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, total_competitors, main_event, updated_at
		FROM competitions
		ORDER BY updated_at DESC, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	competitions := []models.CompetitionSummary{}
	for rows.Next() {
		var s models.CompetitionSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.TotalCompetitors, &s.MainEvent, &s.UpdatedAt); err != nil {
			return nil, err
		}
		competitions = append(competitions, s)
	}
	return competitions, rows.Err()
}

// UpdateCompetition updates the scalar fields of a competition
func (r *Repository) UpdateCompetition(ctx context.Context, id, name string, totalCompetitors int, mainEvent string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE competitions SET name = ?, total_competitors = ?, main_event = ?, updated_at = ?
		WHERE id = ?
	`, name, totalCompetitors, mainEvent, r.clock(), id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// ReplaceDays replaces the day windows of a competition
func (r *Repository) ReplaceDays(ctx context.Context, id string, days []models.DayWindow) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := touch(ctx, tx, id, r.clock()); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM competition_days WHERE competition_id = ?`, id); err != nil {
		return err
	}
	if err := insertDays(ctx, tx, id, days); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteCompetition deletes a competition; days and settings cascade
func (r *Repository) DeleteCompetition(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM competitions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (r *Repository) listDays(ctx context.Context, id string) ([]models.DayWindow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT start_time, end_time FROM competition_days
		WHERE competition_id = ? ORDER BY day_index
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []models.DayWindow
	for rows.Next() {
		var d models.DayWindow
		if err := rows.Scan(&d.Start, &d.End); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// ==================== Category Settings Methods ====================

// ListCategorySettings returns the selected categories of a competition in
// display order, each with its advancement percentages.
func (r *Repository) ListCategorySettings(ctx context.Context, competitionID string) ([]CategoryRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT category, display_order, rounds, cutoff, final_size
		FROM category_settings
		WHERE competition_id = ?
		ORDER BY display_order, category
	`, competitionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CategoryRow
	index := make(map[string]int)
	for rows.Next() {
		var row CategoryRow
		if err := rows.Scan(&row.Category, &row.DisplayOrder, &row.Settings.Rounds, &row.Settings.Cutoff, &row.Settings.FinalSize); err != nil {
			return nil, err
		}
		index[row.Category] = len(out)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	adv, err := r.db.QueryContext(ctx, `
		SELECT category, round_index, percent FROM advancement
		WHERE competition_id = ?
		ORDER BY category, round_index
	`, competitionID)
	if err != nil {
		return nil, err
	}
	defer adv.Close()

	for adv.Next() {
		var category string
		var roundIndex, percent int
		if err := adv.Scan(&category, &roundIndex, &percent); err != nil {
			return nil, err
		}
		i, ok := index[category]
		if !ok || roundIndex < 1 {
			continue
		}
		s := &out[i].Settings
		for len(s.Advance) < roundIndex {
			s.Advance = append(s.Advance, 0)
		}
		s.Advance[roundIndex-1] = percent
	}
	return out, adv.Err()
}

// UpsertCategorySettings stores the settings of one category and replaces
// its advancement rows in a single transaction.
func (r *Repository) UpsertCategorySettings(ctx context.Context, competitionID string, row CategoryRow) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := touch(ctx, tx, competitionID, r.clock()); err != nil {
		return err
	}

	s := row.Settings
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO category_settings (competition_id, category, display_order, rounds, cutoff, final_size)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(competition_id, category) DO UPDATE SET
			display_order = excluded.display_order,
			rounds = excluded.rounds,
			cutoff = excluded.cutoff,
			final_size = excluded.final_size
	`, competitionID, row.Category, row.DisplayOrder, s.Rounds, s.Cutoff, s.FinalSize); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM advancement WHERE competition_id = ? AND category = ?
	`, competitionID, row.Category); err != nil {
		return err
	}
	for i, pct := range s.Advance {
		if pct == 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO advancement (competition_id, category, round_index, percent) VALUES (?, ?, ?, ?)
		`, competitionID, row.Category, i+1, pct); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DeleteCategorySettings removes one category from a competition
func (r *Repository) DeleteCategorySettings(ctx context.Context, competitionID, category string) error {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM category_settings WHERE competition_id = ? AND category = ?
	`, competitionID, category)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// SetRoundCount overwrites the stored round count of one category
func (r *Repository) SetRoundCount(ctx context.Context, competitionID, category string, rounds int) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE category_settings SET rounds = ? WHERE competition_id = ? AND category = ?
	`, rounds, competitionID, category)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// ClearCategorySettings deselects every category of a competition
func (r *Repository) ClearCategorySettings(ctx context.Context, competitionID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM category_settings WHERE competition_id = ?`, competitionID)
	return err
}

// ==================== Settings Methods ====================

// GetSetting retrieves a setting value
func (r *Repository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	return value, err
}

// SetSetting updates a setting value
func (r *Repository) SetSetting(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	return err
}

// ==================== Helpers ====================

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertDays(ctx context.Context, tx execer, id string, days []models.DayWindow) error {
	for i, d := range days {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO competition_days (competition_id, day_index, start_time, end_time) VALUES (?, ?, ?, ?)
		`, id, i+1, d.Start, d.End); err != nil {
			return err
		}
	}
	return nil
}

// touch bumps updated_at and reports ErrNotFound for unknown competitions.
func touch(ctx context.Context, tx execer, id string, now time.Time) error {
	result, err := tx.ExecContext(ctx, `UPDATE competitions SET updated_at = ? WHERE id = ?`, now, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
