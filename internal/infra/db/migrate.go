package db

import (
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
)

//go:embed seeds/categories.sql
var seedCategoriesSQL string

// Dialect tokens rewritten per driver: @PK for the auto-increment primary
// key, @TZ for timestamps, @ARRAY for string arrays (text[] on PostgreSQL,
// JSON text on SQLite).
var dialectTokens = map[string]*strings.Replacer{
	DriverPostgres: strings.NewReplacer(
		"@PK", "SERIAL PRIMARY KEY",
		"@TZ", "TIMESTAMPTZ",
		"@ARRAY", "TEXT[] NOT NULL DEFAULT '{}'",
	),
	DriverSQLite: strings.NewReplacer(
		"@PK", "INTEGER PRIMARY KEY AUTOINCREMENT",
		"@TZ", "TIMESTAMP",
		"@ARRAY", "TEXT NOT NULL DEFAULT '[]'",
	),
}

// Shared tail of every content table: the bilingual slug pair, the publish
// pair, timestamps, and the page view counter. Timestamps are stamped by the
// repository, never by the database.
const contentColumns = `
    slug_en      TEXT NOT NULL UNIQUE,
    slug_ar      TEXT NOT NULL UNIQUE,
    is_published BOOLEAN NOT NULL DEFAULT FALSE,
    published_at @TZ,
    created_at   @TZ NOT NULL,
    updated_at   @TZ NOT NULL,
    page_views   BIGINT NOT NULL DEFAULT 0`

var tables = []string{
	`CREATE TABLE IF NOT EXISTS categories (
    id      @PK,
    name_en TEXT NOT NULL UNIQUE,
    name_ar TEXT NOT NULL UNIQUE
)`,
	`CREATE TABLE IF NOT EXISTS programs (
    id             @PK,
    title_en       TEXT NOT NULL,
    title_ar       TEXT NOT NULL,
    description_en TEXT NOT NULL DEFAULT '',
    description_ar TEXT NOT NULL DEFAULT '',
    tags_en        @ARRAY,
    tags_ar        @ARRAY,
    keywords_en    @ARRAY,
    keywords_ar    @ARRAY,` + contentColumns + `
)`,
	`CREATE TABLE IF NOT EXISTS projects (
    id             @PK,
    title_en       TEXT NOT NULL,
    title_ar       TEXT NOT NULL,
    description_en TEXT NOT NULL DEFAULT '',
    description_ar TEXT NOT NULL DEFAULT '',
    program_id     INTEGER REFERENCES programs(id),
    category_id    INTEGER REFERENCES categories(id),
    tags_en        @ARRAY,
    tags_ar        @ARRAY,` + contentColumns + `
)`,
	`CREATE TABLE IF NOT EXISTS activities (
    id             @PK,
    title_en       TEXT NOT NULL,
    title_ar       TEXT NOT NULL,
    description_en TEXT NOT NULL DEFAULT '',
    description_ar TEXT NOT NULL DEFAULT '',
    program_id     INTEGER REFERENCES programs(id),
    project_id     INTEGER REFERENCES projects(id),
    tags_en        @ARRAY,
    tags_ar        @ARRAY,` + contentColumns + `
)`,
	`CREATE TABLE IF NOT EXISTS publications (
    id          @PK,
    title_en    TEXT NOT NULL,
    title_ar    TEXT NOT NULL,
    abstract_en TEXT NOT NULL DEFAULT '',
    abstract_ar TEXT NOT NULL DEFAULT '',
    file_url    TEXT NOT NULL,
    category_id INTEGER REFERENCES categories(id),
    downloads   BIGINT NOT NULL DEFAULT 0,
    tags_en     @ARRAY,
    tags_ar     @ARRAY,
    keywords_en @ARRAY,
    keywords_ar @ARRAY,` + contentColumns + `
)`,
	`CREATE TABLE IF NOT EXISTS images (
    id          @PK,
    title_en    TEXT NOT NULL,
    title_ar    TEXT NOT NULL,
    url         TEXT NOT NULL,
    is_public   BOOLEAN NOT NULL DEFAULT FALSE,
    program_id  INTEGER REFERENCES programs(id),
    project_id  INTEGER REFERENCES projects(id),
    activity_id INTEGER REFERENCES activities(id),
    tags_en     @ARRAY,
    tags_ar     @ARRAY,` + contentColumns + `
)`,
	`CREATE TABLE IF NOT EXISTS success_stories (
    id         @PK,
    title_en   TEXT NOT NULL,
    title_ar   TEXT NOT NULL,
    story_en   TEXT NOT NULL DEFAULT '',
    story_ar   TEXT NOT NULL DEFAULT '',
    program_id INTEGER REFERENCES programs(id),
    tags_en    @ARRAY,
    tags_ar    @ARRAY,` + contentColumns + `
)`,
	`CREATE TABLE IF NOT EXISTS faqs (
    id          @PK,
    question_en TEXT NOT NULL,
    question_ar TEXT NOT NULL,
    answer_en   TEXT NOT NULL DEFAULT '',
    answer_ar   TEXT NOT NULL DEFAULT '',
    category_id INTEGER REFERENCES categories(id),
    tags_en     @ARRAY,
    tags_ar     @ARRAY,` + contentColumns + `
)`,
	`CREATE TABLE IF NOT EXISTS jobs (
    id             @PK,
    title_en       TEXT NOT NULL,
    title_ar       TEXT NOT NULL,
    description_en TEXT NOT NULL DEFAULT '',
    description_ar TEXT NOT NULL DEFAULT '',
    location_en    TEXT NOT NULL DEFAULT '',
    location_ar    TEXT NOT NULL DEFAULT '',
    deadline       @TZ,
    tags_en        @ARRAY,
    tags_ar        @ARRAY,` + contentColumns + `
)`,
}

// Index coverage for the hot paths: recency ordering on every list, parent
// scoping, and publish filtering.
var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_programs_published_at ON programs(published_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_published_at ON projects(published_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_program_id ON projects(program_id)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_published_at ON activities(published_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_program_id ON activities(program_id)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_project_id ON activities(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_publications_published_at ON publications(published_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_publications_category_id ON publications(category_id)`,
	`CREATE INDEX IF NOT EXISTS idx_images_program_id ON images(program_id)`,
	`CREATE INDEX IF NOT EXISTS idx_images_project_id ON images(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_success_stories_program_id ON success_stories(program_id)`,
	`CREATE INDEX IF NOT EXISTS idx_faqs_category_id ON faqs(category_id)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_deadline ON jobs(deadline)`,
}

// PostgreSQL-only search and overlap acceleration. Failures are ignored: the
// pg_trgm extension needs superuser rights some deployments lack, and the
// queries stay correct without the indexes.
var postgresIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_programs_title_en_gin ON programs USING gin(title_en gin_trgm_ops)`,
	`CREATE INDEX IF NOT EXISTS idx_programs_title_ar_gin ON programs USING gin(title_ar gin_trgm_ops)`,
	`CREATE INDEX IF NOT EXISTS idx_publications_title_en_gin ON publications USING gin(title_en gin_trgm_ops)`,
	`CREATE INDEX IF NOT EXISTS idx_publications_title_ar_gin ON publications USING gin(title_ar gin_trgm_ops)`,
	`CREATE INDEX IF NOT EXISTS idx_programs_tags_en_gin ON programs USING gin(tags_en)`,
	`CREATE INDEX IF NOT EXISTS idx_programs_tags_ar_gin ON programs USING gin(tags_ar)`,
}

// MigrateUp creates the content tables, indexes, and seed categories for the
// given driver.
func MigrateUp(db *sql.DB, driver string) error {
	tokens, ok := dialectTokens[driver]
	if !ok {
		return fmt.Errorf("MigrateUp: unsupported driver %q", driver)
	}

	for _, table := range tables {
		if _, err := db.Exec(tokens.Replace(table)); err != nil {
			return err
		}
	}

	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	if driver == DriverPostgres {
		_, _ = db.Exec(`CREATE EXTENSION IF NOT EXISTS pg_trgm`)
		for _, idx := range postgresIndexes {
			_, _ = db.Exec(idx)
		}
	}

	if _, err := db.Exec(seedCategoriesSQL); err != nil {
		return err
	}
	return nil
}

// MigrateDown drops the content tables in reverse dependency order.
// Use with caution: this will delete all data in the affected tables.
func MigrateDown(db *sql.DB) error {
	drops := []string{
		`DROP TABLE IF EXISTS jobs`,
		`DROP TABLE IF EXISTS faqs`,
		`DROP TABLE IF EXISTS success_stories`,
		`DROP TABLE IF EXISTS images`,
		`DROP TABLE IF EXISTS publications`,
		`DROP TABLE IF EXISTS activities`,
		`DROP TABLE IF EXISTS projects`,
		`DROP TABLE IF EXISTS programs`,
		`DROP TABLE IF EXISTS categories`,
	}
	for _, stmt := range drops {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
