package ledger

// Current schema version. Opening an older file applies the migrations
// in migrate.go up to this version.
const schemaVersion = 2

const metaSQL = `
CREATE TABLE IF NOT EXISTS _meta (
    key   TEXT PRIMARY KEY,
    value TEXT
);
`

const minesSQL = `
CREATE TABLE IF NOT EXISTS mines (
    id   INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS sections (
    id      INTEGER PRIMARY KEY AUTOINCREMENT,
    mine_id INTEGER NOT NULL REFERENCES mines(id),
    name    TEXT NOT NULL
);
`

const investSQL = `
CREATE TABLE IF NOT EXISTS projects (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    name          TEXT NOT NULL,
    budget        REAL NOT NULL DEFAULT 0,
    comment       TEXT,
    created_at    TEXT NOT NULL,
    out_of_budget INTEGER NOT NULL DEFAULT 0,
    mine_id       INTEGER REFERENCES mines(id),
    section_id    INTEGER REFERENCES sections(id)
);

CREATE TABLE IF NOT EXISTS corrections (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    project_id INTEGER NOT NULL REFERENCES projects(id),
    new_budget REAL NOT NULL,
    date       TEXT NOT NULL,
    note       TEXT,
    added_by   TEXT DEFAULT ''
);

CREATE TABLE IF NOT EXISTS marketing (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    project_id INTEGER NOT NULL REFERENCES projects(id),
    amount     REAL NOT NULL,
    date       TEXT NOT NULL,
    file_path  TEXT,
    note       TEXT,
    added_by   TEXT DEFAULT ''
);

CREATE TABLE IF NOT EXISTS contracts (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    project_id INTEGER NOT NULL REFERENCES projects(id),
    amount     REAL NOT NULL,
    date       TEXT NOT NULL,
    contractor TEXT,
    file_path  TEXT,
    note       TEXT,
    added_by   TEXT DEFAULT ''
);

CREATE TABLE IF NOT EXISTS revisions (
    id                INTEGER PRIMARY KEY AUTOINCREMENT,
    source_project_id INTEGER NOT NULL REFERENCES projects(id),
    target_project_id INTEGER NOT NULL REFERENCES projects(id),
    amount            REAL NOT NULL,
    date              TEXT NOT NULL,
    note              TEXT,
    added_by          TEXT DEFAULT ''
);
`

const servicesSQL = `
CREATE TABLE IF NOT EXISTS service_contracts (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    name         TEXT NOT NULL,
    contractor   TEXT,
    total_amount REAL NOT NULL DEFAULT 0,
    start_date   TEXT,
    end_date     TEXT,
    mine_id      INTEGER REFERENCES mines(id),
    section_id   INTEGER REFERENCES sections(id),
    note         TEXT,
    created_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS service_acts (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    contract_id  INTEGER NOT NULL REFERENCES service_contracts(id),
    period_start TEXT NOT NULL,
    period_end   TEXT,
    act_date     TEXT NOT NULL,
    amount       REAL NOT NULL,
    note         TEXT
);
`
