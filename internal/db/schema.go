package db

const createSnapshotsTable = `
CREATE TABLE IF NOT EXISTS snapshots (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    taken_at TEXT NOT NULL,
    source TEXT
);
`

const createSnapshotReposTable = `
CREATE TABLE IF NOT EXISTS snapshot_repos (
    snapshot_id INTEGER NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    owner TEXT NOT NULL,
    name TEXT NOT NULL,
    stars INTEGER NOT NULL,
    forks INTEGER NOT NULL,
    open_issues INTEGER NOT NULL DEFAULT 0,
    license TEXT,
    language TEXT,
    archived INTEGER NOT NULL DEFAULT 0,
    created_at TEXT,
    pushed_at TEXT,
    description TEXT,
    homepage TEXT,
    topics TEXT,
    PRIMARY KEY (snapshot_id, owner, name)
);

CREATE INDEX IF NOT EXISTS idx_snapshot_repos_name ON snapshot_repos(owner, name);
`

const insertSnapshot = `
INSERT INTO snapshots (taken_at, source) VALUES (?, ?)
`

const insertSnapshotRepo = `
INSERT OR REPLACE INTO snapshot_repos (
    snapshot_id, position, owner, name, stars, forks, open_issues,
    license, language, archived, created_at, pushed_at,
    description, homepage, topics
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const countSnapshotRepos = `
SELECT COUNT(*) FROM snapshot_repos WHERE snapshot_id = ?
`
