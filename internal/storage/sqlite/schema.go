package sqlite

const schema = `
-- Key/value settings table
CREATE TABLE IF NOT EXISTS config (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Safety override audit trail (append-only)
CREATE TABLE IF NOT EXISTS safety_overrides (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    proposal_id INTEGER NOT NULL,
    ai_score REAL NOT NULL,
    threshold INTEGER NOT NULL,
    regen_attempts INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_safety_overrides_created_at ON safety_overrides(created_at);
CREATE INDEX IF NOT EXISTS idx_safety_overrides_proposal ON safety_overrides(proposal_id);

-- Threshold suggestion dismissals (reject or remind-later)
CREATE TABLE IF NOT EXISTS suggestion_dismissals (
    fingerprint TEXT PRIMARY KEY,
    dismissed_at DATETIME NOT NULL
);
`
