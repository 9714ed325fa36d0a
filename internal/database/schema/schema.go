package schema

// SchemaSQL contains the full database schema initialization script
const SchemaSQL = `
-- Earnings Engine Schema

-- 1. User Performance Profiles
CREATE TABLE IF NOT EXISTS user_profiles (
    user_id VARCHAR(100) PRIMARY KEY,
    tier VARCHAR(20) NOT NULL DEFAULT 'learning',
    trends_submitted INTEGER NOT NULL DEFAULT 0,
    trends_approved INTEGER NOT NULL DEFAULT 0,
    approval_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
    quality_score DOUBLE PRECISION NOT NULL DEFAULT 0,
    current_balance DECIMAL(10,2) NOT NULL DEFAULT 0,
    total_earned DECIMAL(10,2) NOT NULL DEFAULT 0,
    today_earned DECIMAL(10,2) NOT NULL DEFAULT 0,
    daily_streak INTEGER NOT NULL DEFAULT 0,
    session_position INTEGER NOT NULL DEFAULT 0,
    last_submission_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- 2. Trend Submissions
CREATE TABLE IF NOT EXISTS trend_submissions (
    trend_id UUID PRIMARY KEY,
    spotter_id VARCHAR(100) NOT NULL REFERENCES user_profiles(user_id) ON DELETE CASCADE,
    title VARCHAR(200) NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    category VARCHAR(50) NOT NULL DEFAULT '',
    status VARCHAR(20) NOT NULL DEFAULT 'pending',
    signals JSONB NOT NULL DEFAULT '{}',
    verify_votes INTEGER NOT NULL DEFAULT 0,
    reject_votes INTEGER NOT NULL DEFAULT 0,
    submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_trend_submissions_status ON trend_submissions (status, submitted_at);
CREATE INDEX IF NOT EXISTS idx_trend_submissions_spotter ON trend_submissions (spotter_id);

-- 3. Validation Votes (one vote per voter per trend)
CREATE TABLE IF NOT EXISTS trend_votes (
    vote_id UUID PRIMARY KEY,
    trend_id UUID NOT NULL REFERENCES trend_submissions(trend_id) ON DELETE CASCADE,
    voter_id VARCHAR(100) NOT NULL,
    vote VARCHAR(10) NOT NULL,
    cast_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (trend_id, voter_id)
);

-- 4. Earnings Ledger (append-only, amounts are final capped values)
CREATE TABLE IF NOT EXISTS earnings_ledger (
    entry_id UUID PRIMARY KEY,
    user_id VARCHAR(100) NOT NULL REFERENCES user_profiles(user_id) ON DELETE CASCADE,
    trend_id UUID REFERENCES trend_submissions(trend_id) ON DELETE SET NULL,
    entry_type VARCHAR(30) NOT NULL,
    amount DECIMAL(10,2) NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    status VARCHAR(20) NOT NULL DEFAULT 'pending',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_earnings_ledger_user ON earnings_ledger (user_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_earnings_ledger_trend ON earnings_ledger (trend_id) WHERE trend_id IS NOT NULL;
`
