package docstore

// schema is applied on every connect; statements are idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	content     TEXT NOT NULL,
	uploaded_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS chat_turns (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	question    TEXT NOT NULL,
	answer      TEXT NOT NULL,
	asked_at    TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_documents_uploaded_at ON documents(uploaded_at);
CREATE INDEX IF NOT EXISTS idx_chat_turns_document_id ON chat_turns(document_id);
`
