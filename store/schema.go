package store

// schema creates the persistence tables. Elements keep their position in
// the document so a load returns them in partition order.
const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	path TEXT NOT NULL,
	filename TEXT NOT NULL,
	filetype TEXT NOT NULL,
	last_modified TEXT,
	element_count INTEGER NOT NULL DEFAULT 0,
	properties TEXT,
	created_at TEXT NOT NULL DEFAULT (datetime('now')),
	UNIQUE(path)
);

CREATE TABLE IF NOT EXISTS elements (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	document_id INTEGER NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	element_id TEXT NOT NULL,
	category TEXT NOT NULL,
	text TEXT NOT NULL,
	metadata TEXT,
	position INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_elements_document
	ON elements(document_id, position);
`
