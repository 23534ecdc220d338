package db

// SchemaSQL is the model-store schema. Output artifacts share the same
// shape, so one artifact is simply a fresh database initialized with this
// schema and populated by row copy.
//
// All tests use this schema via GetSchemaSQL(); repository code that
// references a missing column fails immediately with "no such column".
const SchemaSQL = `
-- Named organizational buckets. Names compare case-insensitively.
CREATE TABLE IF NOT EXISTS partitions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE COLLATE NOCASE,
	read_only INTEGER NOT NULL DEFAULT 0
);

-- Model items. Type definitions are rows with is_type = 1; instances
-- point at them through type_id.
CREATE TABLE IF NOT EXISTS items (
	id INTEGER PRIMARY KEY,
	category TEXT NOT NULL DEFAULT '',
	is_type INTEGER NOT NULL DEFAULT 0,
	view_scoped INTEGER NOT NULL DEFAULT 0,
	partition_id INTEGER REFERENCES partitions(id),
	type_id INTEGER REFERENCES items(id),
	type_name TEXT NOT NULL DEFAULT '',
	partition_locked INTEGER NOT NULL DEFAULT 0
);

-- Free-form string attributes on items and type definitions.
CREATE TABLE IF NOT EXISTS item_attrs (
	item_id INTEGER NOT NULL REFERENCES items(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	value TEXT NOT NULL,
	PRIMARY KEY (item_id, name)
);

CREATE INDEX IF NOT EXISTS idx_items_category ON items(category);
CREATE INDEX IF NOT EXISTS idx_items_partition ON items(partition_id);
`

// GetSchemaSQL returns the schema for tests.
func GetSchemaSQL() string {
	return SchemaSQL
}
