// Package sqlite exports a snapshot of both books into a SQLite database
// for ad-hoc querying. The JSON documents stay the source of truth; the
// database is rebuilt from scratch on every export.
package sqlite

// Schema DDL for the export tables.
const (
	createContacts = `CREATE TABLE contacts (
    contact_id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    email TEXT,
    birthday TEXT,
    address TEXT,
    position INTEGER NOT NULL
);`

	createPhones = `CREATE TABLE phones (
    phone_id TEXT PRIMARY KEY,
    contact_id TEXT NOT NULL,
    phone TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    FOREIGN KEY (contact_id) REFERENCES contacts(contact_id) ON DELETE CASCADE
);`

	createNotes = `CREATE TABLE notes (
    note_id INTEGER PRIMARY KEY,
    body TEXT NOT NULL
);`

	createNoteTags = `CREATE TABLE note_tags (
    tag_id TEXT PRIMARY KEY,
    note_id INTEGER NOT NULL,
    tag TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    FOREIGN KEY (note_id) REFERENCES notes(note_id) ON DELETE CASCADE
);`
)

// Index DDL for common queries.
const (
	idxPhonesContact  = `CREATE INDEX idx_phones_contact ON phones(contact_id);`
	idxPhonesPhone    = `CREATE INDEX idx_phones_phone ON phones(phone);`
	idxContactsBday   = `CREATE INDEX idx_contacts_birthday ON contacts(birthday);`
	idxNoteTagsNote   = `CREATE INDEX idx_note_tags_note ON note_tags(note_id);`
	idxNoteTagsUnique = `CREATE UNIQUE INDEX idx_note_tags_unique ON note_tags(note_id, tag);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createContacts,
	createPhones,
	createNotes,
	createNoteTags,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxPhonesContact,
	idxPhonesPhone,
	idxContactsBday,
	idxNoteTagsNote,
	idxNoteTagsUnique,
}
