package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	username     TEXT NOT NULL UNIQUE,
	display_name TEXT NOT NULL DEFAULT '',
	role         TEXT NOT NULL DEFAULT 'user' CHECK(role IN ('user', 'admin')),
	is_active    INTEGER NOT NULL DEFAULT 1 CHECK(is_active IN (0, 1)),
	created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS projects (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL UNIQUE,
	is_active  INTEGER NOT NULL DEFAULT 1 CHECK(is_active IN (0, 1)),
	sort_order INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS departments (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL UNIQUE,
	is_active  INTEGER NOT NULL DEFAULT 1 CHECK(is_active IN (0, 1)),
	sort_order INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS work_types (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL UNIQUE,
	is_active  INTEGER NOT NULL DEFAULT 1 CHECK(is_active IN (0, 1)),
	sort_order INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS process_statuses (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL UNIQUE,
	is_active  INTEGER NOT NULL DEFAULT 1 CHECK(is_active IN (0, 1)),
	sort_order INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS work_logs (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id           INTEGER NOT NULL REFERENCES users(id),
	title             TEXT NOT NULL,
	content           TEXT NOT NULL DEFAULT '',
	record_date       DATETIME NOT NULL,
	work_hours        REAL NOT NULL DEFAULT 0,
	project_id        INTEGER NOT NULL REFERENCES projects(id),
	process_status_id INTEGER NOT NULL REFERENCES process_statuses(id),
	created_at        DATETIME NOT NULL,
	updated_at        DATETIME
);

CREATE TABLE IF NOT EXISTS work_log_departments (
	work_log_id   INTEGER NOT NULL REFERENCES work_logs(id) ON DELETE CASCADE,
	department_id INTEGER NOT NULL REFERENCES departments(id),
	PRIMARY KEY (work_log_id, department_id)
);

CREATE TABLE IF NOT EXISTS work_log_work_types (
	work_log_id  INTEGER NOT NULL REFERENCES work_logs(id) ON DELETE CASCADE,
	work_type_id INTEGER NOT NULL REFERENCES work_types(id),
	PRIMARY KEY (work_log_id, work_type_id)
);

CREATE INDEX IF NOT EXISTS idx_work_logs_user_id ON work_logs(user_id);
CREATE INDEX IF NOT EXISTS idx_work_logs_record_date ON work_logs(record_date);
CREATE INDEX IF NOT EXISTS idx_work_logs_project_id ON work_logs(project_id);
CREATE INDEX IF NOT EXISTS idx_work_log_departments_log ON work_log_departments(work_log_id);
CREATE INDEX IF NOT EXISTS idx_work_log_work_types_log ON work_log_work_types(work_log_id);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE TABLE IF NOT EXISTS todo_categories (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL UNIQUE,
	color_code TEXT NOT NULL DEFAULT '',
	icon       TEXT NOT NULL DEFAULT '',
	is_active  INTEGER NOT NULL DEFAULT 1 CHECK(is_active IN (0, 1)),
	sort_order INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS todos (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id      INTEGER NOT NULL REFERENCES users(id),
	title        TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	due_date     DATETIME,
	status       TEXT NOT NULL DEFAULT 'pending' CHECK(status IN ('pending', 'in_progress', 'completed')),
	priority     TEXT NOT NULL DEFAULT 'medium' CHECK(priority IN ('low', 'medium', 'high')),
	category_id  INTEGER REFERENCES todo_categories(id) ON DELETE SET NULL,
	created_at   DATETIME NOT NULL,
	updated_at   DATETIME,
	completed_at DATETIME
);

CREATE TABLE IF NOT EXISTS todo_subtasks (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	todo_id      INTEGER NOT NULL REFERENCES todos(id) ON DELETE CASCADE,
	title        TEXT NOT NULL,
	is_completed INTEGER NOT NULL DEFAULT 0 CHECK(is_completed IN (0, 1)),
	sort_order   INTEGER NOT NULL DEFAULT 0,
	created_at   DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS todo_comments (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	todo_id    INTEGER NOT NULL REFERENCES todos(id) ON DELETE CASCADE,
	user_id    INTEGER NOT NULL REFERENCES users(id),
	content    TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME
);

CREATE TABLE IF NOT EXISTS todo_attachments (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	todo_id      INTEGER NOT NULL REFERENCES todos(id) ON DELETE CASCADE,
	file_name    TEXT NOT NULL,
	file_size    INTEGER NOT NULL DEFAULT 0,
	content_type TEXT NOT NULL DEFAULT '',
	file_data    BLOB NOT NULL DEFAULT x'',
	uploaded_at  DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_todos_user_id ON todos(user_id);
CREATE INDEX IF NOT EXISTS idx_todos_status ON todos(status);
CREATE INDEX IF NOT EXISTS idx_todos_category_id ON todos(category_id);
CREATE INDEX IF NOT EXISTS idx_todos_created_at ON todos(created_at);
CREATE INDEX IF NOT EXISTS idx_todo_subtasks_todo_id ON todo_subtasks(todo_id);
CREATE INDEX IF NOT EXISTS idx_todo_comments_todo_id ON todo_comments(todo_id);
CREATE INDEX IF NOT EXISTS idx_todo_attachments_todo_id ON todo_attachments(todo_id);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
