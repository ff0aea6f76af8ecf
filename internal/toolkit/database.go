package toolkit

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// openSQLite opens the database file and applies the standard pragmas.
func openSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying %s: %w", pragma, err)
		}
	}
	return db, nil
}

// isReadQuery reports whether the statement produces a result set.
func isReadQuery(query string) bool {
	head := strings.ToUpper(strings.Fields(strings.TrimSpace(query))[0])
	return head == "SELECT" || head == "PRAGMA" || head == "WITH" || head == "EXPLAIN"
}

// --- SQLQueryTool ---

// SQLQueryTool handles the dev_sql_query MCP tool.
type SQLQueryTool struct{}

// NewSQLQueryTool creates an SQLQueryTool.
func NewSQLQueryTool() *SQLQueryTool {
	return &SQLQueryTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *SQLQueryTool) Definition() mcp.Tool {
	return mcp.NewTool("dev_sql_query",
		mcp.WithDescription(
			"Execute a SQL statement against a SQLite database file. SELECT-style "+
				"statements return rows, writes return the affected-row count. Returns JSON.",
		),
		mcp.WithString("db_path",
			mcp.Required(),
			mcp.Description("Path to the SQLite database file"),
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("SQL statement to execute"),
		),
	)
}

type queryResult struct {
	Query        string           `json:"query"`
	Timestamp    string           `json:"timestamp"`
	Columns      []string         `json:"columns,omitempty"`
	Rows         []map[string]any `json:"rows,omitempty"`
	RowCount     int              `json:"row_count"`
	RowsAffected int64            `json:"rows_affected"`
}

// Handle processes the dev_sql_query tool call.
func (t *SQLQueryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dbPath := req.GetString("db_path", "")
	query := strings.TrimSpace(req.GetString("query", ""))
	if dbPath == "" {
		return mcp.NewToolResultError("'db_path' is required"), nil
	}
	if query == "" {
		return mcp.NewToolResultError("'query' is required"), nil
	}

	db, err := openSQLite(ctx, dbPath)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	defer db.Close()

	result := queryResult{
		Query:     query,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if !isReadQuery(query) {
		res, err := db.ExecContext(ctx, query)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("executing statement: %v", err)), nil
		}
		result.RowsAffected, _ = res.RowsAffected()
		return jsonResult(result)
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("executing query: %v", err)), nil
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reading columns: %v", err)), nil
	}
	result.Columns = columns
	result.Rows = []map[string]any{}

	values := make([]any, len(columns))
	scanTargets := make([]any, len(columns))
	for i := range values {
		scanTargets[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(scanTargets...); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("scanning row: %v", err)), nil
		}
		row := make(map[string]any, len(columns))
		for i, col := range columns {
			v := values[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			row[col] = v
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("iterating rows: %v", err)), nil
	}
	result.RowCount = len(result.Rows)

	return jsonResult(result)
}

// --- DBSchemaTool ---

// DBSchemaTool handles the dev_db_schema MCP tool.
type DBSchemaTool struct{}

// NewDBSchemaTool creates a DBSchemaTool.
func NewDBSchemaTool() *DBSchemaTool {
	return &DBSchemaTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *DBSchemaTool) Definition() mcp.Tool {
	return mcp.NewTool("dev_db_schema",
		mcp.WithDescription(
			"Inspect the schema of a SQLite database: tables, columns, and row counts. "+
				"Returns JSON.",
		),
		mcp.WithString("db_path",
			mcp.Required(),
			mcp.Description("Path to the SQLite database file"),
		),
		mcp.WithString("tables",
			mcp.Description("Tables to inspect, comma separated (default all)"),
		),
	)
}

type columnInfo struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Nullable   bool   `json:"nullable"`
	PrimaryKey bool   `json:"primary_key"`
}

type tableInfo struct {
	Columns     []columnInfo `json:"columns"`
	RowCount    int64        `json:"row_count"`
	ColumnCount int          `json:"column_count"`
}

type schemaReport struct {
	DatabaseType   string               `json:"database_type"`
	TotalTables    int                  `json:"total_tables"`
	AnalyzedTables int                  `json:"analyzed_tables"`
	Tables         map[string]tableInfo `json:"tables"`
}

// Handle processes the dev_db_schema tool call.
func (t *DBSchemaTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dbPath := req.GetString("db_path", "")
	if dbPath == "" {
		return mcp.NewToolResultError("'db_path' is required"), nil
	}
	if _, err := os.Stat(dbPath); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("database file not found: %s", dbPath)), nil
	}

	db, err := openSQLite(ctx, dbPath)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	defer db.Close()

	allTables, err := listTables(ctx, db)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	wanted := splitLines(req.GetString("tables", ""))
	if len(wanted) == 0 {
		wanted = allTables
	}

	report := schemaReport{
		DatabaseType:   "sqlite",
		TotalTables:    len(allTables),
		AnalyzedTables: len(wanted),
		Tables:         make(map[string]tableInfo, len(wanted)),
	}

	for _, table := range wanted {
		info, err := describeTable(ctx, db, table)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		report.Tables[table] = info
	}

	return jsonResult(report)
}

// listTables returns the user tables in the database.
func listTables(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning table name: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// describeTable reads column metadata and the row count for one table.
// The table name comes from sqlite_master or the caller; PRAGMA does not
// support placeholders, so it is quoted instead.
func describeTable(ctx context.Context, db *sql.DB, table string) (tableInfo, error) {
	quoted := `"` + strings.ReplaceAll(table, `"`, `""`) + `"`

	rows, err := db.QueryContext(ctx, "PRAGMA table_info("+quoted+")")
	if err != nil {
		return tableInfo{}, fmt.Errorf("describing %s: %w", table, err)
	}
	defer rows.Close()

	var info tableInfo
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return tableInfo{}, fmt.Errorf("scanning column of %s: %w", table, err)
		}
		info.Columns = append(info.Columns, columnInfo{
			Name:       name,
			Type:       colType,
			Nullable:   notNull == 0,
			PrimaryKey: pk > 0,
		})
	}
	if err := rows.Err(); err != nil {
		return tableInfo{}, fmt.Errorf("iterating columns of %s: %w", table, err)
	}
	info.ColumnCount = len(info.Columns)
	if info.ColumnCount == 0 {
		return tableInfo{}, fmt.Errorf("table %s does not exist", table)
	}

	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+quoted).Scan(&info.RowCount); err != nil {
		return tableInfo{}, fmt.Errorf("counting rows of %s: %w", table, err)
	}
	return info, nil
}
