package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/crotools/cro-admin-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QueryResult is the tabular outcome of one console statement.
type QueryResult struct {
	Columns       []string         `json:"columns"`
	Rows          []map[string]any `json:"rows"`
	Message       string           `json:"message"`
	ExecutionTime float64          `json:"executionTime"`
}

// ExecuteQuery runs the caller-supplied statement verbatim. There is no
// statement-type restriction and no row limit; the only gate is the session
// check on the route. Errors carry the engine's message through.
func (s *Storage) ExecuteQuery(sqlText string) (*QueryResult, error) {
	// database/sql exposes no affected-row count on a Rows handle, so
	// statements without a result set go through Exec instead.
	if !returnsRows(sqlText) {
		return s.execStatement(sqlText)
	}

	start := time.Now()

	rows, err := s.db.Raw(sqlText).Rows()
	if err != nil {
		return nil, fmt.Errorf("query execution failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("query execution failed: %w", err)
	}

	out := make([]map[string]any, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("query execution failed: %w", err)
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			// Drivers hand back []byte for text columns; make it JSON-friendly.
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query execution failed: %w", err)
	}

	return &QueryResult{
		Columns:       columns,
		Rows:          out,
		Message:       fmt.Sprintf("Query executed successfully. %d rows returned.", len(out)),
		ExecutionTime: time.Since(start).Seconds(),
	}, nil
}

func (s *Storage) execStatement(sqlText string) (*QueryResult, error) {
	start := time.Now()

	result := s.db.Exec(sqlText)
	if result.Error != nil {
		return nil, fmt.Errorf("query execution failed: %w", result.Error)
	}

	return &QueryResult{
		Columns:       []string{},
		Rows:          []map[string]any{},
		Message:       fmt.Sprintf("Query executed successfully. %d rows returned.", result.RowsAffected),
		ExecutionTime: time.Since(start).Seconds(),
	}, nil
}

// returnsRows reports whether the statement produces a result set. The
// check is the leading keyword plus a RETURNING scan, which covers what
// operators actually type into the console.
func returnsRows(sqlText string) bool {
	fields := strings.Fields(sqlText)
	if len(fields) == 0 {
		return true
	}
	switch strings.ToUpper(fields[0]) {
	case "SELECT", "WITH", "SHOW", "EXPLAIN", "VALUES", "TABLE", "PRAGMA":
		return true
	}
	for _, f := range fields[1:] {
		if strings.EqualFold(f, "RETURNING") {
			return true
		}
	}
	return false
}

// RecordQueryAudit writes an audit row for a console execution. Best
// effort: a failed audit insert is logged and never fails the request.
func (s *Storage) RecordQueryAudit(userID int, sqlText string, result *QueryResult, execErr error) {
	audit := models.QueryAudit{
		ID:     uuid.New(),
		UserID: userID,
		SQL:    sqlText,
	}
	if execErr != nil {
		audit.Error = execErr.Error()
	} else if result != nil {
		audit.Success = true
		audit.RowCount = len(result.Rows)
		audit.DurationMs = int(result.ExecutionTime * 1000)
		if meta, err := json.Marshal(map[string]any{"columns": result.Columns}); err == nil {
			audit.Meta = datatypes.JSON(meta)
		}
	}

	if err := s.db.Create(&audit).Error; err != nil {
		slog.Error("failed to record query audit", "error", err, "user_id", userID)
	}
}
