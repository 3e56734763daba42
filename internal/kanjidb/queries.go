package kanjidb

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/chopain/yomikae-sub001/internal/errors"
)

// ErrUniqueConstraint is returned when an insert violates a UNIQUE constraint.
var ErrUniqueConstraint = &errors.YomikaeError{
	Code:    "UNIQUE_CONSTRAINT",
	Status:  409,
	Message: "unique constraint violation",
}

// Insert stores a new character in the database. The ID is derived from the
// literal when unset.
func Insert(db *sql.DB, c *Character) error {
	if c.ID == "" {
		c.ID = CharacterID(c.Literal)
	}
	now := time.Now().Unix()
	if c.CreatedAt == 0 {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	meanings, on, kun, err := encodeLists(c)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO characters (
			id, literal, meanings_json, on_json, kun_json,
			pinyin, jlpt_level, false_friend, strokes,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = db.Exec(query,
		c.ID, c.Literal, meanings, on, kun,
		toNullString(c.Pinyin), toNullInt(c.JLPTLevel), boolToInt(c.FalseFriend), toNullInt(c.Strokes),
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrUniqueConstraint
		}
		return errors.NewInternal(err)
	}

	return nil
}

// Upsert inserts a character or, when the literal already exists, refreshes
// its dictionary payload in place. Used by seeding and dictionary imports.
func Upsert(db *sql.DB, c *Character) error {
	if c.ID == "" {
		c.ID = CharacterID(c.Literal)
	}
	now := time.Now().Unix()
	if c.CreatedAt == 0 {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	meanings, on, kun, err := encodeLists(c)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO characters (
			id, literal, meanings_json, on_json, kun_json,
			pinyin, jlpt_level, false_friend, strokes,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(literal) DO UPDATE SET
			meanings_json = excluded.meanings_json,
			on_json       = excluded.on_json,
			kun_json      = excluded.kun_json,
			pinyin        = excluded.pinyin,
			jlpt_level    = excluded.jlpt_level,
			false_friend  = excluded.false_friend,
			strokes       = excluded.strokes,
			updated_at    = excluded.updated_at
	`

	_, err = db.Exec(query,
		c.ID, c.Literal, meanings, on, kun,
		toNullString(c.Pinyin), toNullInt(c.JLPTLevel), boolToInt(c.FalseFriend), toNullInt(c.Strokes),
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return errors.NewInternal(err)
	}

	return nil
}

// isUniqueConstraintError checks if the error is a SQLite UNIQUE constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	// SQLite returns "UNIQUE constraint failed: ..." for unique violations
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// GetByLiteral retrieves a character by its exact literal.
func GetByLiteral(db *sql.DB, literal string) (*Character, error) {
	row := db.QueryRow(selectColumns+" WHERE literal = ?", literal)
	c, err := scanCharacter(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(literal)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return c, nil
}

// GetByID retrieves a character by its derived ID.
func GetByID(db *sql.DB, id string) (*Character, error) {
	row := db.QueryRow(selectColumns+" WHERE id = ?", id)
	c, err := scanCharacter(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return c, nil
}

// Search finds characters whose literal, meanings, readings, or pinyin
// contain the query. Exact literal matches sort first, then easier JLPT
// levels before harder and unclassified ones.
func Search(ctx context.Context, db *sql.DB, query string, limit int) ([]*Character, error) {
	like := "%" + escapeLike(query) + "%"

	rows, err := db.QueryContext(ctx, selectColumns+`
		WHERE literal = ?
		   OR meanings_json LIKE ? ESCAPE '\'
		   OR on_json LIKE ? ESCAPE '\'
		   OR kun_json LIKE ? ESCAPE '\'
		   OR pinyin LIKE ? ESCAPE '\'
		ORDER BY (literal = ?) DESC, (jlpt_level IS NULL), jlpt_level DESC, literal
		LIMIT ?`,
		query, like, like, like, like, query, limit,
	)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var out []*Character
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return out, nil
}

// escapeLike escapes LIKE wildcards in user queries.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// Count returns the number of characters in the dictionary.
func Count(db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM characters").Scan(&n); err != nil {
		return 0, errors.NewInternal(err)
	}
	return n, nil
}

const selectColumns = `
	SELECT id, literal, meanings_json, on_json, kun_json,
		pinyin, jlpt_level, false_friend, strokes,
		created_at, updated_at
	FROM characters`

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanCharacter scans a single row into a Character struct.
func scanCharacter(row scanner) (*Character, error) {
	var (
		c           Character
		meanings    sql.NullString
		on          sql.NullString
		kun         sql.NullString
		pinyin      sql.NullString
		jlpt        sql.NullInt64
		falseFriend int
		strokes     sql.NullInt64
	)

	err := row.Scan(
		&c.ID, &c.Literal, &meanings, &on, &kun,
		&pinyin, &jlpt, &falseFriend, &strokes,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := decodeList(meanings, &c.Meanings); err != nil {
		return nil, err
	}
	if err := decodeList(on, &c.OnReadings); err != nil {
		return nil, err
	}
	if err := decodeList(kun, &c.KunReadings); err != nil {
		return nil, err
	}

	c.Pinyin = fromNullString(pinyin)
	c.FalseFriend = falseFriend != 0
	if jlpt.Valid {
		level := int(jlpt.Int64)
		c.JLPTLevel = &level
	}
	if strokes.Valid {
		n := int(strokes.Int64)
		c.Strokes = &n
	}

	return &c, nil
}

// encodeLists converts the row's string lists to their JSON column form.
func encodeLists(c *Character) (meanings, on, kun sql.NullString, err error) {
	if meanings, err = encodeList(c.Meanings); err != nil {
		return
	}
	if on, err = encodeList(c.OnReadings); err != nil {
		return
	}
	kun, err = encodeList(c.KunReadings)
	return
}

func encodeList(list []string) (sql.NullString, error) {
	if len(list) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(list)
	if err != nil {
		return sql.NullString{}, errors.NewInternal(err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func decodeList(ns sql.NullString, dest *[]string) error {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(ns.String), dest)
}

// toNullString converts a *string to sql.NullString.
func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// fromNullString converts a sql.NullString to *string.
func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

// toNullInt converts a *int to sql.NullInt64.
func toNullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
