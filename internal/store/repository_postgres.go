package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	createUsersTableQuery = `
		CREATE TABLE IF NOT EXISTS users (
			id bigserial PRIMARY KEY,
			name text NOT NULL,
			email text NOT NULL DEFAULT '',
			avatar text NOT NULL DEFAULT '',
			gender text NOT NULL DEFAULT '',
			location text NOT NULL DEFAULT '',
			age text NOT NULL DEFAULT '',
			created_at text NOT NULL DEFAULT ''
		)
	`
	listUsersQuery = `
		SELECT id, name, email, avatar, gender, location, age, created_at
		FROM users
		ORDER BY id
	`
	getUserByIDQuery = `
		SELECT id, name, email, avatar, gender, location, age, created_at
		FROM users
		WHERE id = $1
	`
	insertUserQuery = `
		INSERT INTO users (name, email, avatar, gender, location, age, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	updateUserQuery = `
		UPDATE users
		SET name = $1,
			email = $2,
			avatar = $3,
			gender = $4,
			location = $5,
			age = $6,
			created_at = $7
		WHERE id = $8
	`
	deleteUserQuery = `DELETE FROM users WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the users table when it does not exist yet.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUsersTableQuery); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, listUsersQuery)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// Ids are numeric in the table; anything else cannot exist.
func parseID(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	return n, err == nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (Record, error) {
	n, ok := parseID(id)
	if !ok {
		return Record{}, ErrNotFound
	}
	record, err := scanRecord(r.db.QueryRowContext(ctx, getUserByIDQuery, n))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}

	return record, nil
}

func (r *PostgresRepository) Create(ctx context.Context, record Record) (Record, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		insertUserQuery,
		record.Name,
		record.Email,
		record.Avatar,
		record.Gender,
		record.Location,
		record.Age,
		record.CreatedAt,
	).Scan(&id)
	if err != nil {
		return Record{}, fmt.Errorf("insert user: %w", err)
	}

	record.ID = strconv.FormatInt(id, 10)
	return record, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, update Record) (Record, error) {
	n, ok := parseID(id)
	if !ok {
		return Record{}, ErrNotFound
	}
	result, err := r.db.ExecContext(ctx,
		updateUserQuery,
		update.Name,
		update.Email,
		update.Avatar,
		update.Gender,
		update.Location,
		update.Age,
		update.CreatedAt,
		n,
	)
	if err != nil {
		return Record{}, fmt.Errorf("update user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return Record{}, err
	}
	if affected == 0 {
		return Record{}, ErrNotFound
	}

	update.ID = id
	return update, nil
}

// Delete returns the removed row, the way the hosted store answers a DELETE.
func (r *PostgresRepository) Delete(ctx context.Context, id string) (Record, error) {
	record, err := r.GetByID(ctx, id)
	if err != nil {
		return Record{}, err
	}

	n, _ := parseID(id)
	result, err := r.db.ExecContext(ctx, deleteUserQuery, n)
	if err != nil {
		return Record{}, fmt.Errorf("delete user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return Record{}, err
	}
	if affected == 0 {
		return Record{}, ErrNotFound
	}

	return record, nil
}

func scanRecord(scanner rowScanner) (Record, error) {
	record := Record{}
	var id int64
	if err := scanner.Scan(
		&id,
		&record.Name,
		&record.Email,
		&record.Avatar,
		&record.Gender,
		&record.Location,
		&record.Age,
		&record.CreatedAt,
	); err != nil {
		return Record{}, err
	}
	record.ID = strconv.FormatInt(id, 10)
	return record, nil
}
