package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nijaru/video-api/errors"
)

const (
	insertVideoQuery = `
        INSERT INTO videos (id, name, views, likes)
        VALUES (?, ?, ?, ?)
    `

	getVideoQuery = `
        SELECT id, name, views, likes
        FROM videos WHERE id = ?
    `

	listVideosQuery = `
        SELECT id, name, views, likes
        FROM videos
        ORDER BY id ASC
        LIMIT ? OFFSET ?
    `

	countVideosQuery = `
        SELECT COUNT(*) FROM videos
    `

	updateVideoQuery = `
        UPDATE videos SET
            name = COALESCE(?, name),
            views = COALESCE(?, views),
            likes = COALESCE(?, likes)
        WHERE id = ?
    `

	deleteVideoQuery = `
        DELETE FROM videos WHERE id = ?
    `
)

type PreparedStatements struct {
	insert *sql.Stmt
	get    *sql.Stmt
	list   *sql.Stmt
	count  *sql.Stmt
	update *sql.Stmt
	delete *sql.Stmt
}

func (stmts *PreparedStatements) Prepare(ctx context.Context, db *sql.DB) error {
	const op = "PreparedStatements.Prepare"

	var err error

	if stmts.insert, err = db.PrepareContext(ctx, insertVideoQuery); err != nil {
		return errors.Internal(op, err, "failed to prepare insert statement")
	}

	if stmts.get, err = db.PrepareContext(ctx, getVideoQuery); err != nil {
		return errors.Internal(op, err, "failed to prepare get statement")
	}

	if stmts.list, err = db.PrepareContext(ctx, listVideosQuery); err != nil {
		return errors.Internal(op, err, "failed to prepare list statement")
	}

	if stmts.count, err = db.PrepareContext(ctx, countVideosQuery); err != nil {
		return errors.Internal(op, err, "failed to prepare count statement")
	}

	if stmts.update, err = db.PrepareContext(ctx, updateVideoQuery); err != nil {
		return errors.Internal(op, err, "failed to prepare update statement")
	}

	if stmts.delete, err = db.PrepareContext(ctx, deleteVideoQuery); err != nil {
		return errors.Internal(op, err, "failed to prepare delete statement")
	}

	return nil
}

func (stmts *PreparedStatements) Close() error {
	var errs []error

	statements := [...]*sql.Stmt{
		stmts.insert,
		stmts.get,
		stmts.list,
		stmts.count,
		stmts.update,
		stmts.delete,
	}

	for _, stmt := range statements {
		if stmt != nil {
			if err := stmt.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("failed to close prepared statements: %v", errs)
	}

	return nil
}
