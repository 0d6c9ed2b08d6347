package persistent

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/entity"
	"github.com/andreyxaxa/Deletion-Request-Mailer/pkg/postgres"
	"github.com/andreyxaxa/Deletion-Request-Mailer/pkg/types/errs"
	"github.com/jackc/pgx/v5"
)

const (
	// Table
	deleteRequestsTable = "delete_requests"

	// Columns
	idColumn                  = "id"
	facilityColumn            = "facility"
	recordIDColumn            = "record_id"
	recordDateColumn          = "record_date"
	noteColumn                = "note"
	attachmentKeyColumn       = "attachment_key"
	attachmentFilenameColumn  = "attachment_filename"
	attachmentMimeTypeColumn  = "attachment_mime_type"
	statusColumn              = "status"
	errorMessageColumn        = "error_message"
	lastErrorColumn           = "last_error"
	firstQueuedAtColumn       = "first_queued_at"
	lastAttemptAtColumn       = "last_attempt_at"
	attemptCountColumn        = "attempt_count"
	processingStartedAtColumn = "processing_started_at"
	processedAtColumn         = "processed_at"
	createdAtColumn           = "created_at"
)

// запись создаётся без статуса, пустое значение = queued
const statusExpr = "LOWER(TRIM(COALESCE(NULLIF(status, ''), 'queued')))"

var now = squirrel.Expr("NOW()")

type DeleteRequestRepo struct {
	*postgres.Postgres
}

func NewDeleteRequestRepo(pg *postgres.Postgres) *DeleteRequestRepo {
	return &DeleteRequestRepo{pg}
}

func (r *DeleteRequestRepo) Create(ctx context.Context, request *entity.DeleteRequest) error {
	sql, args, err := r.Builder.
		Insert(deleteRequestsTable).
		Columns(
			idColumn,
			facilityColumn,
			recordIDColumn,
			recordDateColumn,
			noteColumn,
			attachmentKeyColumn,
			attachmentFilenameColumn,
			attachmentMimeTypeColumn,
			statusColumn,
			attemptCountColumn,
			createdAtColumn,
		).
		Values(
			request.ID,
			request.Facility,
			request.RecordID,
			request.RecordDate,
			request.Note,
			request.AttachmentKey,
			request.AttachmentFilename,
			request.AttachmentMimeType,
			string(request.Status),
			request.AttemptCount,
			request.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("DeleteRequestRepo - Create - r.Builder.ToSql: %w", err)
	}

	// Pool / Tx
	executor := r.GetExecutor(ctx)

	_, err = executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("DeleteRequestRepo - Create - executor.Exec: %w", err)
	}

	return nil
}

func (r *DeleteRequestRepo) GetByID(ctx context.Context, id string) (*entity.DeleteRequest, error) {
	sql, args, err := r.Builder.
		Select(
			idColumn,
			facilityColumn,
			recordIDColumn,
			recordDateColumn,
			noteColumn,
			attachmentKeyColumn,
			attachmentFilenameColumn,
			attachmentMimeTypeColumn,
			"COALESCE(status, '')",
			errorMessageColumn,
			lastErrorColumn,
			firstQueuedAtColumn,
			lastAttemptAtColumn,
			attemptCountColumn,
			processingStartedAtColumn,
			processedAtColumn,
			createdAtColumn,
		).
		From(deleteRequestsTable).
		Where(squirrel.Eq{idColumn: id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("DeleteRequestRepo - GetByID - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	var (
		request entity.DeleteRequest
		status  string
	)
	err = executor.QueryRow(ctx, sql, args...).Scan(
		&request.ID,
		&request.Facility,
		&request.RecordID,
		&request.RecordDate,
		&request.Note,
		&request.AttachmentKey,
		&request.AttachmentFilename,
		&request.AttachmentMimeType,
		&status,
		&request.ErrorMessage,
		&request.LastError,
		&request.FirstQueuedAt,
		&request.LastAttemptAt,
		&request.AttemptCount,
		&request.ProcessingStartedAt,
		&request.ProcessedAt,
		&request.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("DeleteRequestRepo - GetByID: %w", errs.ErrRecordNotFound)
		}

		return nil, fmt.Errorf("DeleteRequestRepo - GetByID - executor.QueryRow: %w", err)
	}

	request.Status = entity.ParseStatus(status)

	return &request, nil
}

func (r *DeleteRequestRepo) Annotate(ctx context.Context, id string) error {
	sql, args, err := r.Builder.
		Update(deleteRequestsTable).
		Set(lastAttemptAtColumn, now).
		Set(attemptCountColumn, squirrel.Expr(attemptCountColumn+" + 1")).
		Set(firstQueuedAtColumn, squirrel.Expr("COALESCE("+firstQueuedAtColumn+", NOW())")).
		Where(squirrel.Eq{idColumn: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("DeleteRequestRepo - Annotate - r.Builder.ToSql: %w", err)
	}

	return r.exec(ctx, "Annotate", sql, args)
}

// MarkProcessing moves the record to processing only if its status is still
// prior. errs.ErrStatusConflict means another invocation got there first.
func (r *DeleteRequestRepo) MarkProcessing(ctx context.Context, id string, prior entity.Status) error {
	sql, args, err := r.Builder.
		Update(deleteRequestsTable).
		Set(statusColumn, string(entity.Processing)).
		Set(processingStartedAtColumn, now).
		Set(errorMessageColumn, nil).
		Where(squirrel.And{
			squirrel.Eq{idColumn: id},
			squirrel.Expr(statusExpr+" = ?", string(prior)),
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("DeleteRequestRepo - MarkProcessing - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("DeleteRequestRepo - MarkProcessing - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteRequestRepo - MarkProcessing: %w", errs.ErrStatusConflict)
	}

	return nil
}

func (r *DeleteRequestRepo) MarkSent(ctx context.Context, id string) error {
	sql, args, err := r.Builder.
		Update(deleteRequestsTable).
		Set(statusColumn, string(entity.Sent)).
		Set(processedAtColumn, now).
		Set(errorMessageColumn, nil).
		Set(lastErrorColumn, nil).
		Where(squirrel.Eq{idColumn: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("DeleteRequestRepo - MarkSent - r.Builder.ToSql: %w", err)
	}

	return r.exec(ctx, "MarkSent", sql, args)
}

func (r *DeleteRequestRepo) MarkError(ctx context.Context, id string, reason string) error {
	sql, args, err := r.Builder.
		Update(deleteRequestsTable).
		Set(statusColumn, string(entity.Error)).
		Set(errorMessageColumn, reason).
		Set(lastErrorColumn, reason).
		Set(processedAtColumn, now).
		Where(squirrel.Eq{idColumn: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("DeleteRequestRepo - MarkError - r.Builder.ToSql: %w", err)
	}

	return r.exec(ctx, "MarkError", sql, args)
}

func (r *DeleteRequestRepo) exec(ctx context.Context, method, sql string, args []interface{}) error {
	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("DeleteRequestRepo - %s - executor.Exec: %w", method, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteRequestRepo - %s: %w", method, errs.ErrRecordNotFound)
	}

	return nil
}
