package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/internal/sla"
)

const ticketColumns = `id, title, description, category, priority, status,
               submitted_by, submitted_at, assigned_to, resolved_at,
               sla_deadline, sla_breach, confidence`

// postgresTicketRepository is the durable store variant, selected when
// a DSN is configured. Semantics match the in-memory store: sequential
// TKT-NNNNN ids, newest-first listing, deadlines locked at intake.
type postgresTicketRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewPostgresTicketRepository instantiates the repository.
func NewPostgresTicketRepository(pool *pgxpool.Pool, now func() time.Time) TicketRepository {
	if now == nil {
		now = time.Now
	}
	return &postgresTicketRepository{pool: pool, now: now}
}

func (r *postgresTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	var seq int64
	if err := r.pool.QueryRow(ctx, `SELECT nextval('ticket_seq')`).Scan(&seq); err != nil {
		return err
	}
	ticket.ID = fmt.Sprintf("TKT-%05d", seq)
	ticket.SubmittedAt = r.now()
	ticket.SLADeadline = sla.Deadline(ticket.SubmittedAt, ticket.Priority)
	ticket.SLABreach = false

	const query = `
        INSERT INTO tickets (id, title, description, category, priority, status,
                             submitted_by, submitted_at, assigned_to, resolved_at,
                             sla_deadline, sla_breach, confidence)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`
	_, err := r.pool.Exec(ctx, query,
		ticket.ID,
		ticket.Title,
		ticket.Description,
		ticket.Category,
		ticket.Priority,
		ticket.Status,
		ticket.SubmittedBy,
		ticket.SubmittedAt,
		ticket.AssignedTo,
		ticket.ResolvedAt,
		ticket.SLADeadline,
		ticket.SLABreach,
		ticket.Confidence,
	)
	return err
}

func (r *postgresTicketRepository) Update(ctx context.Context, id string, patch TicketPatch) (*domain.Ticket, error) {
	sets := []string{}
	args := []any{}

	if patch.Status != nil {
		args = append(args, *patch.Status)
		sets = append(sets, fmt.Sprintf("status=$%d", len(args)))
	}
	if patch.Priority != nil {
		args = append(args, *patch.Priority)
		sets = append(sets, fmt.Sprintf("priority=$%d", len(args)))
	}
	if patch.AssignedTo != nil {
		args = append(args, *patch.AssignedTo)
		sets = append(sets, fmt.Sprintf("assigned_to=$%d", len(args)))
	}
	if patch.ResolvedAt != nil {
		args = append(args, *patch.ResolvedAt)
		sets = append(sets, fmt.Sprintf("resolved_at=$%d", len(args)))
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE tickets SET %s WHERE id=$%d RETURNING `+ticketColumns,
		strings.Join(sets, ", "), len(args))

	ticket, err := scanTicket(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ticket, nil
}

func (r *postgresTicketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1`
	ticket, err := scanTicket(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ticket, nil
}

func (r *postgresTicketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	return r.ListWithFilter(ctx, TicketFilter{})
}

func (r *postgresTicketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	base := `SELECT ` + ticketColumns + ` FROM tickets`
	clauses := []string{"1=1"}
	args := []any{}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Categories) > 0 {
		placeholders := make([]string, len(filter.Categories))
		for i, category := range filter.Categories {
			args = append(args, category)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("category IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Priorities) > 0 {
		placeholders := make([]string, len(filter.Priorities))
		for i, priority := range filter.Priorities {
			args = append(args, priority)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("priority IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(id) LIKE %s OR LOWER(title) LIKE %s OR LOWER(description) LIKE %s OR LOWER(submitted_by) LIKE %s)",
			placeholder, placeholder, placeholder, placeholder))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY submitted_at DESC`, base, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(row rowScanner) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := row.Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Category,
		&ticket.Priority,
		&ticket.Status,
		&ticket.SubmittedBy,
		&ticket.SubmittedAt,
		&ticket.AssignedTo,
		&ticket.ResolvedAt,
		&ticket.SLADeadline,
		&ticket.SLABreach,
		&ticket.Confidence,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ticket)
	}
	return result, rows.Err()
}

// postgresRoutingLogRepository persists routing audit records.
type postgresRoutingLogRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRoutingLogRepository instantiates the repository.
func NewPostgresRoutingLogRepository(pool *pgxpool.Pool) RoutingLogRepository {
	return &postgresRoutingLogRepository{pool: pool}
}

func (r *postgresRoutingLogRepository) Create(ctx context.Context, log *domain.RoutingLog) error {
	const query = `
        INSERT INTO routing_logs (id, ticket_id, timestamp, action, category, confidence, assigned_to, reasoning)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err := r.pool.Exec(ctx, query,
		log.ID, log.TicketID, log.Timestamp, log.Action,
		log.Category, log.Confidence, log.AssignedTo, log.Reasoning)
	return err
}

func (r *postgresRoutingLogRepository) List(ctx context.Context) ([]domain.RoutingLog, error) {
	const query = `
        SELECT id, ticket_id, timestamp, action, category, confidence, assigned_to, reasoning
        FROM routing_logs ORDER BY timestamp DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RoutingLog
	for rows.Next() {
		var log domain.RoutingLog
		if err := rows.Scan(
			&log.ID, &log.TicketID, &log.Timestamp, &log.Action,
			&log.Category, &log.Confidence, &log.AssignedTo, &log.Reasoning,
		); err != nil {
			return nil, err
		}
		result = append(result, log)
	}
	return result, rows.Err()
}

// postgresNotificationRepository persists delivery records.
type postgresNotificationRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresNotificationRepository instantiates the repository.
func NewPostgresNotificationRepository(pool *pgxpool.Pool) NotificationRepository {
	return &postgresNotificationRepository{pool: pool}
}

func (r *postgresNotificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	const query = `
        INSERT INTO notifications (id, ticket_id, channel, recipient, message, sent_at, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err := r.pool.Exec(ctx, query,
		notification.ID, notification.TicketID, notification.Channel,
		notification.Recipient, notification.Message, notification.SentAt, notification.Status)
	return err
}

func (r *postgresNotificationRepository) List(ctx context.Context) ([]domain.Notification, error) {
	const query = `
        SELECT id, ticket_id, channel, recipient, message, sent_at, status
        FROM notifications ORDER BY sent_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Notification
	for rows.Next() {
		var notification domain.Notification
		if err := rows.Scan(
			&notification.ID, &notification.TicketID, &notification.Channel,
			&notification.Recipient, &notification.Message, &notification.SentAt, &notification.Status,
		); err != nil {
			return nil, err
		}
		result = append(result, notification)
	}
	return result, rows.Err()
}
