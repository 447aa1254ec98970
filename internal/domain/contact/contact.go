package contact

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/petsalon/salon-api/internal/pkg/apperror"
	"github.com/petsalon/salon-api/internal/pkg/database"
	"github.com/petsalon/salon-api/internal/pkg/email"
	"github.com/petsalon/salon-api/internal/pkg/logger"
	"github.com/petsalon/salon-api/internal/pkg/metrics"
	"github.com/petsalon/salon-api/internal/pkg/sqltypes"
	"github.com/petsalon/salon-api/internal/pkg/validator"
)

var ErrContactNotFound = apperror.NotFound("Contact not found")

// Contact is a message left through the contact form (matches contacts table)
type Contact struct {
	ID        int64          `db:"id"`
	Name      string         `db:"name"`
	Email     string         `db:"email"`
	Phone     sql.NullString `db:"phone"`
	Message   string         `db:"message"`
	Responded sqltypes.Flag  `db:"responded"`
	CreatedAt time.Time      `db:"created_at"`
}

// CreateRequest is the contact form payload
type CreateRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Phone   string `json:"phone" validate:"max=30"`
	Message string `json:"message" validate:"required,max=5000"`
}

// Repository handles contact database operations
type Repository interface {
	Create(ctx context.Context, c *Contact) (int64, error)
	MarkResponded(ctx context.Context, id int64) error
}

type repository struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

// NewRepository creates contact repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db, sb: database.Builder(db)}
}

func (r *repository) Create(ctx context.Context, c *Contact) (int64, error) {
	query, args, err := r.sb.Insert("contacts").
		Columns("name", "email", "phone", "message").
		Values(c.Name, c.Email, c.Phone, c.Message).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, apperror.Storage("contacts.create", err)
	}

	var id int64
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, apperror.Storage("contacts.create", err)
	}
	return id, nil
}

func (r *repository) MarkResponded(ctx context.Context, id int64) error {
	query, args, err := r.sb.Update("contacts").
		Set("responded", true).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return apperror.Storage("contacts.respond", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return apperror.Storage("contacts.respond", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperror.Storage("contacts.respond", err)
	}
	if affected == 0 {
		return ErrContactNotFound
	}
	return nil
}

// Service handles contact form business logic
type Service struct {
	repo     Repository
	metrics  *metrics.Metrics
	notifier *email.Service
}

// NewService creates contact service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SetMetrics enables domain counters
func (s *Service) SetMetrics(m *metrics.Metrics) {
	s.metrics = m
}

// SetNotifier enables staff emails for new messages
func (s *Service) SetNotifier(n *email.Service) {
	s.notifier = n
}

// Create stores a contact message
func (s *Service) Create(ctx context.Context, req *CreateRequest) (int64, error) {
	if err := validator.Check(req); err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, &Contact{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   sqltypes.NullString(req.Phone),
		Message: req.Message,
	})
	if err != nil {
		return 0, err
	}

	s.metrics.ContactReceived()
	s.notifier.NotifyContact(email.ContactNotice{
		ID:      id,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	logger.FromContext(ctx).Info().Int64("contact_id", id).Msg("Contact message received")
	return id, nil
}

// MarkResponded records that staff answered the message
func (s *Service) MarkResponded(ctx context.Context, id int64) error {
	if err := s.repo.MarkResponded(ctx, id); err != nil {
		return err
	}
	logger.FromContext(ctx).Info().Int64("contact_id", id).Msg("Contact marked as responded")
	return nil
}
