package registration

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/schemadeck/core/logger"
)

// MsgSubmitted acknowledges an accepted registration.
const MsgSubmitted = "Form submitted successfully!"

// PasswordDigest is the bcrypt input for password. bcrypt reads at most 72
// bytes, so the password is reduced to a base64 SHA-256 digest first and no
// length limit applies.
func PasswordDigest(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// Account is what an accepted registration produces. It is logged and
// dropped, never stored.
type Account struct {
	ID           uuid.UUID
	Registration Registration
	PasswordHash []byte
	SubmittedAt  time.Time
}

// LogValue keeps secrets and most personal data out of logs.
func (a Account) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", a.ID.String()),
		slog.String("username", a.Registration.Username),
		slog.String("email", maskEmail(a.Registration.Email)),
		slog.String("account_type", string(a.Registration.AccountType)),
		slog.Bool("has_company", a.Registration.CompanyName != ""),
		slog.Bool("has_website", a.Registration.Website != ""),
		slog.Time("submitted_at", a.SubmittedAt),
	)
}

func maskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return "***"
	}
	return local[:1] + "***@" + domain
}

// Outcome reports what a submission did.
type Outcome struct {
	Accepted bool
	Message  string
	Account  *Account
}

// Submitter validates a form and acknowledges accepted registrations.
type Submitter struct {
	validator Validator
	cost      int
	log       *slog.Logger
	now       func() time.Time
}

// SubmitterOption configures a Submitter.
type SubmitterOption func(*Submitter)

// WithBcryptCost sets the password hashing cost. Values outside bcrypt's
// range are ignored.
func WithBcryptCost(cost int) SubmitterOption {
	return func(s *Submitter) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.cost = cost
		}
	}
}

// WithSubmitLogger sets the logger for accepted submissions.
func WithSubmitLogger(log *slog.Logger) SubmitterOption {
	return func(s *Submitter) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) SubmitterOption {
	return func(s *Submitter) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSubmitter returns a Submitter using v.
func NewSubmitter(v Validator, opts ...SubmitterOption) *Submitter {
	s := &Submitter{
		validator: v,
		cost:      bcrypt.DefaultCost,
		log:       slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validator returns the validator the submitter runs.
func (s *Submitter) Validator() Validator {
	return s.validator
}

// Submit validates the values in st. On failure the errors are stored in st.
// On success the errors are cleared and the account is logged. The error
// return is reserved for hashing failures.
func (s *Submitter) Submit(ctx context.Context, st *State) (Outcome, error) {
	res := s.validator.Validate(st.Values())
	if !res.OK() {
		st.SetErrors(res.Errors)
		s.log.DebugContext(ctx, "registration rejected",
			logger.Component("registration"),
			logger.Kind(string(s.validator.Kind())),
			logger.Count("invalid_fields", len(res.Errors)),
		)
		return Outcome{Accepted: false}, nil
	}
	st.ClearErrors()

	hash, err := bcrypt.GenerateFromPassword(PasswordDigest(res.Data.Password), s.cost)
	if err != nil {
		return Outcome{}, fmt.Errorf("registration: hash password: %w", err)
	}

	reg := *res.Data
	reg.Password = ""
	account := &Account{
		ID:           uuid.New(),
		Registration: reg,
		PasswordHash: hash,
		SubmittedAt:  s.now().UTC(),
	}

	s.log.InfoContext(ctx, "registration accepted",
		logger.Component("registration"),
		logger.Kind(string(s.validator.Kind())),
		logger.UserID(account.ID.String()),
		slog.Any("account", account),
	)

	return Outcome{Accepted: true, Message: MsgSubmitted, Account: account}, nil
}
