// Package repository is the gorm-backed persistence layer behind the
// workflow ports. Every repo handed out by Store shares one *gorm.DB;
// WithinTx swaps it for a transaction so the whole workflow operation
// commits or rolls back as a unit.
package repository

import (
	"context"
	"errors"

	"onboardku_backend/internals/features/onboarding/workflow"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Store struct {
	db   *gorm.DB
	inTx bool
}

func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

// DB exposes the raw handle for read-side controllers (lists, dashboards).
func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) WithinTx(ctx context.Context, fn func(tx workflow.Store) error) error {
	if s.inTx {
		// Nested call: reuse the surrounding transaction.
		return fn(s)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx, inTx: true})
	})
}

func (s *Store) Requests() workflow.RequestRepo            { return requestRepo{s} }
func (s *Store) Assignments() workflow.AssignmentRepo      { return assignmentRepo{s} }
func (s *Store) Sessions() workflow.SessionRepo            { return sessionRepo{s} }
func (s *Store) Stages() workflow.StageRepo                { return stageRepo{s} }
func (s *Store) StageProgress() workflow.StageProgressRepo { return stageProgressRepo{s} }
func (s *Store) Attendees() workflow.AttendeeRepo          { return attendeeRepo{s} }
func (s *Store) Students() workflow.StudentRepo            { return studentRepo{s} }
func (s *Store) Clients() workflow.ClientRepo              { return clientRepo{s} }

// isUniqueViolation reports a Postgres 23505 on the given constraint; an
// empty constraint matches any unique violation.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23505" {
		return false
	}
	return constraint == "" || string(pqErr.Constraint) == constraint
}

// notFound translates gorm's record-not-found into a domain sentinel.
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
