package workflow

import (
	"context"
	"sort"
	"strings"
	"time"

	asgmodel "onboardku_backend/internals/features/onboarding/assignments/model"
	reqmodel "onboardku_backend/internals/features/onboarding/requests/model"
	sessmodel "onboardku_backend/internals/features/onboarding/sessions/model"
	stagemodel "onboardku_backend/internals/features/onboarding/stages/model"

	"github.com/google/uuid"
)

// memStore is an in-memory Store for engine tests. Reads hand out copies so
// mutations only stick through Save, mirroring a real unit of work.
type memStore struct {
	requests    map[uuid.UUID]reqmodel.OnboardingRequestModel
	assignments map[uuid.UUID]asgmodel.TrainingAssignmentModel
	sessions    map[uuid.UUID]sessmodel.TrainingSessionModel
	stages      map[uuid.UUID]stagemodel.OnboardingStageModel
	progress    map[uuid.UUID]stagemodel.StageProgressModel
	attendees   map[uuid.UUID]sessmodel.SessionAttendeeModel
	students    []sessmodel.SessionStudentModel
	clientNames map[uuid.UUID]string
}

func newMemStore() *memStore {
	return &memStore{
		requests:    map[uuid.UUID]reqmodel.OnboardingRequestModel{},
		assignments: map[uuid.UUID]asgmodel.TrainingAssignmentModel{},
		sessions:    map[uuid.UUID]sessmodel.TrainingSessionModel{},
		stages:      map[uuid.UUID]stagemodel.OnboardingStageModel{},
		progress:    map[uuid.UUID]stagemodel.StageProgressModel{},
		attendees:   map[uuid.UUID]sessmodel.SessionAttendeeModel{},
		clientNames: map[uuid.UUID]string{},
	}
}

func (m *memStore) WithinTx(ctx context.Context, fn func(tx Store) error) error { return fn(m) }

func (m *memStore) Requests() RequestRepo            { return memRequests{m} }
func (m *memStore) Assignments() AssignmentRepo      { return memAssignments{m} }
func (m *memStore) Sessions() SessionRepo            { return memSessions{m} }
func (m *memStore) Stages() StageRepo                { return memStages{m} }
func (m *memStore) StageProgress() StageProgressRepo { return memProgress{m} }
func (m *memStore) Attendees() AttendeeRepo          { return memAttendees{m} }
func (m *memStore) Students() StudentRepo            { return memStudents{m} }
func (m *memStore) Clients() ClientRepo              { return memClients{m} }

/* ===== requests ===== */

type memRequests struct{ s *memStore }

func (r memRequests) FindByID(_ context.Context, id uuid.UUID) (*reqmodel.OnboardingRequestModel, error) {
	req, ok := r.s.requests[id]
	if !ok {
		return nil, ErrRequestNotFound
	}
	return &req, nil
}

func (r memRequests) Create(_ context.Context, req *reqmodel.OnboardingRequestModel) error {
	for _, existing := range r.s.requests {
		if existing.RequestCode == req.RequestCode {
			return ErrCodeCollision
		}
	}
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	r.s.requests[req.ID] = *req
	return nil
}

func (r memRequests) Save(_ context.Context, req *reqmodel.OnboardingRequestModel) error {
	r.s.requests[req.ID] = *req
	return nil
}

func (r memRequests) MaxCodeForYear(_ context.Context, year int) (string, error) {
	prefix := "REQ-" + time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).Format("2006") + "-"
	var codes []string
	for _, req := range r.s.requests {
		if strings.HasPrefix(req.RequestCode, prefix) {
			codes = append(codes, req.RequestCode)
		}
	}
	if len(codes) == 0 {
		return "", nil
	}
	sort.Strings(codes)
	return codes[len(codes)-1], nil
}

/* ===== assignments ===== */

type memAssignments struct{ s *memStore }

func (r memAssignments) FindByID(_ context.Context, id uuid.UUID) (*asgmodel.TrainingAssignmentModel, error) {
	a, ok := r.s.assignments[id]
	if !ok {
		return nil, ErrAssignmentNotFound
	}
	return &a, nil
}

func (r memAssignments) Create(_ context.Context, a *asgmodel.TrainingAssignmentModel) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.s.assignments[a.ID] = *a
	return nil
}

func (r memAssignments) Save(_ context.Context, a *asgmodel.TrainingAssignmentModel) error {
	r.s.assignments[a.ID] = *a
	return nil
}

func (r memAssignments) FindActiveByRequest(_ context.Context, requestID uuid.UUID) (*asgmodel.TrainingAssignmentModel, error) {
	for _, a := range r.s.assignments {
		if a.OnboardingRequestID == requestID &&
			a.Status != AssignmentStatusCompleted && a.Status != AssignmentStatusRejected {
			found := a
			return &found, nil
		}
	}
	return nil, nil
}

/* ===== sessions ===== */

type memSessions struct{ s *memStore }

func (r memSessions) FindByID(_ context.Context, id uuid.UUID) (*sessmodel.TrainingSessionModel, error) {
	sess, ok := r.s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &sess, nil
}

func (r memSessions) Create(_ context.Context, sess *sessmodel.TrainingSessionModel) error {
	if sess.ID == uuid.Nil {
		sess.ID = uuid.New()
	}
	r.s.sessions[sess.ID] = *sess
	return nil
}

func (r memSessions) Save(_ context.Context, sess *sessmodel.TrainingSessionModel) error {
	r.s.sessions[sess.ID] = *sess
	return nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func (r memSessions) HasOverlap(_ context.Context, trainerID uuid.UUID, date time.Time, startTime, endTime string, excludeID *uuid.UUID) (bool, error) {
	for _, sess := range r.s.sessions {
		if excludeID != nil && sess.ID == *excludeID {
			continue
		}
		if sess.Status == SessionStatusCancelled || sess.Status == SessionStatusRescheduled {
			continue
		}
		a, ok := r.s.assignments[sess.AssignmentID]
		if !ok || a.TrainerID != trainerID {
			continue
		}
		if !sameDay(sess.ScheduledDate, date) {
			continue
		}
		if Overlaps(sess.ScheduledStartTime, sess.ScheduledEndTime, startTime, endTime) {
			return true, nil
		}
	}
	return false, nil
}

func (r memSessions) CountByStage(_ context.Context, assignmentID, stageID uuid.UUID) (int64, int64, error) {
	var active, completed int64
	for _, sess := range r.s.sessions {
		if sess.AssignmentID != assignmentID || sess.StageID != stageID {
			continue
		}
		if sess.Status == SessionStatusCancelled || sess.Status == SessionStatusRescheduled {
			continue
		}
		active++
		if sess.Status == SessionStatusCompleted {
			completed++
		}
	}
	return active, completed, nil
}

func (r memSessions) ListScheduledByRequest(_ context.Context, requestID uuid.UUID) ([]sessmodel.TrainingSessionModel, error) {
	var out []sessmodel.TrainingSessionModel
	for _, sess := range r.s.sessions {
		a, ok := r.s.assignments[sess.AssignmentID]
		if !ok || a.OnboardingRequestID != requestID {
			continue
		}
		if sess.Status == SessionStatusScheduled {
			out = append(out, sess)
		}
	}
	return out, nil
}

/* ===== stages ===== */

type memStages struct{ s *memStore }

func (r memStages) ListActiveBySystem(_ context.Context, systemID uuid.UUID) ([]stagemodel.OnboardingStageModel, error) {
	var out []stagemodel.OnboardingStageModel
	for _, stage := range r.s.stages {
		if stage.SystemID == systemID && stage.IsActive {
			out = append(out, stage)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SequenceOrder < out[j].SequenceOrder })
	return out, nil
}

/* ===== stage progress ===== */

type memProgress struct{ s *memStore }

func (r memProgress) FindByID(_ context.Context, id uuid.UUID) (*stagemodel.StageProgressModel, error) {
	sp, ok := r.s.progress[id]
	if !ok {
		return nil, ErrStageNotFound
	}
	return &sp, nil
}

func (r memProgress) FindByAssignmentAndStage(_ context.Context, assignmentID, stageID uuid.UUID) (*stagemodel.StageProgressModel, error) {
	for _, sp := range r.s.progress {
		if sp.AssignmentID == assignmentID && sp.StageID == stageID {
			found := sp
			return &found, nil
		}
	}
	return nil, nil
}

func (r memProgress) ListByAssignment(_ context.Context, assignmentID uuid.UUID) ([]stagemodel.StageProgressModel, error) {
	var out []stagemodel.StageProgressModel
	for _, sp := range r.s.progress {
		if sp.AssignmentID == assignmentID {
			out = append(out, sp)
		}
	}
	return out, nil
}

func (r memProgress) BulkCreate(_ context.Context, rows []stagemodel.StageProgressModel) error {
	for i := range rows {
		if rows[i].ID == uuid.Nil {
			rows[i].ID = uuid.New()
		}
		r.s.progress[rows[i].ID] = rows[i]
	}
	return nil
}

func (r memProgress) Save(_ context.Context, sp *stagemodel.StageProgressModel) error {
	r.s.progress[sp.ID] = *sp
	return nil
}

func (r memProgress) AllTerminal(_ context.Context, assignmentID uuid.UUID) (bool, error) {
	for _, sp := range r.s.progress {
		if sp.AssignmentID == assignmentID && !IsTerminalStageStatus(sp.Status) {
			return false, nil
		}
	}
	return true, nil
}

/* ===== attendees ===== */

type memAttendees struct{ s *memStore }

func (r memAttendees) FindByID(_ context.Context, id uuid.UUID) (*sessmodel.SessionAttendeeModel, error) {
	att, ok := r.s.attendees[id]
	if !ok {
		return nil, ErrAttendeeNotFound
	}
	return &att, nil
}

func (r memAttendees) ListBySession(_ context.Context, sessionID uuid.UUID) ([]sessmodel.SessionAttendeeModel, error) {
	var out []sessmodel.SessionAttendeeModel
	for _, att := range r.s.attendees {
		if att.SessionID == sessionID {
			out = append(out, att)
		}
	}
	return out, nil
}

func (r memAttendees) BulkCreate(_ context.Context, rows []sessmodel.SessionAttendeeModel) error {
	for i := range rows {
		if rows[i].ID == uuid.Nil {
			rows[i].ID = uuid.New()
		}
		r.s.attendees[rows[i].ID] = rows[i]
	}
	return nil
}

func (r memAttendees) Save(_ context.Context, att *sessmodel.SessionAttendeeModel) error {
	r.s.attendees[att.ID] = *att
	return nil
}

func (r memAttendees) CancelPendingBySessions(_ context.Context, sessionIDs []uuid.UUID) error {
	ids := map[uuid.UUID]bool{}
	for _, id := range sessionIDs {
		ids[id] = true
	}
	for key, att := range r.s.attendees {
		if !ids[att.SessionID] {
			continue
		}
		if att.AttendanceStatus == AttendanceStatusInvited || att.AttendanceStatus == AttendanceStatusConfirmed {
			att.AttendanceStatus = AttendanceStatusCancelled
			r.s.attendees[key] = att
		}
	}
	return nil
}

/* ===== students ===== */

type memStudents struct{ s *memStore }

func (r memStudents) BulkCreate(_ context.Context, rows []sessmodel.SessionStudentModel) error {
	for i := range rows {
		if rows[i].ID == uuid.Nil {
			rows[i].ID = uuid.New()
		}
	}
	r.s.students = append(r.s.students, rows...)
	return nil
}

/* ===== clients ===== */

type memClients struct{ s *memStore }

func (r memClients) CompanyName(_ context.Context, clientID uuid.UUID) (string, error) {
	if name, ok := r.s.clientNames[clientID]; ok {
		return name, nil
	}
	return "client", nil
}

/* ===== outbound fakes ===== */

type recordedNotification struct {
	userIDs []uuid.UUID
	typ     string
	title   string
	message string
	related *RelatedEntity
}

type fakeNotifier struct{ sent []recordedNotification }

func (f *fakeNotifier) Notify(_ context.Context, userIDs []uuid.UUID, typ, title, message string, related *RelatedEntity) error {
	f.sent = append(f.sent, recordedNotification{userIDs: userIDs, typ: typ, title: title, message: message, related: related})
	return nil
}

type recordedMessage struct {
	sessionID   uuid.UUID
	messageType string
}

type fakeMessenger struct{ sent []recordedMessage }

func (f *fakeMessenger) SendSessionMessage(_ context.Context, session *sessmodel.TrainingSessionModel, messageType string) error {
	f.sent = append(f.sent, recordedMessage{sessionID: session.ID, messageType: messageType})
	return nil
}

type fakeActivity struct{ actions []string }

func (f *fakeActivity) Record(_ context.Context, _ uuid.UUID, action, _ string, _ map[string]any) error {
	f.actions = append(f.actions, action)
	return nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }
