package services

import (
	"strings"
	"sync"
	"time"

	"github.com/SAP-F-2025/learning-assistant/internal/models"
	"github.com/google/uuid"
)

// Session carries the per-user state that used to live in page globals: the
// current learning style, the active document and the quiz generation state.
// Setters are the only writers.
type Session struct {
	mu sync.RWMutex

	id               string
	learningStyle    models.LearningStyle
	activeDocumentID string
	generation       models.GenerationState
	busy             int
	quiz             *QuizInstance
	quizzes          map[string]*QuizInstance
	createdAt        time.Time
	lastSeen         time.Time
}

func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		id:            id,
		learningStyle: models.DefaultLearningStyle,
		generation:    models.GenerationIdle,
		quizzes:       make(map[string]*QuizInstance),
		createdAt:     now,
		lastSeen:      now,
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) LearningStyle() models.LearningStyle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.learningStyle
}

func (s *Session) SetLearningStyle(style models.LearningStyle) error {
	if !style.IsValid() {
		return NewValidationError("style", "must be a valid learning style (visual, auditory, hands-on, reading, blended)", string(style))
	}
	s.mu.Lock()
	s.learningStyle = style
	s.mu.Unlock()
	return nil
}

// ActiveDocument returns the document quizzes are generated from.
func (s *Session) ActiveDocument() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeDocumentID, s.activeDocumentID != ""
}

// SetActiveDocument is called by the upload-completion flow.
func (s *Session) SetActiveDocument(documentID string) error {
	documentID = strings.TrimSpace(documentID)
	if documentID == "" {
		return NewValidationError("document_id", "is required", documentID)
	}
	s.mu.Lock()
	s.activeDocumentID = documentID
	s.mu.Unlock()
	return nil
}

func (s *Session) GenerationState() models.GenerationState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// beginGeneration moves the session into Requesting. A trigger while a request
// is outstanding is rejected.
func (s *Session) beginGeneration() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation == models.GenerationRequesting {
		return ErrRequestInFlight
	}
	s.generation = models.GenerationRequesting
	return nil
}

// finishGeneration records the outcome of the outstanding request. A new quiz
// replaces the current one; earlier instances stay reachable by id.
func (s *Session) finishGeneration(quiz *QuizInstance, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.generation = models.GenerationFailed
		return
	}
	s.generation = models.GenerationReady
	s.quiz = quiz
	s.quizzes[quiz.ID()] = quiz
}

// ShowProgress and HideProgress implement ProgressIndicator.
func (s *Session) ShowProgress() {
	s.mu.Lock()
	s.busy++
	s.mu.Unlock()
}

func (s *Session) HideProgress() {
	s.mu.Lock()
	if s.busy > 0 {
		s.busy--
	}
	s.mu.Unlock()
}

// Busy reports whether the typing indicator should be shown.
func (s *Session) Busy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.busy > 0
}

func (s *Session) CurrentQuiz() (*QuizInstance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.quiz, s.quiz != nil
}

func (s *Session) Quiz(id string) (*QuizInstance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	quiz, ok := s.quizzes[id]
	if !ok {
		return nil, ErrQuizNotFound
	}
	return quiz, nil
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return now.Sub(s.lastSeen)
}

// SessionRegistry keeps live sessions in memory, keyed by the browser cookie.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	now      func() time.Time
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// GetOrCreate returns the session for id, creating one with a fresh id when id
// is empty or unknown. The second result reports whether a session was created.
func (r *SessionRegistry) GetOrCreate(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[id]; ok && id != "" {
		s.touch(r.now())
		return s, false
	}

	s := NewSession(uuid.NewString())
	s.touch(r.now())
	r.sessions[s.ID()] = s
	return s, true
}

func (r *SessionRegistry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Prune drops sessions idle for longer than ttl and returns how many were removed.
func (r *SessionRegistry) Prune(ttl time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for id, s := range r.sessions {
		if s.idleSince(now) > ttl {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
