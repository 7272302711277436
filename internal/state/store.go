// Package state implements the client-side synchronization engine: the
// session, the cached project and task snapshots, the current selection and
// view criteria, and the status of the last operation.
//
// The Store is the single owner of all cached state. It is created per
// session, passed to consumers by reference, and reset wholesale on logout.
// Mutating operations follow the write-then-refetch pattern: the local
// caches are only ever replaced by re-reading the gateway's authoritative
// lists, never patched optimistically.
//
// No operation returns an error to its caller. Failures are recorded as the
// current status and read back through Err and OK; every operation clears
// the previous status before reporting its own outcome.
package state

import (
	"context"
	"sync"

	"taskdeck/internal/service"
	"taskdeck/internal/view"
)

// Confirmer answers a destructive-action prompt. The rendering layer
// supplies one; the engine never blocks on input itself.
type Confirmer func(prompt string) bool

// Store holds the session and all cached client state.
type Store struct {
	mu      sync.Mutex
	gw      service.Gateway
	creds   CredentialStore
	snap    SnapshotStore
	confirm Confirmer

	token    string
	projects []service.Project
	selected int // project ID, 0 means no selection
	tasks    []service.Task
	criteria view.Criteria

	// gen is bumped on every selection change and logout. A task refetch
	// that finishes after its generation was superseded discards its
	// result instead of writing a stale list into the cache.
	gen uint64

	errStatus error
	okStatus  string
}

// New creates a Store bound to a gateway. creds and snap may be nil for a
// purely in-memory session. confirm may be nil, in which case every
// confirmation is denied.
func New(gw service.Gateway, creds CredentialStore, snap SnapshotStore, confirm Confirmer) *Store {
	if confirm == nil {
		confirm = func(string) bool { return false }
	}
	s := &Store{
		gw:       gw,
		creds:    creds,
		snap:     snap,
		confirm:  confirm,
		criteria: view.DefaultCriteria(),
	}
	if creds != nil {
		if tok, err := creds.Load(); err == nil {
			s.token = tok
		}
	}
	if snap != nil {
		if sn, err := snap.Load(); err == nil {
			s.selected = sn.SelectedProjectID
			s.criteria = sn.Criteria
		}
	}
	return s
}

// Signup creates an account. Success does not change the session: the user
// still has to log in.
func (s *Store) Signup(ctx context.Context, email, password string) {
	s.resetStatus()
	if err := s.gw.Signup(ctx, email, password); err != nil {
		s.fail(err)
		return
	}
	s.ok("Signup successful. Now login.")
}

// Login exchanges credentials for a bearer token and persists it. On
// failure the session stays anonymous.
func (s *Store) Login(ctx context.Context, email, password string) {
	s.resetStatus()
	tok, err := s.gw.Login(ctx, email, password)
	if err != nil {
		s.fail(err)
		return
	}

	s.mu.Lock()
	s.token = tok
	s.mu.Unlock()

	if s.creds != nil {
		if err := s.creds.Save(tok); err != nil {
			s.fail(err)
			return
		}
	}
	s.ok("Logged in!")
}

// Logout clears the credential and all cached state. It is synchronous and
// unconditional: no network call is made and it cannot fail.
func (s *Store) Logout() {
	s.mu.Lock()
	s.token = ""
	s.projects = nil
	s.tasks = nil
	s.selected = 0
	s.criteria = view.DefaultCriteria()
	s.gen++
	s.errStatus = nil
	s.okStatus = ""
	s.mu.Unlock()

	if s.creds != nil {
		_ = s.creds.Clear()
	}
	if s.snap != nil {
		_ = s.snap.Clear()
	}
}

// Authenticated reports whether a credential is held.
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// Token returns the current bearer token, or "" when anonymous.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Err returns the error recorded by the last operation, or nil.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errStatus
}

// OK returns the informational status recorded by the last operation.
func (s *Store) OK() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.okStatus
}

// Projects returns a copy of the cached project list.
func (s *Store) Projects() []service.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]service.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// Tasks returns a copy of the cached task list for the selection.
func (s *Store) Tasks() []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]service.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Selected returns the selected project ID, or 0 when none.
func (s *Store) Selected() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// SelectedProject returns the selected project from the cache.
func (s *Store) SelectedProject() (service.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.projects {
		if p.ID == s.selected {
			return p, true
		}
	}
	return service.Project{}, false
}

// Criteria returns the current view criteria.
func (s *Store) Criteria() view.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

// SetCriteria replaces the view criteria and persists them.
func (s *Store) SetCriteria(c view.Criteria) {
	s.mu.Lock()
	s.criteria = c
	s.persistSnapshotLocked()
	s.mu.Unlock()
}

// ClearCriteria resets query, filter and sort to their defaults.
func (s *Store) ClearCriteria() {
	s.resetStatus()
	s.mu.Lock()
	s.criteria = view.DefaultCriteria()
	s.persistSnapshotLocked()
	s.mu.Unlock()
	s.ok("Cleared filters.")
}

// VisibleTasks returns the cached tasks filtered, searched and sorted under
// the current criteria.
func (s *Store) VisibleTasks() []service.Task {
	s.mu.Lock()
	tasks := make([]service.Task, len(s.tasks))
	copy(tasks, s.tasks)
	c := s.criteria
	s.mu.Unlock()
	return view.Visible(tasks, c)
}

// Progress returns the completed count, the total count, and the completed
// percentage (0 when the cache is empty).
func (s *Store) Progress() (done, total, pct int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.Done {
			done++
		}
	}
	total = len(s.tasks)
	if total > 0 {
		pct = done * 100 / total
	}
	return done, total, pct
}

// resetStatus clears the status of the previous operation.
func (s *Store) resetStatus() {
	s.mu.Lock()
	s.errStatus = nil
	s.okStatus = ""
	s.mu.Unlock()
}

func (s *Store) fail(err error) {
	s.mu.Lock()
	s.errStatus = err
	s.mu.Unlock()
}

func (s *Store) ok(msg string) {
	s.mu.Lock()
	s.okStatus = msg
	s.mu.Unlock()
}

// requireAuth records an auth error when the session is anonymous.
// Project and task operations are blocked without a credential.
func (s *Store) requireAuth() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		s.errStatus = &service.AuthError{Message: "not logged in"}
		return false
	}
	return true
}

// setSelectionLocked changes the selection, bumps the refetch generation
// and persists the snapshot. Callers hold s.mu.
func (s *Store) setSelectionLocked(projectID int) {
	s.selected = projectID
	s.gen++
	s.persistSnapshotLocked()
}

// persistSnapshotLocked writes selection and criteria to the snapshot
// store, best effort. Callers hold s.mu.
func (s *Store) persistSnapshotLocked() {
	if s.snap == nil {
		return
	}
	_ = s.snap.Save(Snapshot{SelectedProjectID: s.selected, Criteria: s.criteria})
}
