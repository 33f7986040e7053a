// Package store keeps the client side mirror of the board and synchronises
// it with the API. Task moves are applied optimistically and rolled back by
// re-fetching the current project's tasks when the server rejects them.
package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/thenoetrevino/flowboard/internal/converters"
	"github.com/thenoetrevino/flowboard/internal/models"
)

// API is the subset of the HTTP client the store calls
type API interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
	CreateUser(ctx context.Context, body converters.CreateUserBody) (*models.User, error)

	ListProjects(ctx context.Context) ([]*models.Project, error)
	GetProject(ctx context.Context, id int) (*models.Project, error)
	CreateProject(ctx context.Context, body converters.CreateProjectBody) (*models.Project, error)
	AddMember(ctx context.Context, projectID, userID int) (*models.Project, error)

	ListTasks(ctx context.Context, projectID int) (*models.GroupedTasks, error)
	CreateTask(ctx context.Context, body converters.CreateTaskBody) (*models.Task, error)
	MoveTask(ctx context.Context, id int, status models.Status) (*models.Task, error)
}

// State is a point in time copy of the store
type State struct {
	Projects       []*models.Project
	CurrentProject *models.Project
	Tasks          *models.GroupedTasks
	Users          []*models.User
	Loading        bool
	Error          string
}

// Store is the single client side source of board data. It is safe for
// concurrent use; network calls never run under the lock.
type Store struct {
	api    API
	logger *slog.Logger

	mu             sync.Mutex
	state          State
	pending        int
	usersLoaded    bool
	projectsLoaded bool
	subscribers    map[int]chan struct{}
	nextSub        int
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used for failed background loads
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates an empty store backed by api
func New(api API, opts ...Option) *Store {
	s := &Store{
		api:         api,
		logger:      slog.Default(),
		state:       State{Tasks: models.NewGroupedTasks()},
		subscribers: make(map[int]chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a deep copy of the current state
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := State{
		Projects: make([]*models.Project, len(s.state.Projects)),
		Tasks:    s.state.Tasks.Clone(),
		Users:    make([]*models.User, len(s.state.Users)),
		Loading:  s.state.Loading,
		Error:    s.state.Error,
	}
	for i, p := range s.state.Projects {
		snap.Projects[i] = p.Clone()
	}
	for i, u := range s.state.Users {
		uc := *u
		snap.Users[i] = &uc
	}
	if s.state.CurrentProject != nil {
		snap.CurrentProject = s.state.CurrentProject.Clone()
	}
	return snap
}

// Subscribe returns a channel that receives a signal after every change.
// Signals coalesce: a slow reader sees one pending signal, not a backlog.
// The returned func cancels the subscription.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan struct{}, 1)
	s.subscribers[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// update applies fn under the lock and then notifies subscribers
func (s *Store) update(fn func(st *State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
	s.notifyLocked()
}

func (s *Store) notifyLocked() {
	for _, ch := range s.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// ClearError drops the transient error message
func (s *Store) ClearError() {
	s.update(func(st *State) { st.Error = "" })
}

// withLoading runs fn with the loading flag raised and the error cleared,
// recording fn's failure as the store error. Loading drops once every
// overlapping call has finished.
func (s *Store) withLoading(fn func() error) error {
	s.update(func(st *State) {
		s.pending++
		st.Loading = true
		st.Error = ""
	})
	defer s.update(func(st *State) {
		s.pending--
		st.Loading = s.pending > 0
	})

	if err := fn(); err != nil {
		s.update(func(st *State) { st.Error = models.Message(err) })
		return err
	}
	return nil
}

// ============================================================================
// Loading
// ============================================================================

// Initialize loads users, then projects, and selects the first project once
// both have loaded, loading its tasks.
func (s *Store) Initialize(ctx context.Context) error {
	if err := s.LoadUsers(ctx); err != nil {
		// the board still works without users; enrichment degrades
		s.logger.Warn("failed to load users", "error", err)
	}
	if err := s.LoadProjects(ctx); err != nil {
		return err
	}
	return s.selectInitialProject(ctx)
}

func (s *Store) selectInitialProject(ctx context.Context) error {
	s.mu.Lock()
	ready := s.usersLoaded && s.projectsLoaded && s.state.CurrentProject == nil && len(s.state.Projects) > 0
	var first *models.Project
	if ready {
		first = s.state.Projects[0].Clone()
	}
	s.mu.Unlock()

	if first == nil {
		return nil
	}
	s.update(func(st *State) { st.CurrentProject = first })
	return s.LoadTasks(ctx, first.ID)
}

// LoadUsers replaces the user list. Failures are returned but not recorded
// as the store error.
func (s *Store) LoadUsers(ctx context.Context) error {
	users, err := s.api.ListUsers(ctx)
	if err != nil {
		return err
	}
	s.update(func(st *State) {
		st.Users = users
		s.usersLoaded = true
	})
	return nil
}

// LoadProjects replaces the project list, refreshing the current project
// from it when it is still listed.
func (s *Store) LoadProjects(ctx context.Context) error {
	return s.withLoading(func() error {
		projects, err := s.api.ListProjects(ctx)
		if err != nil {
			return err
		}
		s.update(func(st *State) {
			st.Projects = projects
			s.projectsLoaded = true
			if st.CurrentProject == nil {
				return
			}
			for _, p := range projects {
				if p.ID == st.CurrentProject.ID {
					st.CurrentProject = p.Clone()
					return
				}
			}
		})
		return nil
	})
}

// LoadProject fetches one project, makes it current and loads its tasks
func (s *Store) LoadProject(ctx context.Context, projectID int) error {
	return s.withLoading(func() error {
		p, err := s.api.GetProject(ctx, projectID)
		if err != nil {
			return err
		}
		s.update(func(st *State) { st.CurrentProject = p })
		return s.LoadTasks(ctx, projectID)
	})
}

// LoadTasks replaces the task groups with the project's tasks
func (s *Store) LoadTasks(ctx context.Context, projectID int) error {
	return s.withLoading(func() error {
		groups, err := s.api.ListTasks(ctx, projectID)
		if err != nil {
			return err
		}
		s.update(func(st *State) { st.Tasks = groups })
		return nil
	})
}

// SetCurrentProject switches the current project without fetching anything
func (s *Store) SetCurrentProject(p *models.Project) {
	var current *models.Project
	if p != nil {
		current = p.Clone()
	}
	s.update(func(st *State) { st.CurrentProject = current })
}

// SelectProject makes a listed project current and loads its tasks
func (s *Store) SelectProject(ctx context.Context, projectID int) error {
	var found *models.Project
	s.mu.Lock()
	for _, p := range s.state.Projects {
		if p.ID == projectID {
			found = p.Clone()
			break
		}
	}
	s.mu.Unlock()

	if found == nil {
		return s.LoadProject(ctx, projectID)
	}
	s.SetCurrentProject(found)
	return s.LoadTasks(ctx, projectID)
}

// ============================================================================
// Mutations
// ============================================================================

// CreateProject creates a project and appends it to the list
func (s *Store) CreateProject(ctx context.Context, body converters.CreateProjectBody) (*models.Project, error) {
	var created *models.Project
	err := s.withLoading(func() error {
		p, err := s.api.CreateProject(ctx, body)
		if err != nil {
			return err
		}
		created = p
		s.update(func(st *State) { st.Projects = append(st.Projects, p.Clone()) })
		return nil
	})
	return created, err
}

// CreateUser creates a user and appends it to the list
func (s *Store) CreateUser(ctx context.Context, body converters.CreateUserBody) (*models.User, error) {
	var created *models.User
	err := s.withLoading(func() error {
		u, err := s.api.CreateUser(ctx, body)
		if err != nil {
			return err
		}
		created = u
		uc := *u
		s.update(func(st *State) { st.Users = append(st.Users, &uc) })
		return nil
	})
	return created, err
}

// CreateTask creates a task and bumps its project's local task counter.
// When it belongs to the current project it is also appended to its status group.
func (s *Store) CreateTask(ctx context.Context, body converters.CreateTaskBody) (*models.Task, error) {
	var created *models.Task
	err := s.withLoading(func() error {
		t, err := s.api.CreateTask(ctx, body)
		if err != nil {
			return err
		}
		created = t
		s.update(func(st *State) {
			for _, p := range st.Projects {
				if p.ID == t.ProjectID {
					p.TaskCount++
				}
			}
			if st.CurrentProject == nil || st.CurrentProject.ID != t.ProjectID {
				return
			}
			st.Tasks.Add(t.Clone())
			st.CurrentProject.TaskCount++
		})
		return nil
	})
	return created, err
}

// AddMemberToProject adds a member and swaps in the refreshed project
func (s *Store) AddMemberToProject(ctx context.Context, projectID, userID int) error {
	return s.withLoading(func() error {
		p, err := s.api.AddMember(ctx, projectID, userID)
		if err != nil {
			return err
		}
		s.update(func(st *State) {
			for i, existing := range st.Projects {
				if existing.ID == projectID {
					st.Projects[i] = p.Clone()
				}
			}
			if st.CurrentProject != nil && st.CurrentProject.ID == projectID {
				st.CurrentProject = p.Clone()
			}
		})
		return nil
	})
}
