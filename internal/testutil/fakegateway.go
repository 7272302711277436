// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"taskdeck/internal/service"
)

// FakeGateway is an in-memory implementation of service.Gateway for
// testing. It assigns integer IDs the way the server does and counts calls
// per method so tests can assert exact request traffic.
type FakeGateway struct {
	mu            sync.Mutex
	users         map[string]string // email -> password
	projects      []service.Project
	tasks         map[int][]service.Task // projectID -> tasks
	nextProjectID int
	nextTaskID    int
	calls         map[string]int

	// Error injection for testing
	SignupErr        error
	LoginErr         error
	ListProjectsErr  error
	CreateProjectErr error
	DeleteProjectErr error
	ListTasksErr     error
	CreateTaskErr    error
	SetTaskDoneErr   error
	RenameTaskErr    error
	DeleteTaskErr    error

	// SetTaskDoneErrFor injects a failure for one task ID only, for
	// partial-failure batches.
	SetTaskDoneErrFor map[int]error
}

// Token is the bearer token issued by Login.
const Token = "fake-token"

// NewFakeGateway creates an empty FakeGateway.
func NewFakeGateway() *FakeGateway {
	return &FakeGateway{
		users:             make(map[string]string),
		tasks:             make(map[int][]service.Task),
		nextProjectID:     1,
		nextTaskID:        1,
		calls:             make(map[string]int),
		SetTaskDoneErrFor: make(map[int]error),
	}
}

// Calls returns how many times the named method was invoked.
func (f *FakeGateway) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

// ResetCalls zeroes the per-method call counters.
func (f *FakeGateway) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = make(map[string]int)
}

// AddUser registers an account without going through Signup.
func (f *FakeGateway) AddUser(email, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[email] = password
}

// AddProject seeds a project and returns it.
func (f *FakeGateway) AddProject(name string) service.Project {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := service.Project{ID: f.nextProjectID, Name: name}
	f.nextProjectID++
	f.projects = append(f.projects, p)
	f.tasks[p.ID] = nil
	return p
}

// AddTask seeds a task in a project and returns it.
func (f *FakeGateway) AddTask(projectID int, title string, done bool) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := service.Task{ID: f.nextTaskID, Title: title, Done: done}
	f.nextTaskID++
	f.tasks[projectID] = append(f.tasks[projectID], t)
	return t
}

// TasksOf returns a copy of a project's current tasks.
func (f *FakeGateway) TasksOf(projectID int) []service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]service.Task, len(f.tasks[projectID]))
	copy(out, f.tasks[projectID])
	return out
}

func (f *FakeGateway) count(method string) {
	f.mu.Lock()
	f.calls[method]++
	f.mu.Unlock()
}

// Signup implements service.Gateway.
func (f *FakeGateway) Signup(ctx context.Context, email, password string) error {
	f.count("Signup")
	if f.SignupErr != nil {
		return f.SignupErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.users[email]; exists {
		return &service.AuthError{Message: "Email already registered"}
	}
	f.users[email] = password
	return nil
}

// Login implements service.Gateway.
func (f *FakeGateway) Login(ctx context.Context, email, password string) (string, error) {
	f.count("Login")
	if f.LoginErr != nil {
		return "", f.LoginErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if pw, exists := f.users[email]; !exists || pw != password {
		return "", &service.AuthError{Message: "Incorrect email or password"}
	}
	return Token, nil
}

// ListProjects implements service.Gateway.
func (f *FakeGateway) ListProjects(ctx context.Context) ([]service.Project, error) {
	f.count("ListProjects")
	if f.ListProjectsErr != nil {
		return nil, f.ListProjectsErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]service.Project, len(f.projects))
	copy(out, f.projects)
	return out, nil
}

// CreateProject implements service.Gateway.
func (f *FakeGateway) CreateProject(ctx context.Context, name string) (service.Project, error) {
	f.count("CreateProject")
	if f.CreateProjectErr != nil {
		return service.Project{}, f.CreateProjectErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p := service.Project{ID: f.nextProjectID, Name: name}
	f.nextProjectID++
	f.projects = append(f.projects, p)
	f.tasks[p.ID] = nil
	return p, nil
}

// DeleteProject implements service.Gateway.
func (f *FakeGateway) DeleteProject(ctx context.Context, projectID int) error {
	f.count("DeleteProject")
	if f.DeleteProjectErr != nil {
		return f.DeleteProjectErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.projects {
		if p.ID == projectID {
			f.projects = append(f.projects[:i], f.projects[i+1:]...)
			delete(f.tasks, projectID)
			return nil
		}
	}
	return &service.NotFoundError{Message: "Project not found"}
}

// ListTasks implements service.Gateway.
func (f *FakeGateway) ListTasks(ctx context.Context, projectID int) ([]service.Task, error) {
	f.count("ListTasks")
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	tasks, exists := f.tasks[projectID]
	if !exists {
		return nil, &service.NotFoundError{Message: "Project not found"}
	}
	out := make([]service.Task, len(tasks))
	copy(out, tasks)
	return out, nil
}

// CreateTask implements service.Gateway.
func (f *FakeGateway) CreateTask(ctx context.Context, projectID int, title string) (service.Task, error) {
	f.count("CreateTask")
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.tasks[projectID]; !exists {
		return service.Task{}, &service.NotFoundError{Message: "Project not found"}
	}
	t := service.Task{ID: f.nextTaskID, Title: title}
	f.nextTaskID++
	f.tasks[projectID] = append(f.tasks[projectID], t)
	return t, nil
}

// SetTaskDone implements service.Gateway.
func (f *FakeGateway) SetTaskDone(ctx context.Context, taskID int, done bool) error {
	f.count("SetTaskDone")
	if f.SetTaskDoneErr != nil {
		return f.SetTaskDoneErr
	}
	if err := f.SetTaskDoneErrFor[taskID]; err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for pid, tasks := range f.tasks {
		for i, t := range tasks {
			if t.ID == taskID {
				f.tasks[pid][i].Done = done
				return nil
			}
		}
	}
	return &service.NotFoundError{Message: "Task not found"}
}

// RenameTask implements service.Gateway.
func (f *FakeGateway) RenameTask(ctx context.Context, taskID int, title string) error {
	f.count("RenameTask")
	if f.RenameTaskErr != nil {
		return f.RenameTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for pid, tasks := range f.tasks {
		for i, t := range tasks {
			if t.ID == taskID {
				f.tasks[pid][i].Title = title
				return nil
			}
		}
	}
	return &service.NotFoundError{Message: "Task not found"}
}

// DeleteTask implements service.Gateway.
func (f *FakeGateway) DeleteTask(ctx context.Context, taskID int) error {
	f.count("DeleteTask")
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for pid, tasks := range f.tasks {
		for i, t := range tasks {
			if t.ID == taskID {
				f.tasks[pid] = append(tasks[:i], tasks[i+1:]...)
				return nil
			}
		}
	}
	return &service.NotFoundError{Message: "Task not found"}
}

// ConfirmAll is a Confirmer that approves every prompt.
func ConfirmAll(string) bool { return true }

// ConfirmNone is a Confirmer that declines every prompt.
func ConfirmNone(string) bool { return false }

// ConfirmRecorder approves every prompt and records them in order.
type ConfirmRecorder struct {
	mu      sync.Mutex
	Prompts []string
}

// Confirm records the prompt and approves it.
func (r *ConfirmRecorder) Confirm(prompt string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Prompts = append(r.Prompts, prompt)
	return true
}

// String implements fmt.Stringer for test failure output.
func (r *ConfirmRecorder) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fmt.Sprintf("%v", r.Prompts)
}
