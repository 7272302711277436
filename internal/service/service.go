// Package service defines the gateway-agnostic interface for project and
// task operations.
package service

import "context"

// Gateway defines the interface to the remote task service.
// All HTTP calls go through this interface. The state engine and
// commands never import the HTTP client directly.
type Gateway interface {
	// Signup creates an account. A successful signup does not log in.
	Signup(ctx context.Context, email, password string) error

	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, email, password string) (string, error)

	// ListProjects returns all projects in server order.
	ListProjects(ctx context.Context) ([]Project, error)

	// CreateProject creates a project and returns it as the server stored it.
	CreateProject(ctx context.Context, name string) (Project, error)

	// DeleteProject deletes a project by ID.
	DeleteProject(ctx context.Context, projectID int) error

	// ListTasks returns all tasks of a project in server order.
	ListTasks(ctx context.Context, projectID int) ([]Task, error)

	// CreateTask creates a task and returns it as the server stored it.
	CreateTask(ctx context.Context, projectID int, title string) (Task, error)

	// SetTaskDone sets a task's completion state to the given value.
	// Idempotent when retried with the same value.
	SetTaskDone(ctx context.Context, taskID int, done bool) error

	// RenameTask sets a task's title.
	RenameTask(ctx context.Context, taskID int, title string) error

	// DeleteTask deletes a task by ID.
	DeleteTask(ctx context.Context, taskID int) error
}
