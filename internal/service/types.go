package service

// Project is a user-owned container of tasks.
type Project struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Task is a single task item belonging to one project.
// Creation order is reflected by ascending ID.
type Task struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"is_done"`
}
