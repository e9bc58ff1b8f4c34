package domain

// Task is immutable reference data: something a user can do and post about.
type Task struct {
	TaskID      int    `db:"task_id" json:"task_id"`
	Title       string `db:"title" json:"title"`
	Description string `db:"description" json:"description"`
	Active      bool   `db:"active" json:"active"`
}

// Completion records that a user has fulfilled a task. Composite key; at most
// one completion per (user, task) pair is meaningful.
type Completion struct {
	CompletedBy   string `db:"completed_by" json:"completed_by"`
	CompletedTask int    `db:"completed_task" json:"completed_task"`
}
