package domain

// Task is an item of the signed-in user's task list.
type Task struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	IsCompleted bool   `json:"isCompleted"`
}

func (t Task) GetID() int64 { return t.ID }

// NewTask is the body of POST /Task.
type NewTask struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// TaskPatch is the body of PATCH /Task/:id; nil fields are left alone.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Body        *string `json:"body,omitempty"`
	IsCompleted *bool   `json:"isCompleted,omitempty"`
}

// Apply returns t with the non-nil fields of p written over it.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Body != nil {
		t.Body = *p.Body
	}
	if p.IsCompleted != nil {
		t.IsCompleted = *p.IsCompleted
	}
	return t
}
