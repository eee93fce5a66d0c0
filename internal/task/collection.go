package task

import "strings"

// Collection is the ordered in-memory task list. Position in the collection
// is how every operation addresses a task.
type Collection struct {
	tasks []Task
}

// NewCollection takes ownership of tasks. Tasks without an ID get one.
func NewCollection(tasks []Task) *Collection {
	c := &Collection{tasks: make([]Task, 0, len(tasks))}
	for _, t := range tasks {
		if t.ID == "" {
			t.ID = newID()
		}
		c.tasks = append(c.tasks, t)
	}
	return c
}

func (c *Collection) Len() int {
	return len(c.tasks)
}

// Tasks returns a copy of the collection in order.
func (c *Collection) Tasks() []Task {
	out := make([]Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

func (c *Collection) At(index int) (Task, error) {
	if !c.valid(index) {
		return Task{}, ErrIndexOutOfRange
	}
	return c.tasks[index], nil
}

// IndexOf returns the current position of the task with id, or -1.
func (c *Collection) IndexOf(id string) int {
	for i, t := range c.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Add appends a pending task. The title is trimmed before validation.
func (c *Collection) Add(title, dueDate, priority string) (Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Task{}, ErrEmptyTitle
	}
	if _, err := ParseDate(dueDate); err != nil {
		return Task{}, err
	}
	p, err := ParsePriority(priority)
	if err != nil {
		return Task{}, err
	}
	t := Task{
		ID:       newID(),
		Title:    title,
		DueDate:  strings.TrimSpace(dueDate),
		Priority: p,
	}
	c.tasks = append(c.tasks, t)
	return t, nil
}

func (c *Collection) Toggle(index int) (Task, error) {
	if !c.valid(index) {
		return Task{}, ErrIndexOutOfRange
	}
	c.tasks[index].Completed = !c.tasks[index].Completed
	return c.tasks[index], nil
}

// Remove deletes the task at index; later tasks shift down by one.
func (c *Collection) Remove(index int) (Task, error) {
	if !c.valid(index) {
		return Task{}, ErrIndexOutOfRange
	}
	t := c.tasks[index]
	c.tasks = append(c.tasks[:index], c.tasks[index+1:]...)
	return t, nil
}

// Update applies req to the task at index. Nothing changes unless every
// resolved field is valid. Completion state is kept.
func (c *Collection) Update(index int, req EditRequest) (Task, error) {
	if !c.valid(index) {
		return Task{}, ErrIndexOutOfRange
	}
	cur := c.tasks[index]
	fields, err := req.resolve(cur)
	if err != nil {
		return Task{}, err
	}
	cur.Title = fields.title
	cur.DueDate = fields.dueDate
	cur.Priority = fields.priority
	c.tasks[index] = cur
	return cur, nil
}

// Stats reports how many tasks are completed out of the total.
func (c *Collection) Stats() (completed, total int) {
	return CountCompleted(c.tasks), len(c.tasks)
}

func CountCompleted(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

func (c *Collection) valid(index int) bool {
	return index >= 0 && index < len(c.tasks)
}
