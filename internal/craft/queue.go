package craft

import (
	"math"

	"github.com/google/uuid"

	"github.com/gravitas-games/foundry/internal/item"
	"github.com/gravitas-games/foundry/internal/recipe"
)

// Queue is the ordered, capacity-bounded crafting queue. Exactly one task,
// the head, advances per tick; bounding active work to a single task keeps
// allocation contention trivial. All operations are synchronous and
// complete atomically within the tick that triggered them.
type Queue struct {
	index   *recipe.Index
	store   *item.Store
	maxSize int

	now    float64
	tasks  []*Task
	chains map[string]*Chain
}

// NewQueue creates an empty crafting queue over the given recipe index and
// inventory store.
func NewQueue(index *recipe.Index, store *item.Store, maxSize int) *Queue {
	if maxSize <= 0 {
		maxSize = 50
	}
	return &Queue{
		index:   index,
		store:   store,
		maxSize: maxSize,
		chains:  make(map[string]*Chain),
	}
}

// Len returns the number of queued entries, completed chain intermediates
// included: they occupy slots until their chain finishes or they are pruned.
func (q *Queue) Len() int { return len(q.tasks) }

// CanAccept reports whether n more tasks fit.
func (q *Queue) CanAccept(n int) bool { return len(q.tasks)+n <= q.maxSize }

// Tasks returns the queued tasks in order. Callers must not mutate them;
// the queue exclusively owns task lifetime.
func (q *Queue) Tasks() []*Task { return q.tasks }

// Task returns a queued task by ID, or nil.
func (q *Queue) Task(id string) *Task {
	for _, t := range q.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Chain returns a chain by ID, or nil. Completed chains remain queryable
// until a new chain reuses the slot count.
func (q *Queue) Chain(id string) *Chain { return q.chains[id] }

// Enqueue appends a standalone task. Returns false without mutation when
// the queue is full. Input deduction is the creator's responsibility and
// happens exactly once, at task creation, never at completion.
func (q *Queue) Enqueue(t *Task) bool {
	if !q.CanAccept(1) {
		return false
	}
	q.tasks = append(q.tasks, t)
	return true
}

// EnqueueChain inserts a whole dependency chain atomically. Fails with ""
// when the queue lacks room for all tasks or the plan's raw-material
// reservation can no longer be covered; no partial insertion ever happens.
func (q *Queue) EnqueueChain(plan *ChainPlan) string {
	if plan == nil || len(plan.Tasks) == 0 {
		return ""
	}
	if !q.CanAccept(len(plan.Tasks)) {
		return ""
	}
	if !q.store.ConsumeAll(plan.RawMaterials) {
		return ""
	}

	ch := &Chain{
		ID:           uuid.NewString(),
		Name:         plan.Name,
		Status:       ChainPending,
		RawMaterials: plan.RawMaterials,
	}
	for _, t := range plan.Tasks {
		t.ChainID = ch.ID
		ch.TaskIDs = append(ch.TaskIDs, t.ID)
	}
	q.tasks = append(q.tasks, plan.Tasks...)
	q.chains[ch.ID] = ch
	return ch.ID
}

// Completion describes one finished task from an Advance call.
type Completion struct {
	Task *Task
	// Committed lists what reached inventory; empty for chain
	// intermediates, whose output is discarded (the chain reserved its raw
	// materials upstream).
	Committed map[item.ID]int
	// ChainCompleted is set when this was the chain's final task.
	ChainCompleted bool
	ChainID        string
}

// Advance moves simulated time forward and progresses the head task only.
// On reaching 100% the task commits: standalone tasks add their recipe
// outputs to inventory, chain intermediates discard theirs, and the chain's
// final task writes the target item and completes the chain.
func (q *Queue) Advance(dt float64) []Completion {
	q.now += dt
	t := q.head()
	if t == nil {
		return nil
	}
	if t.Status == TaskPending {
		t.Status = TaskCrafting
		t.StartTime = q.now - dt
	}
	if t.CraftingTime > 0 {
		t.Progress = math.Min(100, t.Progress+dt/t.CraftingTime*100)
	} else {
		t.Progress = 100
	}
	if t.Progress < 100 {
		return nil
	}
	return q.complete(t)
}

// head returns the first non-completed task; completed chain intermediates
// are skipped in place.
func (q *Queue) head() *Task {
	for _, t := range q.tasks {
		if t.Status != TaskCompleted {
			return t
		}
	}
	return nil
}

func (q *Queue) complete(t *Task) []Completion {
	t.Status = TaskCompleted
	t.Progress = 100

	if t.ChainID == "" {
		committed := make(map[item.ID]int)
		if r := q.index.ByID(t.RecipeID); r != nil {
			for id, qty := range r.Out {
				committed[id] = qty * t.Crafts
			}
			q.store.AddAll(committed)
		}
		q.remove(t.ID)
		return []Completion{{Task: t, Committed: committed}}
	}

	ch := q.chains[t.ChainID]
	if ch == nil {
		q.remove(t.ID)
		return []Completion{{Task: t, ChainID: t.ChainID}}
	}

	if t.Intermediate {
		// Output discarded: the chain's raw materials were reserved at
		// creation and only the final task touches inventory.
		ch.TotalProgress = q.chainProgress(ch)
		return []Completion{{Task: t, ChainID: ch.ID}}
	}

	q.store.ApplyDelta(t.ItemID, t.Quantity)
	ch.Status = ChainCompleted
	ch.TotalProgress = 100
	for _, id := range ch.TaskIDs {
		q.remove(id)
	}
	return []Completion{{
		Task:           t,
		Committed:      map[item.ID]int{t.ItemID: t.Quantity},
		ChainCompleted: true,
		ChainID:        ch.ID,
	}}
}

func (q *Queue) chainProgress(ch *Chain) float64 {
	if len(ch.TaskIDs) == 0 {
		return 0
	}
	done := 0
	for _, id := range ch.TaskIDs {
		if t := q.Task(id); t != nil && t.Status == TaskCompleted {
			done++
		}
	}
	return float64(done) / float64(len(ch.TaskIDs)) * 100
}

func (q *Queue) remove(taskID string) {
	for i, t := range q.tasks {
		if t.ID == taskID {
			q.tasks = append(q.tasks[:i], q.tasks[i+1:]...)
			return
		}
	}
}
