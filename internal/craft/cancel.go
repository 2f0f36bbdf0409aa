package craft

import "github.com/gravitas-games/foundry/internal/item"

// Two distinct refund policies live here on purpose. Chains are indivisible
// while in flight: cancelling any unfinished chain task tears down the whole
// chain and refunds its reserved raw materials in full. Standalone tasks
// cancelled through the service path refund on a sliding scale, because work
// already done is sunk. Do not unify them.

// CancelResult reports the outcome of a cancellation.
type CancelResult struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
	// Refunded lists what was returned to inventory.
	Refunded map[item.ID]int `json:"refunded,omitempty"`
	// ChainCancelled is set when an entire chain was torn down.
	ChainCancelled bool   `json:"chainCancelled,omitempty"`
	ChainID        string `json:"chainId,omitempty"`
}

// Cancel removes a task from the queue. Chain membership escalates: an
// unfinished chain task cancels the whole chain with a 100% refund of its
// pre-reserved raw materials. A completed chain intermediate is pruned alone
// with no refund. A standalone task refunds its direct recipe inputs in
// full. The operation completes atomically within the current tick.
func (q *Queue) Cancel(taskID string) CancelResult {
	t := q.Task(taskID)
	if t == nil {
		return CancelResult{Reason: "task not found"}
	}

	if t.ChainID != "" {
		ch := q.chains[t.ChainID]
		if t.Status == TaskCompleted {
			// Pruning an already-finished intermediate: entry removed, no
			// refund, chain keeps going.
			q.remove(taskID)
			if ch != nil {
				ch.TaskIDs = removeID(ch.TaskIDs, taskID)
			}
			return CancelResult{OK: true, ChainID: t.ChainID}
		}
		if ch == nil {
			q.remove(taskID)
			return CancelResult{OK: true, ChainID: t.ChainID}
		}
		for _, id := range ch.TaskIDs {
			q.remove(id)
		}
		q.store.AddAll(ch.RawMaterials)
		delete(q.chains, ch.ID)
		return CancelResult{
			OK:             true,
			Refunded:       ch.RawMaterials,
			ChainCancelled: true,
			ChainID:        ch.ID,
		}
	}

	refund := q.directInputs(t)
	q.store.AddAll(refund)
	q.remove(taskID)
	return CancelResult{OK: true, Refunded: refund}
}

// CancelScaled is the service-path cancellation for standalone tasks: the
// refund shrinks with progress, from 100% untouched down to 50% fully
// progressed, floor-rounded per item. Chain tasks escalate to Cancel; the
// chain policy always wins for in-flight chains.
func (q *Queue) CancelScaled(taskID string) CancelResult {
	t := q.Task(taskID)
	if t == nil {
		return CancelResult{Reason: "task not found"}
	}
	if t.ChainID != "" {
		return q.Cancel(taskID)
	}

	factor := 1 - t.Progress/100*0.5
	full := q.directInputs(t)
	refund := make(map[item.ID]int, len(full))
	for id, qty := range full {
		scaled := int(float64(qty) * factor)
		if scaled > 0 {
			refund[id] = scaled
		}
	}
	q.store.AddAll(refund)
	q.remove(taskID)
	return CancelResult{OK: true, Refunded: refund}
}

func (q *Queue) directInputs(t *Task) map[item.ID]int {
	r := q.index.ByID(t.RecipeID)
	if r == nil {
		return nil
	}
	return t.InputsFor(r)
}

func removeID(ids []string, target string) []string {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}
