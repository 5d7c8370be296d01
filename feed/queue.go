package feed

// Queue is a FIFO of items that admits every id at most once over its lifetime
// Not safe for concurrent use
type Queue struct {
	items []Item
	seen  map[string]bool
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{seen: make(map[string]bool)}
}

// Offer appends items whose ids were never seen and returns how many were added
func (q *Queue) Offer(items []Item) int {
	added := 0
	for _, it := range items {
		if q.seen[it.ID] {
			continue
		}
		q.seen[it.ID] = true
		q.items = append(q.items, it)
		added++
	}
	return added
}

// Pop removes and returns the head item
func (q *Queue) Pop() (Item, bool) {
	if len(q.items) == 0 {
		return Item{}, false
	}
	it := q.items[0]
	q.items = q.items[1:]
	return it, true
}

// PushFront returns a previously popped item to the head
func (q *Queue) PushFront(it Item) {
	q.items = append([]Item{it}, q.items...)
}

// Len returns the number of queued items
func (q *Queue) Len() int {
	return len(q.items)
}
