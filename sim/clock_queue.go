package sim

import "container/heap"

// ClockQueue is an indexed min-heap of per-site absolute deadlines.
// Ordering: deadline → site index, so ties resolve to the lowest site.
type ClockQueue struct {
	sites    []int     // heap order
	pos      []int     // site -> index in sites
	deadline []float64 // site -> absolute deadline
}

// NewClockQueue creates a queue from initial deadlines, one per site.
func NewClockQueue(deadlines []float64) *ClockQueue {
	n := len(deadlines)
	q := &ClockQueue{
		sites:    make([]int, n),
		pos:      make([]int, n),
		deadline: make([]float64, n),
	}
	copy(q.deadline, deadlines)
	for i := range q.sites {
		q.sites[i] = i
		q.pos[i] = i
	}
	heap.Init(q)
	return q
}

// Len implements heap.Interface
func (q *ClockQueue) Len() int {
	return len(q.sites)
}

// Less implements heap.Interface with deterministic ordering
func (q *ClockQueue) Less(i, j int) bool {
	si, sj := q.sites[i], q.sites[j]
	if q.deadline[si] != q.deadline[sj] {
		return q.deadline[si] < q.deadline[sj]
	}
	return si < sj
}

// Swap implements heap.Interface
func (q *ClockQueue) Swap(i, j int) {
	q.sites[i], q.sites[j] = q.sites[j], q.sites[i]
	q.pos[q.sites[i]] = i
	q.pos[q.sites[j]] = j
}

// Push implements heap.Interface. Sites are fixed at construction, so the
// queue never grows; Push only restores an entry removed by Pop.
func (q *ClockQueue) Push(x interface{}) {
	site := x.(int)
	q.pos[site] = len(q.sites)
	q.sites = append(q.sites, site)
}

// Pop implements heap.Interface
func (q *ClockQueue) Pop() interface{} {
	old := q.sites
	n := len(old)
	site := old[n-1]
	q.sites = old[0 : n-1]
	q.pos[site] = -1
	return site
}

// Peek returns the site with the earliest deadline and that deadline.
// Returns -1 when the queue is empty.
func (q *ClockQueue) Peek() (int, float64) {
	if len(q.sites) == 0 {
		return -1, 0
	}
	site := q.sites[0]
	return site, q.deadline[site]
}

// Deadline returns the absolute deadline of a site.
func (q *ClockQueue) Deadline(site int) float64 {
	return q.deadline[site]
}

// Reschedule moves a site's deadline and restores heap order.
func (q *ClockQueue) Reschedule(site int, deadline float64) {
	q.deadline[site] = deadline
	heap.Fix(q, q.pos[site])
}
