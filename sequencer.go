package gocube

// moveQueue is an unbounded FIFO of pending moves.
type moveQueue struct {
	items []Move
}

func (q *moveQueue) push(m Move) {
	q.items = append(q.items, m)
}

// pop removes and returns the oldest move.
func (q *moveQueue) pop() (Move, bool) {
	if len(q.items) == 0 {
		return Move{}, false
	}
	m := q.items[0]
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = nil // let the backing array go
	}
	return m, true
}

func (q *moveQueue) len() int {
	return len(q.items)
}

func (q *moveQueue) snapshot() []Move {
	return append([]Move(nil), q.items...)
}

func (q *moveQueue) clear() {
	q.items = nil
}
