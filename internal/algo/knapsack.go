package algo

import (
	"container/heap"
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/algoviz/internal/stepper"
)

// MaxKnapsackItems bounds the decision tree.
const MaxKnapsackItems = 20

// Node branches in the decision tree.
const (
	BranchRoot    = "root"
	BranchWith    = "with"
	BranchWithout = "without"
)

// Item is one knapsack candidate. Index is its position in the caller's
// list; Ratio is Value/Weight. Both are filled in by NewKnapsack.
type Item struct {
	Index  int     `json:"index" yaml:"-"`
	Weight int     `json:"weight" yaml:"weight"`
	Value  int     `json:"value" yaml:"value"`
	Ratio  float64 `json:"ratio" yaml:"-"`
}

func (it Item) String() string { return fmt.Sprintf("[w:%d, v:%d]", it.Weight, it.Value) }

// Node is a partial decision: items 0..Level-1 (ratio order) are decided.
type Node struct {
	ID     int     `json:"id"`
	Parent int     `json:"parent"`
	Level  int     `json:"level"`
	Profit int     `json:"profit"`
	Weight int     `json:"weight"`
	Bound  float64 `json:"bound"`
	Branch string  `json:"branch"`
	Taken  []int   `json:"taken,omitempty"`
}

func (n *Node) clone() Node {
	c := *n
	c.Taken = cloneInts(n.Taken)
	return c
}

// KnapsackPayload carries the node a step is about plus the incumbent.
type KnapsackPayload struct {
	Node       Node `json:"node"`
	BestProfit int  `json:"best_profit"`
	QueueLen   int  `json:"queue_len"`
}

// KnapsackResult is the completion value of a Knapsack run. Items holds
// original item indices of the best selection found.
type KnapsackResult struct {
	Capacity   int   `json:"capacity"`
	BestProfit int   `json:"best_profit"`
	Weight     int   `json:"weight"`
	Items      []int `json:"items"`
}

// Knapsack runs best-first branch & bound for 0/1 knapsack.
type Knapsack struct {
	*stepper.Machine
	capacity  int
	items     []Item
	queue     nodeQueue
	best      int
	bestTaken []int
	nextID    int
}

// NewKnapsack validates the instance and sorts items by ratio, highest
// first. The bound relies on that order.
func NewKnapsack(capacity int, items []Item) (*Knapsack, error) {
	if capacity <= 0 {
		return nil, Invalid("capacity", "Capacity must be a positive integer, got %d.", capacity)
	}
	if len(items) == 0 {
		return nil, Invalid("items", "No items provided.")
	}
	if len(items) > MaxKnapsackItems {
		return nil, Invalid("items", "Too many items (%d). Please use %d or less.", len(items), MaxKnapsackItems)
	}
	sorted := make([]Item, len(items))
	for i, it := range items {
		if it.Weight <= 0 {
			return nil, Invalid("items", "Item %d: weight must be positive, got %d.", i+1, it.Weight)
		}
		if it.Value < 0 {
			return nil, Invalid("items", "Item %d: value must be non-negative, got %d.", i+1, it.Value)
		}
		sorted[i] = Item{Index: i, Weight: it.Weight, Value: it.Value, Ratio: float64(it.Value) / float64(it.Weight)}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Ratio > sorted[j].Ratio })

	k := &Knapsack{capacity: capacity, items: sorted}
	k.Machine = stepper.NewMachine(NameKnapsack, &bbFrame{k: k})
	return k, nil
}

func (k *Knapsack) Capacity() int   { return k.capacity }
func (k *Knapsack) BestProfit() int { return k.best }
func (k *Knapsack) QueueLen() int   { return k.queue.Len() }

// Items returns the items in ratio order.
func (k *Knapsack) Items() []Item {
	c := make([]Item, len(k.items))
	copy(c, k.items)
	return c
}

// Solution returns the completion value; ok is false until the run is done.
func (k *Knapsack) Solution() (KnapsackResult, bool) {
	r, ok := k.Result().(KnapsackResult)
	return r, ok
}

// Bound is the fractional relaxation of the subtree below a node at level
// with the given profit and weight: whole items are added in ratio order
// while they fit, then a fraction of the first one that does not.
func (k *Knapsack) Bound(level, profit, weight int) float64 {
	if weight > k.capacity {
		return 0
	}
	bound := float64(profit)
	total := weight
	for i := level; i < len(k.items); i++ {
		it := k.items[i]
		if total+it.Weight <= k.capacity {
			total += it.Weight
			bound += float64(it.Value)
			continue
		}
		bound += float64(k.capacity-total) * it.Ratio
		break
	}
	return bound
}

func (k *Knapsack) newNode(parent *Node, branch string, profit, weight int, taken []int) *Node {
	k.nextID++
	n := &Node{ID: k.nextID, Level: 0, Profit: profit, Weight: weight, Branch: branch, Taken: taken}
	if parent != nil {
		n.Parent = parent.ID
		n.Level = parent.Level + 1
	}
	n.Bound = k.Bound(n.Level, profit, weight)
	return n
}

func (k *Knapsack) event(kind stepper.Kind, action string, n *Node, format string, args ...any) *stepper.Event {
	p := KnapsackPayload{BestProfit: k.best, QueueLen: k.queue.Len()}
	if n != nil {
		p.Node = n.clone()
	}
	return stepper.NewEvent(kind, action, p, format, args...)
}

func (k *Knapsack) result() KnapsackResult {
	r := KnapsackResult{Capacity: k.capacity, BestProfit: k.best, Items: cloneInts(k.bestTaken)}
	sort.Ints(r.Items)
	for _, idx := range r.Items {
		for _, it := range k.items {
			if it.Index == idx {
				r.Weight += it.Weight
			}
		}
	}
	if r.Items == nil {
		r.Items = []int{}
	}
	return r
}

type bbFrame struct {
	k   *Knapsack
	cur *Node
	pc  int
}

func (f *bbFrame) Resume(any) stepper.Transition {
	k := f.k
	for {
		switch f.pc {
		case 0:
			parts := make([]string, len(k.items))
			for i, it := range k.items {
				parts[i] = it.String()
			}
			f.pc = 1
			return stepper.Yield(k.event(stepper.KindInfo, "sorted", nil,
				"Starting knapsack. Capacity=%d. Sorted items (by v/w): %s", k.capacity, strings.Join(parts, ", ")))
		case 1:
			root := k.newNode(nil, BranchRoot, 0, 0, nil)
			heap.Push(&k.queue, root)
			f.pc = 2
			return stepper.Yield(k.event(stepper.KindInfo, "root", root, "Root node bound = %.2f", root.Bound))
		case 2:
			if k.queue.Len() == 0 {
				res := k.result()
				return stepper.ReturnYield(res, k.event(stepper.KindSuccess, "finished", nil, "Finished! Max Profit: %d", res.BestProfit))
			}
			f.cur = heap.Pop(&k.queue).(*Node)
			f.pc = 3
			return stepper.Yield(k.event(stepper.KindTry, "visit", f.cur,
				"Visiting node (Lvl %d, P: %d, W: %d)", f.cur.Level, f.cur.Profit, f.cur.Weight))
		case 3:
			cur := f.cur
			if cur.Bound <= float64(k.best) {
				f.pc = 2
				return stepper.Yield(k.event(stepper.KindPrune, "prune", cur,
					"PRUNING: Bound (%.2f) is not > Max Profit (%d)", cur.Bound, k.best))
			}
			if cur.Level == len(k.items) {
				f.pc = 2
				return stepper.Yield(k.event(stepper.KindInfo, "leaf", cur, "Leaf reached (P: %d, W: %d)", cur.Profit, cur.Weight))
			}
			it := k.items[cur.Level]
			withWeight := cur.Weight + it.Weight
			if withWeight > k.capacity {
				f.pc = 5
				return stepper.Yield(k.event(stepper.KindBacktrack, "over-capacity", cur,
					"Cannot take item %d: Over capacity (%d > %d)", it.Index+1, withWeight, k.capacity))
			}
			f.pc = 4
			if withProfit := cur.Profit + it.Value; withProfit > k.best {
				k.best = withProfit
				k.bestTaken = append(cloneInts(cur.Taken), it.Index)
				return stepper.Yield(k.event(stepper.KindSuccess, "new-best", cur, "NEW MAX PROFIT FOUND: %d", k.best))
			}
		case 4:
			cur := f.cur
			it := k.items[cur.Level]
			taken := append(cloneInts(cur.Taken), it.Index)
			child := k.newNode(cur, BranchWith, cur.Profit+it.Value, cur.Weight+it.Weight, taken)
			f.pc = 5
			return stepper.Yield(f.offer(child, "With"))
		case 5:
			cur := f.cur
			child := k.newNode(cur, BranchWithout, cur.Profit, cur.Weight, cloneInts(cur.Taken))
			f.pc = 2
			return stepper.Yield(f.offer(child, "Without"))
		default:
			panic(badPC("bbFrame", f.pc))
		}
	}
}

// offer enqueues child if its bound beats the incumbent, else prunes it.
func (f *bbFrame) offer(child *Node, label string) *stepper.Event {
	k := f.k
	if child.Bound > float64(k.best) {
		heap.Push(&k.queue, child)
		return k.event(stepper.KindPlace, "enqueue", child, "Queue '%s' (Lvl %d): Bound %.2f", label, child.Level, child.Bound)
	}
	return k.event(stepper.KindPrune, "prune-child", child, "Prune '%s' (Lvl %d): Bound %.2f <= %d", label, child.Level, child.Bound, k.best)
}

// nodeQueue is a max-heap on Bound; equal bounds pop the newest node first.
type nodeQueue []*Node

func (q nodeQueue) Len() int { return len(q) }
func (q nodeQueue) Less(i, j int) bool {
	if q[i].Bound != q[j].Bound {
		return q[i].Bound > q[j].Bound
	}
	return q[i].ID > q[j].ID
}
func (q nodeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *nodeQueue) Push(x any)   { *q = append(*q, x.(*Node)) }
func (q *nodeQueue) Pop() any {
	old := *q
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return x
}
