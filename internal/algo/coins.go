package algo

import (
	"sort"

	"github.com/san-kum/algoviz/internal/stepper"
)

// DefaultDenominations is the canonical set for which greedy is optimal.
// Greedy is not optimal for arbitrary sets; that is expected behavior.
var DefaultDenominations = []int{100, 50, 20, 10, 5, 2, 1}

// CoinPayload is a snapshot of the change being built.
type CoinPayload struct {
	Amount    int         `json:"amount"`
	Remaining int         `json:"remaining"`
	Coin      int         `json:"coin"`
	Counts    map[int]int `json:"counts"`
}

// ChangeResult is the completion value of a CoinChange run.
type ChangeResult struct {
	Amount int         `json:"amount"`
	Counts map[int]int `json:"counts"`
	Coins  int         `json:"coins"`
}

// CoinChange animates greedy change making.
type CoinChange struct {
	*stepper.Machine
	amount    int
	denoms    []int
	remaining int
	counts    map[int]int
}

// NewCoinChange validates amount and denominations. A nil denomination
// list selects DefaultDenominations.
func NewCoinChange(amount int, denominations []int) (*CoinChange, error) {
	if amount < 0 {
		return nil, Invalid("amount", "Amount must be a non-negative integer, got %d.", amount)
	}
	if denominations == nil {
		denominations = DefaultDenominations
	}
	if err := ValidateDenominations(denominations); err != nil {
		return nil, err
	}
	cc := &CoinChange{
		amount:    amount,
		denoms:    cloneInts(denominations),
		remaining: amount,
		counts:    make(map[int]int, len(denominations)),
	}
	for _, d := range cc.denoms {
		cc.counts[d] = 0
	}
	cc.Machine = stepper.NewMachine(NameCoins, &coinFrame{cc: cc})
	return cc, nil
}

// ValidateDenominations requires a non-empty, positive, strictly
// descending list.
func ValidateDenominations(denoms []int) error {
	if len(denoms) == 0 {
		return Invalid("denominations", "At least one denomination is required.")
	}
	for i, d := range denoms {
		if d <= 0 {
			return Invalid("denominations", "Denominations must be positive, got %d.", d)
		}
		if i > 0 && d >= denoms[i-1] {
			return Invalid("denominations", "Denominations must be strictly descending: %s.", formatInts(denoms))
		}
	}
	return nil
}

func (cc *CoinChange) Amount() int          { return cc.amount }
func (cc *CoinChange) Remaining() int       { return cc.remaining }
func (cc *CoinChange) Denominations() []int { return cloneInts(cc.denoms) }

// Counts returns a copy of the per-denomination counts.
func (cc *CoinChange) Counts() map[int]int {
	c := make(map[int]int, len(cc.counts))
	for k, v := range cc.counts {
		c[k] = v
	}
	return c
}

// Change returns the completion value; ok is false until the run is done.
func (cc *CoinChange) Change() (ChangeResult, bool) {
	r, ok := cc.Result().(ChangeResult)
	return r, ok
}

// Paid is sum(count[d]*d); Paid()+Remaining() always equals Amount().
func (cc *CoinChange) Paid() int {
	total := 0
	for d, n := range cc.counts {
		total += d * n
	}
	return total
}

func (cc *CoinChange) payload(coin int) CoinPayload {
	return CoinPayload{Amount: cc.amount, Remaining: cc.remaining, Coin: coin, Counts: cc.Counts()}
}

func (cc *CoinChange) result() ChangeResult {
	r := ChangeResult{Amount: cc.amount, Counts: cc.Counts()}
	for _, n := range cc.counts {
		r.Coins += n
	}
	return r
}

// SortedCounts lists denominations with their counts, largest first.
func SortedCounts(counts map[int]int) [][2]int {
	out := make([][2]int, 0, len(counts))
	for d, n := range counts {
		out = append(out, [2]int{d, n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] > out[j][0] })
	return out
}

type coinFrame struct {
	cc *CoinChange
	k  int
	pc int
}

func (f *coinFrame) Resume(any) stepper.Transition {
	cc := f.cc
	switch f.pc {
	case 0:
		f.pc = 1
		return stepper.Yield(stepper.NewEvent(stepper.KindInfo, "start", cc.payload(0),
			"Starting with amount: %d", cc.amount))
	case 1:
		if f.k == len(cc.denoms) {
			res := cc.result()
			return stepper.ReturnYield(res, stepper.NewEvent(stepper.KindSuccess, "finished", cc.payload(0),
				"Finished! %d coins used.", res.Coins))
		}
		coin := cc.denoms[f.k]
		f.pc = 2
		return stepper.Yield(stepper.NewEvent(stepper.KindTry, "checking", cc.payload(coin),
			"Checking coin: %d. Remaining: %d", coin, cc.remaining))
	case 2:
		coin := cc.denoms[f.k]
		if cc.remaining >= coin {
			cc.remaining -= coin
			cc.counts[coin]++
			return stepper.Yield(stepper.NewEvent(stepper.KindPlace, "take", cc.payload(coin),
				"Took %d. Remaining: %d", coin, cc.remaining))
		}
		f.k++
		f.pc = 1
		return stepper.Yield(stepper.NewEvent(stepper.KindInfo, "denomination-done", cc.payload(coin),
			"Done with %d.", coin))
	}
	panic(badPC("coinFrame", f.pc))
}
