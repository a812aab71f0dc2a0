package telm

import "time"

// Sub describes the set of recurring message sources a model wants active.
// A nil Sub means none. Two subscriptions with the same id are the same
// subscription: an id that stays in the declared set across updates keeps
// its timer running undisturbed, and an id that disappears stops firing.
type Sub interface {
	isSub()
}

type everySub struct {
	id     string
	period time.Duration
	gen    func() Msg
}

type subBatch []Sub

func (everySub) isSub() {}
func (subBatch) isSub() {}

// Every returns a subscription that delivers gen's message every period.
// The id must be non-empty and identifies the subscription across refreshes.
func Every(id string, period time.Duration, gen func() Msg) Sub {
	if id == "" {
		panic("telm: subscription id must be non-empty")
	}
	if period <= 0 {
		panic("telm: subscription period must be positive")
	}
	return everySub{id, period, gen}
}

// SubBatch combines subscriptions. Nil entries are dropped; if nothing
// remains, SubBatch returns nil.
func SubBatch(subs ...Sub) Sub {
	kept := subs[:0]
	for _, s := range subs {
		if s != nil {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return subBatch(kept)
}

// SubMap returns a subscription with the same structure as s whose produced
// messages are passed through f. SubMap of a nil subscription is nil.
func SubMap(s Sub, f func(Msg) Msg) Sub {
	switch s := s.(type) {
	case nil:
		return nil
	case everySub:
		gen := s.gen
		return everySub{s.id, s.period, func() Msg { return mapMsg(gen(), f) }}
	case subBatch:
		mapped := make([]Sub, len(s))
		for i, sub := range s {
			mapped[i] = SubMap(sub, f)
		}
		return subBatch(mapped)
	default:
		panic("unreachable")
	}
}

// flattenSub reduces a subscription tree to its interval leaves, preserving
// declaration order.
func flattenSub(s Sub) []everySub {
	var leaves []everySub
	var walk func(Sub)
	walk = func(s Sub) {
		switch s := s.(type) {
		case nil:
		case everySub:
			leaves = append(leaves, s)
		case subBatch:
			for _, sub := range s {
				walk(sub)
			}
		}
	}
	walk(s)
	return leaves
}
