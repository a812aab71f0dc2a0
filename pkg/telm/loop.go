package telm

import (
	"time"

	"src.telm.sh/pkg/term"
)

// loop is the heart of the runtime. Each iteration drains async results,
// fires due timers and subscriptions, dispatches at most one terminal event,
// renders if the model changed, then sleeps until the earliest upcoming
// deadline.
func (p *Program) loop() error {
	if err := p.feedCmd(p.model.Init()); err != nil {
		return err
	}
	p.refreshSubs()
	p.dirty = true

	for !p.quitting {
		if err := p.drainAsync(); err != nil {
			return err
		}
		if p.quitting {
			break
		}
		if err := p.fireTicks(); err != nil {
			return err
		}
		if p.quitting {
			break
		}
		if err := p.fireSubs(); err != nil {
			return err
		}
		if p.quitting {
			break
		}

		if p.dirty {
			if err := p.renderer.commit(p.model.View()); err != nil {
				return err
			}
			p.dirty = false
		}

		ev, err := p.tty.Poll(p.waitBound())
		if err != nil {
			return err
		}
		if ev == nil {
			continue
		}
		if err := p.handleEvent(ev); err != nil {
			return err
		}
	}

	if p.dirty {
		if err := p.renderer.commit(p.model.View()); err != nil {
			return err
		}
		p.dirty = false
	}
	return nil
}

// handleEvent routes one terminal event through the model.
func (p *Program) handleEvent(ev term.Event) error {
	if _, ok := ev.(term.ResizeEvent); ok {
		// A resize invalidates the layout even if the model ignores the
		// message, and inline frames must be repainted from scratch since
		// reflow may have moved the old content.
		if !p.opts.AltScreen {
			p.renderer.invalidate()
		}
		p.dirty = true
	}
	msg := p.model.HandleEvent(ev)
	if msg == nil {
		return nil
	}
	return p.feedMsg(msg)
}

// drainAsync delivers results of finished Async commands. Results queued
// behind a quit are discarded.
func (p *Program) drainAsync() error {
	for {
		select {
		case msg := <-p.asyncCh:
			if err := p.feedMsg(msg); err != nil {
				return err
			}
			if p.quitting {
				return nil
			}
		default:
			return nil
		}
	}
}

// fireTicks delivers due one-shot timers in arming order. A timer fires once
// and is then forgotten; if the loop fell behind, every overdue timer still
// fires exactly once.
func (p *Program) fireTicks() error {
	now := p.now()
	var remaining []pendingTick
	due := p.ticks[:0:0]
	for _, t := range p.ticks {
		if !t.at.After(now) {
			due = append(due, t)
		} else {
			remaining = append(remaining, t)
		}
	}
	p.ticks = remaining
	for _, t := range due {
		if err := p.feedMsg(t.gen(now)); err != nil {
			return err
		}
		if p.quitting {
			return nil
		}
	}
	return nil
}

// fireSubs delivers due subscriptions in registration order. Each due
// subscription fires at most once per iteration and reschedules one period
// ahead of its previous deadline, so a stalled loop never floods the model
// with a burst of make-up messages.
func (p *Program) fireSubs() error {
	now := p.now()
	for _, id := range p.subOrder {
		s := p.subs[id]
		if s == nil || s.next.After(now) {
			continue
		}
		s.next = s.next.Add(s.period)
		if s.next.Before(now) {
			s.next = now.Add(s.period)
		}
		if err := p.feedMsg(s.gen()); err != nil {
			return err
		}
		if p.quitting {
			return nil
		}
	}
	return nil
}

// feedMsg runs one message through the filter and the model, then executes
// the resulting command. The model is marked dirty on every delivered
// message.
func (p *Program) feedMsg(msg Msg) error {
	if p.filter != nil {
		msg = p.filter(p.model, msg)
		if msg == nil {
			return nil
		}
	}
	cmd := p.model.Update(msg)
	p.dirty = true
	if err := p.feedCmd(cmd); err != nil {
		return err
	}
	p.refreshSubs()
	return nil
}

// refreshSubs reconciles the registry with the model's current declarations.
// A subscription that keeps its id keeps its deadline; new ids are scheduled
// one period from now; ids no longer declared are dropped.
func (p *Program) refreshSubs() {
	declared := flattenSub(p.model.Subscriptions())
	now := p.now()

	seen := make(map[string]bool, len(declared))
	var order []string
	for _, d := range declared {
		if seen[d.id] {
			continue
		}
		seen[d.id] = true
		order = append(order, d.id)
		if s, ok := p.subs[d.id]; ok {
			s.period = d.period
			s.gen = d.gen
		} else {
			p.subs[d.id] = &activeSub{
				id: d.id, next: now.Add(d.period), period: d.period, gen: d.gen,
			}
		}
	}
	for id := range p.subs {
		if !seen[id] {
			delete(p.subs, id)
		}
	}
	p.subOrder = order
}

// waitBound computes how long the loop may sleep: until the earliest pending
// tick or subscription deadline, bounded by both the frame interval and the
// idle tick rate.
func (p *Program) waitBound() time.Duration {
	now := p.now()
	bound := min(p.opts.TickRate, p.opts.frameDuration())
	for _, t := range p.ticks {
		bound = min(bound, t.at.Sub(now))
	}
	for _, id := range p.subOrder {
		if s := p.subs[id]; s != nil {
			bound = min(bound, s.next.Sub(now))
		}
	}
	if bound < 0 {
		return 0
	}
	return bound
}
