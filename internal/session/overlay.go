package session

import "strings"

// Subscription identifies one registered overlay.
type Subscription struct {
	id    uint64
	Scope string
}

// Valid reports whether the subscription was ever issued.
func (s Subscription) Valid() bool { return s.id != 0 }

type overlay struct {
	id        uint64
	scope     string
	onOutside func(target string)
}

// Overlays is the registry of open surfaces that close on an outside click.
// A click target is inside an overlay when it equals the scope or extends it
// as a path ("entry/1/add-comment/input" is inside "entry/1/add-comment").
type Overlays struct {
	next uint64
	subs []overlay
}

// NewOverlays creates an empty registry.
func NewOverlays() *Overlays {
	return &Overlays{}
}

// Subscribe registers onOutside to run for clicks outside scope.
func (o *Overlays) Subscribe(scope string, onOutside func(target string)) Subscription {
	o.next++
	o.subs = append(o.subs, overlay{id: o.next, scope: scope, onOutside: onOutside})
	return Subscription{id: o.next, Scope: scope}
}

// Unsubscribe removes a subscription. It reports false if it was already gone.
func (o *Overlays) Unsubscribe(s Subscription) bool {
	for i, ov := range o.subs {
		if ov.id == s.id {
			o.subs = append(o.subs[:i:i], o.subs[i+1:]...)
			return true
		}
	}
	return false
}

func (o *Overlays) active(id uint64) bool {
	for _, ov := range o.subs {
		if ov.id == id {
			return true
		}
	}
	return false
}

// Dispatch delivers a click to every overlay it falls outside of and reports
// whether any handler ran. Handlers may subscribe or unsubscribe freely;
// overlays removed by an earlier handler in the same dispatch are skipped.
func (o *Overlays) Dispatch(target string) bool {
	snapshot := make([]overlay, len(o.subs))
	copy(snapshot, o.subs)

	fired := false
	for _, ov := range snapshot {
		if Inside(target, ov.scope) || !o.active(ov.id) {
			continue
		}
		ov.onOutside(target)
		fired = true
	}
	return fired
}

// Active returns the scopes currently registered, oldest first.
func (o *Overlays) Active() []string {
	out := make([]string, len(o.subs))
	for i, ov := range o.subs {
		out[i] = ov.scope
	}
	return out
}

// Len returns the number of registered overlays.
func (o *Overlays) Len() int { return len(o.subs) }

// Inside reports whether target lies within scope.
func Inside(target, scope string) bool {
	return target == scope || strings.HasPrefix(target, scope+"/")
}
