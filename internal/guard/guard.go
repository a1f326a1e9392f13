package guard

import (
	"fmt"
	"sync"

	"github.com/RoyceAzure/lab/virtualart/internal/model"
	"github.com/RoyceAzure/lab/virtualart/internal/session"
)

type Kind int

const (
	KindAdmin Kind = iota
	KindArtist
	KindUser
)

func (k Kind) String() string {
	switch k {
	case KindAdmin:
		return "admin"
	case KindArtist:
		return "artist"
	case KindUser:
		return "user"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

type State int

const (
	Loading State = iota
	Denied
	Granted
)

func (s State) String() string {
	switch s {
	case Loading:
		return "LOADING"
	case Denied:
		return "DENIED"
	case Granted:
		return "GRANTED"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

const (
	AdminLoginPath = "/admin/login"
	HomePath       = "/"
)

// Decision Redirect 空字串代表 DENIED 但不導向 (什麼都不 render)
type Decision struct {
	State    State
	Redirect string
}

var (
	loading = Decision{State: Loading}
	granted = Decision{State: Granted}
)

// Evaluate 純函式, 不做任何 I/O
func Evaluate(kind Kind, snap session.Snapshot) Decision {
	if snap.Status == session.StatusLoading {
		return loading
	}
	switch kind {
	case KindAdmin:
		return evaluateAdmin(snap.Profile)
	case KindArtist:
		return evaluateArtist(snap.Profile)
	case KindUser:
		return evaluateUser(snap.Profile)
	}
	panic(fmt.Sprintf("guard: unknown kind %d", int(kind)))
}

func evaluateAdmin(p *model.Profile) Decision {
	if p == nil {
		return Decision{State: Denied, Redirect: AdminLoginPath}
	}
	switch p.Role().MustBeKnown() {
	case model.RoleAdmin:
		return granted
	case model.RoleArtist, model.RoleUser:
		return Decision{State: Denied, Redirect: HomePath}
	}
	panic("unreachable")
}

// evaluateArtist 沒有 profile 時不導向, 與 admin guard 不同
func evaluateArtist(p *model.Profile) Decision {
	if p == nil {
		return granted
	}
	switch p.Role().MustBeKnown() {
	case model.RoleArtist:
		return granted
	case model.RoleAdmin, model.RoleUser:
		return Decision{State: Denied, Redirect: HomePath}
	}
	panic("unreachable")
}

func evaluateUser(p *model.Profile) Decision {
	if p == nil {
		return Decision{State: Denied}
	}
	return granted
}

// Watcher session.Store 實作
type Watcher interface {
	Snapshot() session.Snapshot
	Watch(fn func(session.Snapshot)) func()
}

// Gate 跟著 session 的 load/refresh 重新評估, 本身不發 request
type Gate struct {
	kind     Kind
	onChange func(Decision)

	mu       sync.RWMutex
	decision Decision
	stop     func()
}

func NewGate(kind Kind, w Watcher, onChange func(Decision)) *Gate {
	g := &Gate{kind: kind, onChange: onChange}
	g.decision = Evaluate(kind, w.Snapshot())
	g.stop = w.Watch(g.update)
	return g
}

func (g *Gate) update(snap session.Snapshot) {
	d := Evaluate(g.kind, snap)
	g.mu.Lock()
	changed := d != g.decision
	g.decision = d
	g.mu.Unlock()
	if changed && g.onChange != nil {
		g.onChange(d)
	}
}

func (g *Gate) Decision() Decision {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.decision
}

func (g *Gate) Close() {
	g.stop()
}
