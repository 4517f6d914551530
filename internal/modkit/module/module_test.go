package module

import (
	"testing"

	phttp "pgnframe/internal/platform/net/http"
	"pgnframe/internal/platform/testkit"
)

type Lister interface{ List() []int }
type Counter interface{ Count() int }

type lister struct{}

func (lister) List() []int { return []int{1} }

type bundle struct {
	Lister Lister
	hidden Counter
}

type fakeModule struct {
	name  string
	ports any
}

func (f fakeModule) MountRoutes(phttp.Router) {}
func (f fakeModule) Ports() any               { return f.ports }
func (f fakeModule) Name() string             { return f.name }

func TestPortsOf(t *testing.T) {
	t.Parallel()

	direct := fakeModule{name: "direct", ports: lister{}}
	if _, ok := PortsOf[Lister](direct); !ok {
		t.Fatal("direct port not found")
	}

	nested := fakeModule{name: "nested", ports: bundle{Lister: lister{}}}
	l, ok := PortsOf[Lister](nested)
	if !ok || len(l.List()) != 1 {
		t.Fatal("field port not found")
	}
	if _, ok := PortsOf[Counter](nested); ok {
		t.Fatal("unexported field must be skipped")
	}
	if _, ok := PortsOf[Lister](fakeModule{name: "ptr", ports: &bundle{Lister: lister{}}}); !ok {
		t.Fatal("field behind a pointer not found")
	}
	if _, ok := PortsOf[Lister](fakeModule{name: "none"}); ok {
		t.Fatal("nil ports should not match")
	}
	testkit.MustPanic(t, func() { MustPortsOf[Counter](nested) })
	testkit.MustPanic(t, func() { Register("", lister{}) })
}

func TestRegistry(t *testing.T) {
	testkit.Serial(t)
	Reset()
	t.Cleanup(Reset)

	Register("meta", nil)
	Register("games", lister{})
	if got := Names(); len(got) != 2 || got[0] != "games" || got[1] != "meta" {
		t.Fatalf("Names() = %v", got)
	}
	if _, ok := PortsAs[Lister]("games"); !ok {
		t.Fatal("registered port missing")
	}
	if _, ok := PortsAs[Counter]("games"); ok {
		t.Fatal("wrong type must not assert")
	}
	if _, ok := PortsAs[Lister]("meta"); ok {
		t.Fatal("nil ports must miss")
	}
	if _, ok := PortsAs[Lister]("ingest"); ok {
		t.Fatal("unknown name must miss")
	}
	Reset()
	if _, ok := PortsAs[Lister]("games"); ok {
		t.Fatal("Reset should clear")
	}
}
