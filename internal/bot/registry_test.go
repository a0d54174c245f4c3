package bot

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

// stubModule is a configurable Module test double.
type stubModule struct {
	name          string
	commands      []*discordgo.ApplicationCommand
	handlers      map[string]InteractionHandler
	eventHandlers []EventHandler
	initErr       error
	shutErr       error
}

func (m *stubModule) Name() string                                   { return m.name }
func (m *stubModule) Commands() []*discordgo.ApplicationCommand      { return m.commands }
func (m *stubModule) CommandHandlers() map[string]InteractionHandler { return m.handlers }
func (m *stubModule) EventHandlers() []EventHandler                  { return m.eventHandlers }
func (m *stubModule) Init(deps ModuleDependencies) error             { return m.initErr }
func (m *stubModule) Shutdown() error                                { return m.shutErr }

func TestRegistry_Register(t *testing.T) {
	reg := NewRegistry()

	reg.Register(&stubModule{name: "alpha"})

	modules := reg.Modules()
	if len(modules) != 1 {
		t.Fatalf("expected 1 module, got %d", len(modules))
	}
	if modules[0].Name() != "alpha" {
		t.Errorf("expected module name %q, got %q", "alpha", modules[0].Name())
	}
}

func TestRegistry_KeepsRegistrationOrder(t *testing.T) {
	reg := NewRegistry()

	reg.Register(&stubModule{name: "first"})
	reg.Register(&stubModule{name: "second"})

	modules := reg.Modules()
	if len(modules) != 2 {
		t.Fatalf("expected 2 modules, got %d", len(modules))
	}
	if modules[0].Name() != "first" || modules[1].Name() != "second" {
		t.Errorf("registration order not preserved: %q, %q",
			modules[0].Name(), modules[1].Name())
	}
}

func TestRegistry_ModulesReturnsSnapshot(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&stubModule{name: "first"})

	snapshot := reg.Modules()
	reg.Register(&stubModule{name: "second"})

	if len(snapshot) != 1 {
		t.Errorf("expected snapshot to keep 1 module, got %d", len(snapshot))
	}
}

func TestGlobalRegistry(t *testing.T) {
	ResetGlobalRegistry()
	defer ResetGlobalRegistry()

	Register(&stubModule{name: "global"})

	modules := Modules()
	if len(modules) != 1 {
		t.Fatalf("expected 1 module, got %d", len(modules))
	}
	if modules[0].Name() != "global" {
		t.Errorf("expected module name %q, got %q", "global", modules[0].Name())
	}
}
