package script

import (
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/deckforge/internal/document"
	"github.com/dshills/deckforge/internal/store"
)

// Runner executes Lua build scripts against a store.
type Runner struct {
	store *store.Store
}

// NewRunner creates a runner bound to the given store.
func NewRunner(s *store.Store) *Runner {
	return &Runner{store: s}
}

// RunFile executes the script at path.
func (r *Runner) RunFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading script %s: %w", path, err)
	}
	return r.run(path, string(src))
}

// RunString executes script source.
func (r *Runner) RunString(src string) error {
	return r.run("<string>", src)
}

func (r *Runner) run(name, src string) error {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	// Sandbox: no io, os, or debug libraries.
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	L.SetGlobal("deck", r.deckModule(L))

	fn, err := L.LoadString(src)
	if err != nil {
		return fmt.Errorf("compiling script %s: %w", name, err)
	}
	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		return fmt.Errorf("running script %s: %w", name, err)
	}
	return nil
}

// deckModule builds the table of store operations exposed to scripts.
func (r *Runner) deckModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	s := r.store

	register := func(name string, fn lua.LGFunction) {
		L.SetField(mod, name, L.NewFunction(fn))
	}

	register("set_title", func(L *lua.LState) int {
		s.SetDocumentTitle(L.CheckString(1))
		return 0
	})

	register("add_card", func(L *lua.LState) int {
		id := s.AddCard(L.OptString(1, ""))
		L.Push(lua.LString(id))
		return 1
	})

	register("set_card_title", func(L *lua.LState) int {
		ok := s.SetCardTitle(L.CheckString(1), L.CheckString(2))
		L.Push(lua.LBool(ok))
		return 1
	})

	register("add_layout", func(L *lua.LState) int {
		parent := L.CheckString(1)
		variant := document.Variant(L.CheckString(2))
		gap := float64(L.OptNumber(3, 0))
		col := luaColumn(L, 4)
		id, ok := s.AddLayout(parent, variant, gap, col)
		if !ok {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LString(id))
		return 1
	})

	register("add_block", func(L *lua.LState) int {
		parent := L.CheckString(1)
		content, err := contentFromTable(L.CheckTable(2))
		if err != nil {
			L.RaiseError("add_block: %v", err)
			return 0
		}
		col := luaColumn(L, 3)
		id, ok := s.AddBlock(parent, content, col)
		if !ok {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LString(id))
		return 1
	})

	register("set_block_content", func(L *lua.LState) int {
		blockID := L.CheckString(1)
		content, err := contentFromTable(L.CheckTable(2))
		if err != nil {
			L.RaiseError("set_block_content: %v", err)
			return 0
		}
		L.Push(lua.LBool(s.UpdateBlockContent(blockID, content)))
		return 1
	})

	register("drop_material", func(L *lua.LState) int {
		materialID := L.CheckString(1)
		parent := L.CheckString(2)
		col := luaColumn(L, 3)
		var overrides map[string]any
		if t, ok := L.Get(4).(*lua.LTable); ok {
			if m, ok := toGoValue(t).(map[string]any); ok {
				overrides = m
			}
		}
		id, err := s.DropMaterial(materialID, parent, col, overrides)
		if err != nil || id == "" {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LString(id))
		return 1
	})

	register("delete", func(L *lua.LState) int {
		L.Push(lua.LBool(s.DeleteNode(L.CheckString(1))))
		return 1
	})

	register("move_card", func(L *lua.LState) int {
		L.Push(lua.LBool(s.MoveCard(L.CheckInt(1)-1, L.CheckInt(2)-1)))
		return 1
	})

	register("move_child", func(L *lua.LState) int {
		L.Push(lua.LBool(s.MoveChild(L.CheckString(1), L.CheckInt(2)-1, L.CheckInt(3)-1)))
		return 1
	})

	register("undo", func(L *lua.LState) int {
		L.Push(lua.LBool(s.Undo() == nil))
		return 1
	})

	register("redo", func(L *lua.LState) int {
		L.Push(lua.LBool(s.Redo() == nil))
		return 1
	})

	register("card_ids", func(L *lua.LState) int {
		t := L.NewTable()
		for _, c := range s.Document().Cards {
			t.Append(lua.LString(c.ID))
		}
		L.Push(t)
		return 1
	})

	register("set_active_card", func(L *lua.LState) int {
		L.Push(lua.LBool(s.SetActiveCard(L.CheckString(1))))
		return 1
	})

	return mod
}

// luaColumn reads an optional 1-based column argument; absent or zero
// means plain append.
func luaColumn(L *lua.LState, idx int) int {
	return L.OptInt(idx, 0) - 1
}
