package ecs

import (
	"testing"

	"github.com/milk9111/starstruck/ecs/component"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return false the second time")
				}
			}
		})
	}
}

func TestRecycledSlotGetsNewGeneration(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]()

	old := CreateEntity(w)
	if err := Add(w, old, kind, intPtr(7)); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.id() != old.id() {
		t.Fatalf("expected slot reuse, got %v after %v", fresh, old)
	}
	if fresh.generation() == old.generation() {
		t.Fatalf("expected a new generation")
	}
	if Has(w, fresh, kind) {
		t.Fatalf("recycled entity inherited a component")
	}
	if _, ok := Get(w, old, kind); ok {
		t.Fatalf("stale handle still resolves")
	}
	if err := Add(w, old, kind, intPtr(1)); err == nil {
		t.Fatalf("expected error adding to a dead entity")
	}
}

func intPtr(i int) *int {
	return &i
}

func TestComponentsAddGetRemove(t *testing.T) {
	w := NewWorld()
	transforms := component.TransformComponent.Kind()
	names := component.NewComponentKind[string]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	label := "star"

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "transform_mutates_in_place",
			setup: func() error { return Add(w, e1, transforms, &component.Transform{X: 1, Y: 2}) },
			check: func(t *testing.T) {
				tr, ok := Get(w, e1, transforms)
				if !ok {
					t.Fatalf("expected transform")
				}
				tr.X = 10
				again, _ := Get(w, e1, transforms)
				if again.X != 10 {
					t.Fatalf("expected in-place mutation, got %v", again.X)
				}
			},
			teardown: func() bool { return Remove(w, e1, transforms) },
		},
		{
			name: "string_on_both",
			setup: func() error {
				if err := Add(w, e1, names, &label); err != nil {
					return err
				}
				return Add(w, e2, names, &label)
			},
			check: func(t *testing.T) {
				if !Has(w, e1, names) || !Has(w, e2, names) {
					t.Fatalf("expected both entities to have a name")
				}
			},
			teardown: func() bool { return Remove(w, e1, names) && Remove(w, e2, names) },
		},
		{
			name:  "nil_value_rejected",
			setup: func() error { return nil },
			check: func(t *testing.T) {
				if err := Add[int](w, e1, component.NewComponentKind[int](), nil); err == nil {
					t.Fatalf("expected nil component error")
				}
				if err := Add(w, e1, component.ComponentKind[int]{}, intPtr(1)); err == nil {
					t.Fatalf("expected invalid kind error")
				}
			},
			teardown: func() bool { return true },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
			if !tc.teardown() {
				t.Fatalf("teardown failed for %s", tc.name)
			}
		})
	}
}

func TestForEachAndQuery(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "for_each_single",
			run: func(t *testing.T) {
				w := NewWorld()
				k := component.NewComponentKind[int]()
				e1 := CreateEntity(w)
				e2 := CreateEntity(w)
				e3 := CreateEntity(w)
				_ = Add(w, e1, k, intPtr(1))
				_ = Add(w, e3, k, intPtr(3))

				seen := map[Entity]int{}
				ForEach(w, k, func(e Entity, v *int) { seen[e] = *v })
				if len(seen) != 2 || seen[e1] != 1 || seen[e3] != 3 {
					t.Fatalf("unexpected visit set %v", seen)
				}
				if _, ok := seen[e2]; ok {
					t.Fatalf("did not expect e2")
				}
			},
		},
		{
			name: "intersection_of_three",
			run: func(t *testing.T) {
				w := NewWorld()
				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()
				e1 := CreateEntity(w)
				e2 := CreateEntity(w)
				e3 := CreateEntity(w)
				_ = Add(w, e1, ka, intPtr(1))
				_ = Add(w, e2, ka, intPtr(2))
				_ = Add(w, e2, kb, intPtr(3))
				_ = Add(w, e2, kc, intPtr(5))
				_ = Add(w, e3, kb, intPtr(4))

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 1 || res[0] != e2 {
					t.Fatalf("expected only e2, got %v", res)
				}
				if got := w.Query(ka.ID(), kb.ID()); len(got) != 1 || got[0] != e2 {
					t.Fatalf("Query = %v, want [e2]", got)
				}
			},
		},
		{
			name: "ignores_dead_entities",
			run: func(t *testing.T) {
				w := NewWorld()
				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				e := CreateEntity(w)
				_ = Add(w, e, ka, intPtr(1))
				_ = Add(w, e, kb, intPtr(2))
				DestroyEntity(w, e)

				calls := 0
				ForEach2(w, ka, kb, func(Entity, *int, *int) { calls++ })
				if calls != 0 {
					t.Fatalf("expected no visits after destroy, got %d", calls)
				}
			},
		},
		{
			name: "missing_store_returns_nil",
			run: func(t *testing.T) {
				w := NewWorld()
				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				e := CreateEntity(w)
				_ = Add(w, e, ka, intPtr(1))
				if got := w.Query(ka.ID(), kb.ID()); len(got) != 0 {
					t.Fatalf("expected empty when other store missing, got %v", got)
				}
				if _, ok := w.First(kb.ID()); ok {
					t.Fatalf("First on a missing store should fail")
				}
			},
		},
		{
			name: "destroy_during_for_each",
			run: func(t *testing.T) {
				w := NewWorld()
				k := component.NewComponentKind[int]()
				for i := 0; i < 5; i++ {
					_ = Add(w, CreateEntity(w), k, intPtr(i))
				}
				ForEach(w, k, func(e Entity, v *int) {
					if *v%2 == 0 {
						DestroyEntity(w, e)
					}
				})
				if got := len(w.Query(k.ID())); got != 2 {
					t.Fatalf("expected 2 survivors, got %d", got)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestClearKeepsStores(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()
	e := CreateEntity(w)
	_ = Add(w, e, k, intPtr(1))
	w.Events().Push(Event{Kind: EventLanded, Entity: e})

	w.Clear()
	if len(Entities(w)) != 0 || w.Events().Len() != 0 {
		t.Fatalf("Clear left entities or events behind")
	}
	e2 := CreateEntity(w)
	if err := Add(w, e2, k, intPtr(2)); err != nil {
		t.Fatalf("add after clear: %v", err)
	}
}

func TestEventQueueDrain(t *testing.T) {
	var q EventQueue
	q.Push(Event{Kind: EventJumped})
	q.Push(Event{Kind: EventCollected})
	got := q.Drain()
	if len(got) != 2 || got[0].Kind != EventJumped || got[1].Kind != EventCollected {
		t.Fatalf("Drain = %v", got)
	}
	if q.Drain() != nil {
		t.Fatalf("expected empty queue after drain")
	}
}
