package fsm

import "fmt"

// NewMachine creates a new FSM instance
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes: make(map[StateID]*Node[T]),
	}
}

// Init enters the initial state, running OnEnter from Root down to the leaf
func (m *Machine[T]) Init(ctx T, initialID StateID) error {
	node, ok := m.nodes[initialID]
	if !ok {
		return fmt.Errorf("initial state ID %d not found", initialID)
	}
	if node.Path == nil {
		return fmt.Errorf("state %d has no compiled path, call CompilePaths first", initialID)
	}

	m.InitialStateID = initialID
	m.activeStateID = initialID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], node.Path...)

	for _, id := range m.activePath {
		for _, action := range m.nodes[id].OnEnter {
			action(ctx)
		}
	}
	return nil
}

// Update advances time in state by dt seconds and evaluates tick transitions
func (m *Machine[T]) Update(ctx T, dt float64) {
	if m.activeStateID == StateNone {
		return
	}
	m.timeInState += dt
	m.fire(ctx, TriggerTick)
}

// HandleEvent evaluates transitions for trigger, bubbling Leaf -> Root
// Returns true if a transition occurred
func (m *Machine[T]) HandleEvent(ctx T, trigger Trigger) bool {
	if m.activeStateID == StateNone {
		return false
	}
	return m.fire(ctx, trigger)
}

func (m *Machine[T]) fire(ctx T, trigger Trigger) bool {
	currID := m.activeStateID
	for currID != StateNone {
		node := m.nodes[currID]
		for _, trans := range node.Transitions {
			if trans.Trigger != trigger {
				continue
			}
			if trans.Guard == nil || trans.Guard(ctx) {
				m.transition(ctx, trans.TargetID)
				return true
			}
		}
		currID = node.ParentID
	}
	return false
}

// Transition forces a state change, running exit and enter actions
// A transition to the active state re-enters it
func (m *Machine[T]) Transition(ctx T, targetID StateID) {
	m.transition(ctx, targetID)
}

func (m *Machine[T]) transition(ctx T, targetID StateID) {
	targetNode, ok := m.nodes[targetID]
	if !ok {
		panic(fmt.Sprintf("FSM: attempted transition to unknown state ID %d", targetID))
	}

	// Find LCA; self-transition exits and re-enters the leaf
	lcaIndex := -1
	targetPath := targetNode.Path
	minLen := min(len(m.activePath), len(targetPath))
	for i := 0; i < minLen; i++ {
		if m.activePath[i] != targetPath[i] {
			break
		}
		lcaIndex = i
	}
	if targetID == m.activeStateID {
		lcaIndex = len(targetPath) - 2
	}

	for i := len(m.activePath) - 1; i > lcaIndex; i-- {
		for _, action := range m.nodes[m.activePath[i]].OnExit {
			action(ctx)
		}
	}

	m.activeStateID = targetID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], targetPath...)

	for i := lcaIndex + 1; i < len(targetPath); i++ {
		for _, action := range m.nodes[targetPath[i]].OnEnter {
			action(ctx)
		}
	}
}

// Reset exits every active state and re-enters the initial state
func (m *Machine[T]) Reset(ctx T) error {
	for i := len(m.activePath) - 1; i >= 0; i-- {
		for _, action := range m.nodes[m.activePath[i]].OnExit {
			action(ctx)
		}
	}
	m.activeStateID = StateNone
	m.activePath = m.activePath[:0]
	return m.Init(ctx, m.InitialStateID)
}

// ActiveState returns the current leaf ID
func (m *Machine[T]) ActiveState() StateID {
	return m.activeStateID
}

// ActiveStateName returns the current leaf name
func (m *Machine[T]) ActiveStateName() string {
	if node, ok := m.nodes[m.activeStateID]; ok {
		return node.Name
	}
	return ""
}

// TimeInState returns seconds spent in the current leaf
func (m *Machine[T]) TimeInState() float64 {
	return m.timeInState
}
