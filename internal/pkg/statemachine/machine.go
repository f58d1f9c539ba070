package statemachine

import (
	"fmt"
	"sort"

	"github.com/looplab/fsm"
	"waste-service/internal/entities"
)

// Machine guards status moves of one entity kind. Each fsm event is named after its destination
// status, so asking whether "to" can fire from "from" answers whether the move is allowed.
// One fsm is parked in every source status at construction and never fires an event,
// which keeps Can allocation-free and safe for concurrent use.
type Machine[S ~string] struct {
	entity string
	parked map[S]*fsm.FSM
}

func New[S ~string](entity string, table map[S][]S) *Machine[S] {
	sources := make(map[S][]string)
	for from, targets := range table {
		for _, to := range targets {
			sources[to] = append(sources[to], string(from))
		}
	}

	events := make(fsm.Events, 0, len(sources))
	for to, src := range sources {
		sort.Strings(src)
		events = append(events, fsm.EventDesc{Name: string(to), Src: src, Dst: string(to)})
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Name < events[j].Name })

	parked := make(map[S]*fsm.FSM, len(table))
	for from := range table {
		parked[from] = fsm.NewFSM(string(from), events, fsm.Callbacks{})
	}

	return &Machine[S]{
		entity: entity,
		parked: parked,
	}
}

func (m *Machine[S]) Can(from, to S) bool {
	f, ok := m.parked[from]
	if !ok {
		return false
	}
	return f.Can(string(to))
}

// Check returns an error wrapping entities.ErrConflict when the move is not in the table.
func (m *Machine[S]) Check(from, to S) error {
	if m.Can(from, to) {
		return nil
	}
	return fmt.Errorf("%w: %s cannot move from %q to %q", entities.ErrConflict, m.entity, from, to)
}

var (
	BinRequests = New("bin request", entities.BinRequestTransitions)
	Deliveries  = New("delivery", entities.DeliveryTransitions)
	SmartBins   = New("smart bin", entities.SmartBinTransitions)
	Pickups     = New("pickup", entities.PickupTransitions)
)
