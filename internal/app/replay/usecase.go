package replay

import (
	"context"
	"errors"
	"strings"

	"robogrid/internal/app/ports"
	"robogrid/internal/domain/robotics"
)

var ErrInvalidRequest = errors.New("invalid replay request")

type UseCase struct {
	Runs   ports.RunRepository
	Events ports.EventRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.RunID) == "" || req.Limit < 0 {
		return Response{}, ErrInvalidRequest
	}
	if u.Runs != nil {
		if _, err := u.Runs.Get(ctx, req.RunID); err != nil {
			return Response{}, err
		}
	}
	events, err := u.Events.ListByRunID(ctx, req.RunID, ports.EventFilter{Limit: req.Limit, Kind: req.Kind})
	if err != nil {
		return Response{}, err
	}
	return Response{Events: events, LatestState: reconstruct(events)}, nil
}

func reconstruct(events []ports.RunEvent) LatestState {
	state := LatestState{}
	for _, e := range events {
		ev := e.Event
		if ev.Tick > state.Tick {
			state.Tick = ev.Tick
		}
		switch ev.Kind {
		case robotics.EventReady, robotics.EventMoved:
			if ev.Position != nil {
				p := *ev.Position
				state.Position = &p
			}
		case robotics.EventEnergyMinted:
			state.EnergyMinted += ev.Amount
		case robotics.EventEnergyConsumed:
			state.EnergyConsumed += ev.Amount
		case robotics.EventTileDestroyed:
			state.Destroyed++
		case robotics.EventTerminated:
			state.Terminated = true
		}
	}
	return state
}
