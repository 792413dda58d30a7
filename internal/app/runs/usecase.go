package runs

import (
	"context"
	"errors"
	"strings"

	"robogrid/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid runs request")

const maxListLimit = 200

type Request struct {
	RunID string
}

type Response struct {
	Run ports.RunRecord
}

type ListRequest struct {
	Limit int
}

type ListResponse struct {
	Runs []ports.RunRecord
}

type UseCase struct {
	Runs ports.RunRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.RunID) == "" {
		return Response{}, ErrInvalidRequest
	}
	run, err := u.Runs.Get(ctx, req.RunID)
	if err != nil {
		return Response{}, err
	}
	return Response{Run: run}, nil
}

func (u UseCase) List(ctx context.Context, req ListRequest) (ListResponse, error) {
	limit := req.Limit
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	out, err := u.Runs.List(ctx, limit)
	if err != nil {
		return ListResponse{}, err
	}
	return ListResponse{Runs: out}, nil
}
