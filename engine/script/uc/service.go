package uc

import (
	"context"

	"github.com/podded/podded/engine/compose"
)

// ServiceAction names a systemd flow.
type ServiceAction string

const (
	ActionStatus  ServiceAction = "status"
	ActionEnable  ServiceAction = "enable"
	ActionDisable ServiceAction = "disable"
	ActionQuadlet ServiceAction = "quadlet"
)

type ServiceInput struct {
	Path   string
	Action ServiceAction
}

// Service runs the quadlet and systemd flows of a document.
type Service struct {
	deps *Deps
}

func NewService(deps *Deps) *Service {
	return &Service{deps: deps}
}

func (uc *Service) Execute(ctx context.Context, in *ServiceInput) error {
	doc, err := uc.deps.load(ctx, in.Path)
	if err != nil {
		return err
	}
	svc := uc.deps.quadletService(doc)
	c := compose.New(doc)
	switch in.Action {
	case ActionStatus:
		return svc.Status(ctx, c)
	case ActionEnable:
		return svc.Enable(ctx, c)
	case ActionDisable:
		return svc.Disable(ctx, c)
	case ActionQuadlet:
		return svc.Quadlet(ctx, c)
	default:
		return ErrUnknownAction
	}
}
