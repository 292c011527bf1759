package teamhandlers

import (
	"context"

	teamservice "github.com/Panther-Scouting/reef-scout/app/modules/team/application"
)

// fakeService is a fake teamservice.Service for handler tests.
type fakeService struct {
	UpsertTeamFn  func(ctx context.Context, input teamservice.TeamInput) (*teamservice.TeamView, error)
	GetTeamFn     func(ctx context.Context, teamNumber string) (*teamservice.TeamView, error)
	ListTeamsFn   func(ctx context.Context) ([]teamservice.TeamView, error)
	ExportTeamsFn func(ctx context.Context) ([]byte, error)
}

func (f *fakeService) UpsertTeam(ctx context.Context, input teamservice.TeamInput) (*teamservice.TeamView, error) {
	if f.UpsertTeamFn != nil {
		return f.UpsertTeamFn(ctx, input)
	}
	return &teamservice.TeamView{TeamNumber: input.TeamNumber, Name: input.Name}, nil
}

func (f *fakeService) GetTeam(ctx context.Context, teamNumber string) (*teamservice.TeamView, error) {
	if f.GetTeamFn != nil {
		return f.GetTeamFn(ctx, teamNumber)
	}
	return &teamservice.TeamView{TeamNumber: teamNumber}, nil
}

func (f *fakeService) ListTeams(ctx context.Context) ([]teamservice.TeamView, error) {
	if f.ListTeamsFn != nil {
		return f.ListTeamsFn(ctx)
	}
	return nil, nil
}

func (f *fakeService) ExportTeams(ctx context.Context) ([]byte, error) {
	if f.ExportTeamsFn != nil {
		return f.ExportTeamsFn(ctx)
	}
	return []byte("xlsx"), nil
}
