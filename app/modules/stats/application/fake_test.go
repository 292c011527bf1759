package statsservice

import (
	"context"
	"errors"

	allianceservice "github.com/Panther-Scouting/reef-scout/app/modules/alliance/application"
	alliancedomain "github.com/Panther-Scouting/reef-scout/app/modules/alliance/domain"
	"github.com/Panther-Scouting/reef-scout/app/modules/stats/infrastructure/tba"
)

// fakeSource is a fake RankingSource for service tests.
type fakeSource struct {
	RankingsFn func(ctx context.Context, eventKey string) (*tba.RankingsResponse, error)
	OPRsFn     func(ctx context.Context, eventKey string) (*tba.OPRsResponse, error)
	TeamsFn    func(ctx context.Context, eventKey string) ([]tba.EventTeam, error)
}

func (f *fakeSource) Rankings(ctx context.Context, eventKey string) (*tba.RankingsResponse, error) {
	if f.RankingsFn != nil {
		return f.RankingsFn(ctx, eventKey)
	}
	return nil, errors.New("no rankings")
}

func (f *fakeSource) OPRs(ctx context.Context, eventKey string) (*tba.OPRsResponse, error) {
	if f.OPRsFn != nil {
		return f.OPRsFn(ctx, eventKey)
	}
	return &tba.OPRsResponse{}, nil
}

func (f *fakeSource) Teams(ctx context.Context, eventKey string) ([]tba.EventTeam, error) {
	if f.TeamsFn != nil {
		return f.TeamsFn(ctx, eventKey)
	}
	return nil, nil
}

// fakeSelections is a fake SelectionSource.
type fakeSelections struct {
	board *alliancedomain.Board
}

func (f *fakeSelections) GetBoard(ctx context.Context, eventKey string) (*allianceservice.SelectionView, error) {
	board := f.board
	if board == nil {
		board = alliancedomain.NewBoard()
	}
	return &allianceservice.SelectionView{EventKey: eventKey, Board: *board}, nil
}
