package alliancehandlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	allianceservice "github.com/Panther-Scouting/reef-scout/app/modules/alliance/application"
	alliancedomain "github.com/Panther-Scouting/reef-scout/app/modules/alliance/domain"
	alliancedb "github.com/Panther-Scouting/reef-scout/app/modules/alliance/infrastructure/repositories"
)

// fakeService is a fake allianceservice.Service for handler tests.
type fakeService struct {
	GetSelectionFn  func(ctx context.Context, eventKey string) (*allianceservice.SelectionView, error)
	GetBoardFn      func(ctx context.Context, eventKey string) (*allianceservice.SelectionView, error)
	SaveSelectionFn func(ctx context.Context, eventKey string, board alliancedomain.Board) (*allianceservice.SelectionView, error)
	AssignFn        func(ctx context.Context, eventKey string, allianceNumber int, role alliancedomain.Role, teamNumber string) (*allianceservice.SelectionView, error)
	UnassignFn      func(ctx context.Context, eventKey string, allianceNumber int, role alliancedomain.Role) (*allianceservice.SelectionView, error)
	FinalizeFn      func(ctx context.Context, eventKey string) (*allianceservice.SelectionView, error)
	UnfinalizeFn    func(ctx context.Context, eventKey string) (*allianceservice.SelectionView, error)
}

func emptyView(eventKey string) *allianceservice.SelectionView {
	return &allianceservice.SelectionView{EventKey: eventKey, Board: *alliancedomain.NewBoard()}
}

func (f *fakeService) GetSelection(ctx context.Context, eventKey string) (*allianceservice.SelectionView, error) {
	if f.GetSelectionFn != nil {
		return f.GetSelectionFn(ctx, eventKey)
	}
	return emptyView(eventKey), nil
}

func (f *fakeService) GetBoard(ctx context.Context, eventKey string) (*allianceservice.SelectionView, error) {
	if f.GetBoardFn != nil {
		return f.GetBoardFn(ctx, eventKey)
	}
	return emptyView(eventKey), nil
}

func (f *fakeService) SaveSelection(ctx context.Context, eventKey string, board alliancedomain.Board) (*allianceservice.SelectionView, error) {
	if f.SaveSelectionFn != nil {
		return f.SaveSelectionFn(ctx, eventKey, board)
	}
	return &allianceservice.SelectionView{EventKey: eventKey, Board: board}, nil
}

func (f *fakeService) Assign(ctx context.Context, eventKey string, allianceNumber int, role alliancedomain.Role, teamNumber string) (*allianceservice.SelectionView, error) {
	if f.AssignFn != nil {
		return f.AssignFn(ctx, eventKey, allianceNumber, role, teamNumber)
	}
	return emptyView(eventKey), nil
}

func (f *fakeService) Unassign(ctx context.Context, eventKey string, allianceNumber int, role alliancedomain.Role) (*allianceservice.SelectionView, error) {
	if f.UnassignFn != nil {
		return f.UnassignFn(ctx, eventKey, allianceNumber, role)
	}
	return emptyView(eventKey), nil
}

func (f *fakeService) Finalize(ctx context.Context, eventKey string) (*allianceservice.SelectionView, error) {
	if f.FinalizeFn != nil {
		return f.FinalizeFn(ctx, eventKey)
	}
	return emptyView(eventKey), nil
}

func (f *fakeService) Unfinalize(ctx context.Context, eventKey string) (*allianceservice.SelectionView, error) {
	if f.UnfinalizeFn != nil {
		return f.UnfinalizeFn(ctx, eventKey)
	}
	return emptyView(eventKey), nil
}

func newTestRouter(svc *fakeService) chi.Router {
	h := NewAllianceHandlers(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	r.Route("/api/alliances", func(r chi.Router) {
		r.Post("/", h.HandleSaveSelection)
		r.Route("/{eventKey}", func(r chi.Router) {
			r.Get("/", h.HandleGetSelection)
			r.Get("/board", h.HandleGetBoard)
			r.Post("/board/assign", h.HandleAssign)
			r.Post("/board/unassign", h.HandleUnassign)
			r.Post("/board/finalize", h.HandleFinalize)
			r.Post("/board/unfinalize", h.HandleUnfinalize)
		})
	})
	return r
}

func TestHandleGetSelection(t *testing.T) {
	router := newTestRouter(&fakeService{})

	req := httptest.NewRequest(http.MethodGet, "/api/alliances/2026casd", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var view allianceservice.SelectionView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "2026casd", view.EventKey)
	assert.Len(t, view.Board.Alliances, alliancedomain.NumAlliances)
}

func TestHandleGetSelectionNotFound(t *testing.T) {
	svc := &fakeService{
		GetSelectionFn: func(ctx context.Context, eventKey string) (*allianceservice.SelectionView, error) {
			return nil, alliancedb.ErrNotFound
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/alliances/2026nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGetBoardEmptyEvent(t *testing.T) {
	router := newTestRouter(&fakeService{})

	req := httptest.NewRequest(http.MethodGet, "/api/alliances/2026casd/board", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var view allianceservice.SelectionView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.False(t, view.Board.Finalized)
}

func TestHandleSaveSelection(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		svc := &fakeService{
			SaveSelectionFn: func(ctx context.Context, eventKey string, board alliancedomain.Board) (*allianceservice.SelectionView, error) {
				assert.Equal(t, "2026casd", eventKey)
				assert.Equal(t, "254", board.Alliances[0].Captain)
				return &allianceservice.SelectionView{EventKey: eventKey, Board: board}, nil
			},
		}
		router := newTestRouter(svc)

		body := `{"eventKey":"2026casd","alliances":[{"allianceNumber":1,"captain":"254"}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/alliances", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("missing event key", func(t *testing.T) {
		svc := &fakeService{
			SaveSelectionFn: func(ctx context.Context, eventKey string, board alliancedomain.Board) (*allianceservice.SelectionView, error) {
				return nil, allianceservice.ErrMissingEventKey
			},
		}
		router := newTestRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/alliances", strings.NewReader(`{"alliances":[]}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		router := newTestRouter(&fakeService{})

		req := httptest.NewRequest(http.MethodPost, "/api/alliances", strings.NewReader(`{broken`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleAssignStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid alliance", err: alliancedomain.ErrInvalidAlliance, wantStatus: http.StatusBadRequest},
		{name: "invalid role", err: alliancedomain.ErrInvalidRole, wantStatus: http.StatusBadRequest},
		{name: "empty team", err: alliancedomain.ErrEmptyTeam, wantStatus: http.StatusBadRequest},
		{name: "finalized board", err: alliancedomain.ErrFinalized, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{
				AssignFn: func(ctx context.Context, eventKey string, allianceNumber int, role alliancedomain.Role, teamNumber string) (*allianceservice.SelectionView, error) {
					return nil, tt.err
				},
			}
			router := newTestRouter(svc)

			body := `{"allianceNumber":1,"role":"captain","teamNumber":"254"}`
			req := httptest.NewRequest(http.MethodPost, "/api/alliances/2026casd/board/assign", strings.NewReader(body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandleFinalize(t *testing.T) {
	svc := &fakeService{
		FinalizeFn: func(ctx context.Context, eventKey string) (*allianceservice.SelectionView, error) {
			view := emptyView(eventKey)
			view.Board.Finalize()
			return view, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/alliances/2026casd/board/finalize", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var view allianceservice.SelectionView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.True(t, view.Board.Finalized)
}
