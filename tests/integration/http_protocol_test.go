// Integration tests for the view synchronization protocol over the HTTP
// views API client, against an in-memory server speaking the wire format.
package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tableview/internal/httpviews"
	"github.com/mesh-intelligence/tableview/internal/views"
	"github.com/mesh-intelligence/tableview/pkg/types"
)

// viewsAPIServer is a minimal in-memory views API for protocol tests.
type viewsAPIServer struct {
	mu     sync.Mutex
	nextID int
	views  map[string]types.NamedView
	states map[string]types.TableViewState
}

func newViewsAPIServer() *viewsAPIServer {
	return &viewsAPIServer{
		views:  make(map[string]types.NamedView),
		states: make(map[string]types.TableViewState),
	}
}

func (s *viewsAPIServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/table-views", s.handleViews)
	mux.HandleFunc("/table-views/", s.handleView)
	mux.HandleFunc("/table-states", s.handleStates)
	return mux
}

func (s *viewsAPIServer) handleViews(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		slug := r.URL.Query().Get("tableSlug")
		out := []types.NamedView{}
		for _, v := range s.views {
			if v.TableSlug == slug {
				out = append(out, v)
			}
		}
		json.NewEncoder(w).Encode(out)

	case http.MethodPost:
		var in types.NewView
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		s.nextID++
		now := time.Now().UTC()
		view := types.NamedView{
			ID:        fmt.Sprintf("view-%d", s.nextID),
			Name:      in.Name,
			TableSlug: in.TableSlug,
			State:     types.WithDefaults(in.State),
			IsShared:  in.IsShared,
			IsOwn:     true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		s.views[view.ID] = view
		json.NewEncoder(w).Encode(view)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *viewsAPIServer) handleView(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimPrefix(r.URL.Path, "/table-views/")
	view, ok := s.views[id]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodPatch:
		var patch types.ViewPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if patch.Name != nil {
			view.Name = *patch.Name
		}
		if patch.State != nil {
			view.State = types.WithDefaults(*patch.State)
		}
		if patch.IsShared != nil {
			view.IsShared = *patch.IsShared
		}
		view.UpdatedAt = time.Now().UTC()
		s.views[id] = view
		json.NewEncoder(w).Encode(view)

	case http.MethodDelete:
		delete(s.views, id)
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *viewsAPIServer) handleStates(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		slug := r.URL.Query().Get("tableSlug")
		state, ok := s.states[slug]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"tableSlug": slug, "state": state})

	case http.MethodPost:
		var in struct {
			TableSlug string               `json:"tableSlug"`
			State     types.TableViewState `json:"state"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		s.states[in.TableSlug] = in.State
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// newHTTPFixture wires a controller and store to a client talking to an
// in-memory views API server.
func newHTTPFixture(t *testing.T) (*views.Controller, *views.Store, *viewsAPIServer) {
	t.Helper()

	api := newViewsAPIServer()
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	client := httpviews.NewClient(types.Config{
		Backend: types.BackendHTTP,
		BaseURL: srv.URL,
	})
	store := views.NewStore()
	return views.NewController(client, store), store, api
}

func TestHTTPProtocol_CreateSaveDelete(t *testing.T) {
	ctx := context.Background()
	ctrl, store, api := newHTTPFixture(t)
	store.InitTable("issues", views.InitOptions{})

	created, err := ctrl.Create(ctx, "issues", "Remote view", true)
	require.NoError(t, err)
	assert.True(t, created.IsShared)

	slice, _ := store.Get("issues")
	assert.Equal(t, created.ID, slice.ActiveViewID)

	store.UpdateActiveState("issues", func(s types.TableViewState) types.TableViewState {
		s.Density = types.DensityCompact
		return s
	})
	require.NoError(t, ctrl.Save(ctx, "issues"))

	api.mu.Lock()
	stored := api.views[created.ID]
	api.mu.Unlock()
	assert.Equal(t, types.DensityCompact, stored.State.Density)

	require.NoError(t, ctrl.Delete(ctx, "issues", created.ID))
	slice, _ = store.Get("issues")
	assert.Empty(t, slice.ActiveViewID)
}

func TestHTTPProtocol_ViewListCaching(t *testing.T) {
	ctx := context.Background()
	ctrl, store, api := newHTTPFixture(t)
	store.InitTable("issues", views.InitOptions{})

	_, err := ctrl.Create(ctx, "issues", "First", false)
	require.NoError(t, err)

	list, err := ctrl.Views(ctx, "issues")
	require.NoError(t, err)
	require.Len(t, list, 1)

	// A view created behind the controller's back stays invisible until
	// the cache is invalidated.
	api.mu.Lock()
	api.views["view-x"] = types.NamedView{ID: "view-x", Name: "Sneaky", TableSlug: "issues"}
	api.mu.Unlock()

	list, err = ctrl.Views(ctx, "issues")
	require.NoError(t, err)
	assert.Len(t, list, 1, "cached list served without refetch")

	ctrl.Invalidate("issues")
	list, err = ctrl.Views(ctx, "issues")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestHTTPProtocol_DeleteMissingViewFails(t *testing.T) {
	ctx := context.Background()
	ctrl, store, _ := newHTTPFixture(t)
	store.InitTable("issues", views.InitOptions{})

	err := ctrl.Delete(ctx, "issues", "no-such-view")
	assert.ErrorIs(t, err, types.ErrViewNotFound)
}

func TestHTTPProtocol_LiveStateRoundTrip(t *testing.T) {
	ctx := context.Background()
	ctrl, store, _ := newHTTPFixture(t)
	store.InitTable("issues", views.InitOptions{})

	store.UpdateActiveState("issues", func(s types.TableViewState) types.TableViewState {
		s.FilterOrder = []string{"status"}
		return s
	})
	require.NoError(t, ctrl.SaveLiveState(ctx, "issues"))

	store.UpdateActiveState("issues", func(s types.TableViewState) types.TableViewState {
		s.FilterOrder = nil
		return s
	})
	require.NoError(t, ctrl.RestoreLiveState(ctx, "issues"))

	slice, _ := store.Get("issues")
	assert.Equal(t, []string{"status"}, slice.ActiveState.FilterOrder)
}
