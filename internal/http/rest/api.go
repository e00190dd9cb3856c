package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gatherly/gatherly_api/config"
	"github.com/gatherly/gatherly_api/internal/facet"
	"github.com/gatherly/gatherly_api/internal/search"
	"github.com/gatherly/gatherly_api/internal/stats"
	"github.com/gatherly/gatherly_api/internal/store"
	"github.com/gatherly/gatherly_api/util/values"
	"github.com/go-chi/chi/v5"
)

const (
	defaultIdleTimeout    = time.Minute
	defaultReadTimeout    = 5 * time.Second
	defaultWriteTimeout   = 10 * time.Second
	defaultShutdownPeriod = 30 * time.Second
)

type Handler func(w http.ResponseWriter, r *http.Request) *ServerResponse

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := h(w, r)
	respByte, err := json.Marshal(resp)
	if err != nil {
		writeErrorResponse(w, err, values.Error, "unable to marshal server response")
		return
	}
	writeJSONResponse(w, respByte, resp.StatusCode)
}

type API struct {
	Server *http.Server
	Config *config.Config
	Store  *store.Store
	Search *search.Index
	Facet  *facet.Builder
	Stats  *stats.Service
}

func (api *API) Serve() error {
	api.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", api.Config.Port),
		IdleTimeout:  defaultIdleTimeout,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		Handler:      api.setUpServerHandler(),
	}
	return api.Server.ListenAndServe()
}

func (api *API) setUpServerHandler() http.Handler {
	mux := chi.NewRouter()
	mux.Use(RequestTracing)

	mux.Get("/",
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("Hello, World!"))
		},
	)

	mux.Mount("/communities", api.CommunityRoutes())
	mux.Method(http.MethodGet, "/filter-options", Handler(api.FilterOptions))
	mux.Method(http.MethodGet, "/stats/site", Handler(api.SiteStats))

	return mux
}

func (api *API) CommunityRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Method(http.MethodGet, "/{communityID}/groups/search", Handler(api.SearchGroups))
	mux.Method(http.MethodGet, "/{communityID}/events/search", Handler(api.SearchEvents))
	mux.Method(http.MethodGet, "/{communityID}/stats", Handler(api.CommunityStats))
	mux.Method(http.MethodGet, "/{communityID}/stats/home", Handler(api.CommunityHomeStats))

	return mux
}

func (a *API) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownPeriod)
	defer cancel()

	return a.Server.Shutdown(ctx)
}
