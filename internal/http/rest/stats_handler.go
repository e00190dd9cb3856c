package rest

import (
	"net/http"

	"github.com/gatherly/gatherly_api/util"
	"github.com/gatherly/gatherly_api/util/tracing"
	"github.com/gatherly/gatherly_api/util/values"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (api *API) SiteStats(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	payload, err := api.Stats.SiteStats(r.Context())
	if err != nil {
		return respondWithError(err, "Failed to build site stats", values.Error, &tc)
	}

	return &ServerResponse{
		Message:    "Site stats fetched successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       payload,
	}
}

func (api *API) CommunityStats(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	// An unparseable id scopes the aggregation to nothing, which yields the
	// empty payload an unknown community gets.
	communityID, err := uuid.Parse(chi.URLParam(r, "communityID"))
	if err != nil {
		communityID = uuid.Nil
	}

	payload, err := api.Stats.CommunityStats(r.Context(), communityID)
	if err != nil {
		return respondWithError(err, "Failed to build community stats", values.Error, &tc)
	}

	return &ServerResponse{
		Message:    "Community stats fetched successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       payload,
	}
}

func (api *API) CommunityHomeStats(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	communityID, err := uuid.Parse(chi.URLParam(r, "communityID"))
	if err != nil {
		communityID = uuid.Nil
	}

	counts, err := api.Stats.CommunityHomeStats(r.Context(), communityID)
	if err != nil {
		return respondWithError(err, "Failed to build community home stats", values.Error, &tc)
	}

	return &ServerResponse{
		Message:    "Community home stats fetched successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       counts,
	}
}
