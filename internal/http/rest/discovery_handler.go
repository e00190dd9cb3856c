package rest

import (
	"net/http"

	"github.com/gatherly/gatherly_api/internal/model"
	"github.com/gatherly/gatherly_api/internal/search"
	"github.com/gatherly/gatherly_api/util"
	"github.com/gatherly/gatherly_api/util/tracing"
	"github.com/gatherly/gatherly_api/util/values"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (api *API) SearchGroups(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	filter, err := search.ParseFilter(r.URL.Query())
	if err != nil {
		return respondWithError(err, "invalid search filter", values.BadRequestBody, &tc)
	}

	// An unparseable community id is just an unknown community: empty
	// results, not an error.
	communityID, err := uuid.Parse(chi.URLParam(r, "communityID"))
	if err != nil {
		return &ServerResponse{
			Message:    "Groups fetched successfully",
			Status:     values.Success,
			StatusCode: util.StatusCode(values.Success),
			Data:       model.GroupSearchResult{Items: []model.GroupSummary{}},
		}
	}

	result, status, message, err := api.SearchGroupsHelper(r.Context(), communityID, filter)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       result,
	}
}

func (api *API) SearchEvents(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	filter, err := search.ParseFilter(r.URL.Query())
	if err != nil {
		return respondWithError(err, "invalid search filter", values.BadRequestBody, &tc)
	}

	communityID, err := uuid.Parse(chi.URLParam(r, "communityID"))
	if err != nil {
		return &ServerResponse{
			Message:    "Events fetched successfully",
			Status:     values.Success,
			StatusCode: util.StatusCode(values.Success),
			Data:       model.EventSearchResult{Items: []model.EventSummary{}},
		}
	}

	result, status, message, err := api.SearchEventsHelper(r.Context(), communityID, filter)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       result,
	}
}
