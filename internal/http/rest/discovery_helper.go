package rest

import (
	"context"

	"github.com/gatherly/gatherly_api/internal/model"
	"github.com/gatherly/gatherly_api/internal/search"
	"github.com/gatherly/gatherly_api/util/values"
	"github.com/google/uuid"
)

func (api *API) SearchGroupsHelper(ctx context.Context, communityID uuid.UUID, filter search.Filter) (model.GroupSearchResult, string, string, error) {
	result, err := api.Search.SearchGroups(ctx, communityID, filter)
	if err != nil {
		return result, values.Error, "Failed to search groups", err
	}
	return result, values.Success, "Groups fetched successfully", nil
}

func (api *API) SearchEventsHelper(ctx context.Context, communityID uuid.UUID, filter search.Filter) (model.EventSearchResult, string, string, error) {
	result, err := api.Search.SearchEvents(ctx, communityID, filter)
	if err != nil {
		return result, values.Error, "Failed to search events", err
	}
	return result, values.Success, "Events fetched successfully", nil
}
