package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gatherly/gatherly_api/internal/facet"
	"github.com/gatherly/gatherly_api/internal/model"
	"github.com/gatherly/gatherly_api/util"
	"github.com/gatherly/gatherly_api/util/tracing"
	"github.com/gatherly/gatherly_api/util/values"
	"github.com/google/uuid"
)

func (api *API) FilterOptions(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	entityKind := r.URL.Query().Get("entity_kind")
	switch entityKind {
	case "", "groups", "events":
	default:
		err := fmt.Errorf("invalid entity_kind %q", entityKind)
		return respondWithError(err, "invalid entity_kind", values.BadRequestBody, &tc)
	}

	scope := facet.Scope{
		Site:       r.URL.Query().Get("scope") != "community",
		EntityKind: entityKind,
	}

	// Resolve the community if one was named. Anything that does not resolve
	// degrades to the unknown-scope shape rather than failing.
	if raw := r.URL.Query().Get("community"); raw != "" {
		if id, parseErr := uuid.Parse(raw); parseErr == nil {
			if _, lookupErr := api.Store.GetCommunity(r.Context(), id); lookupErr == nil {
				scope.CommunityID = &id
			}
		}
	}

	options, status, message, err := api.FilterOptionsHelper(r.Context(), scope)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       options,
	}
}

func (api *API) FilterOptionsHelper(ctx context.Context, scope facet.Scope) (model.FacetOptions, string, string, error) {
	options, err := api.Facet.Options(ctx, scope)
	if err != nil {
		return options, values.Error, "Failed to build filter options", err
	}
	return options, values.Success, "Filter options fetched successfully", nil
}
