package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Chasso/cdk-local-testing/internal/models"
	"github.com/Chasso/cdk-local-testing/internal/routes"
	"github.com/Chasso/cdk-local-testing/internal/store"
	"github.com/Chasso/cdk-local-testing/pkg/invocation"
)

// Items handles item-related requests over the shared record store
type Items struct {
	store store.RecordStore
}

// NewItems creates a new items resource
func NewItems(s store.RecordStore) *Items {
	return &Items{store: s}
}

// BasePath returns the path segment the resource is mounted under
func (h *Items) BasePath() string {
	return "items"
}

// Routes returns the static route table for the resource
func (h *Items) Routes() []routes.Route {
	return []routes.Route{
		{Method: routes.GET, Path: "", Handler: h.List},
		{Method: routes.GET, Path: ":id", Handler: h.Get},
		{Method: routes.POST, Path: "", Handler: h.Create},
		{Method: routes.PUT, Path: ":id", Handler: h.Update},
		{Method: routes.DELETE, Path: ":id", Handler: h.Delete},
	}
}

// List returns every item record
func (h *Items) List(ctx context.Context, req *invocation.Request) (*invocation.Result, error) {
	records, err := h.store.List(ctx, models.EntityTypeItem)
	if err != nil {
		return storeError(err)
	}

	return invocation.BuildResponse(http.StatusOK, records, invocation.HeaderModeCORS)
}

// Get returns one item record by id
func (h *Items) Get(ctx context.Context, req *invocation.Request) (*invocation.Result, error) {
	id := req.Param("id")

	rec, err := h.store.Get(ctx, id, models.EntityTypeItem)
	if err != nil {
		return storeError(err)
	}
	if rec == nil {
		return storeError(&store.NotFoundError{EntityType: models.EntityTypeItem, ID: id})
	}

	return invocation.BuildResponse(http.StatusOK, rec, invocation.HeaderModeCORS)
}

// Create stores a new item record and returns its generated id
func (h *Items) Create(ctx context.Context, req *invocation.Request) (*invocation.Result, error) {
	_, rec, err := models.ParseItem(req.Body)
	if err != nil {
		return invocation.ErrorResponse(http.StatusBadRequest, err, invocation.HeaderModeCORS), nil
	}

	id, err := h.store.Create(ctx, rec, models.EntityTypeItem)
	if err != nil {
		return storeError(err)
	}

	return invocation.BuildResponse(http.StatusCreated, map[string]string{"id": id}, invocation.HeaderModeCORS)
}

// Update applies the request body as a merge patch over the stored item
func (h *Items) Update(ctx context.Context, req *invocation.Request) (*invocation.Result, error) {
	patch, err := models.ParseRecord(req.Body)
	if err != nil {
		return invocation.ErrorResponse(http.StatusBadRequest, err, invocation.HeaderModeCORS), nil
	}

	id := req.Param("id")
	if bodyID := patch.ID(); bodyID != "" && bodyID != id {
		return invocation.ErrorResponse(http.StatusBadRequest,
			fmt.Errorf("record id %q does not match path id %q", bodyID, id),
			invocation.HeaderModeCORS), nil
	}
	patch[models.FieldID] = id

	if err := h.store.Update(ctx, patch, models.EntityTypeItem); err != nil {
		return storeError(err)
	}

	return invocation.BuildResponse(http.StatusNoContent, nil, invocation.HeaderModeCORS)
}

// Delete removes one item record by id. Deleting an absent item
// succeeds.
func (h *Items) Delete(ctx context.Context, req *invocation.Request) (*invocation.Result, error) {
	if err := h.store.Delete(ctx, req.Param("id"), models.EntityTypeItem); err != nil {
		return storeError(err)
	}

	return invocation.BuildResponse(http.StatusNoContent, nil, invocation.HeaderModeCORS)
}

// storeError translates data-layer errors into response envelopes
func storeError(err error) (*invocation.Result, error) {
	status := http.StatusInternalServerError
	switch {
	case store.IsNotFound(err):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrMissingID):
		status = http.StatusBadRequest
	}

	return invocation.ErrorResponse(status, err, invocation.HeaderModeCORS), nil
}
