package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Chasso/cdk-local-testing/internal/models"
	"github.com/Chasso/cdk-local-testing/internal/store"
	"github.com/Chasso/cdk-local-testing/pkg/invocation"
)

// fakeStore is an in-memory RecordStore for exercising handlers without
// a backend
type fakeStore struct {
	records map[string]models.Record
	links   map[string]models.Record
	nextID  string
	failure error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		records: make(map[string]models.Record),
		links:   make(map[string]models.Record),
		nextID:  "generated-id",
	}
}

func (f *fakeStore) List(ctx context.Context, entityType string) ([]models.Record, error) {
	if f.failure != nil {
		return nil, f.failure
	}
	out := []models.Record{}
	for _, rec := range f.records {
		out = append(out, rec.Clone())
	}
	return out, nil
}

func (f *fakeStore) Get(ctx context.Context, id, entityType string) (models.Record, error) {
	if f.failure != nil {
		return nil, f.failure
	}
	rec, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	return rec.Clone(), nil
}

func (f *fakeStore) Create(ctx context.Context, rec models.Record, entityType string) (string, error) {
	if f.failure != nil {
		return "", f.failure
	}
	item := rec.Clone()
	item[models.FieldID] = f.nextID
	f.records[f.nextID] = item
	return f.nextID, nil
}

func (f *fakeStore) Update(ctx context.Context, rec models.Record, entityType string) error {
	if f.failure != nil {
		return f.failure
	}
	id := rec.ID()
	if id == "" {
		return store.ErrMissingID
	}
	existing, ok := f.records[id]
	if !ok {
		return &store.NotFoundError{EntityType: entityType, ID: id}
	}
	f.records[id] = models.Merge(existing, rec)
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id, entityType string) error {
	if f.failure != nil {
		return f.failure
	}
	delete(f.records, id)
	return nil
}

func (f *fakeStore) CreateLink(ctx context.Context, rec models.Record, pk, sk string) error {
	f.links[pk+"|"+sk] = rec.Clone()
	return nil
}

func (f *fakeStore) DeleteLink(ctx context.Context, pk, sk string) error {
	delete(f.links, pk+"|"+sk)
	return nil
}

func request(id, body string) *invocation.Request {
	req := &invocation.Request{Body: body}
	if id != "" {
		req.PathParams = map[string]string{"id": id}
	}
	return req
}

// TestListItems verifies the list handler returns every stored item
func TestListItems(t *testing.T) {
	fake := newFakeStore()
	fake.records["1"] = models.Record{"id": "1", "name": "sourdough"}
	fake.records["2"] = models.Record{"id": "2", "name": "baguette"}

	result, err := NewItems(fake).List(context.Background(), request("", ""))
	if err != nil {
		t.Fatalf("List returned an error: %v", err)
	}
	if result.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", result.StatusCode)
	}

	var listed []models.Record
	if err := json.Unmarshal([]byte(result.Body), &listed); err != nil {
		t.Fatalf("Failed to decode list body: %v", err)
	}
	if len(listed) != 2 {
		t.Errorf("Expected 2 items, got %d", len(listed))
	}
}

// TestListItemsEmpty verifies an empty store lists as an empty JSON
// array, not null
func TestListItemsEmpty(t *testing.T) {
	result, err := NewItems(newFakeStore()).List(context.Background(), request("", ""))
	if err != nil {
		t.Fatalf("List returned an error: %v", err)
	}
	if result.Body != "[]" {
		t.Errorf("Expected an empty JSON array, got %q", result.Body)
	}
}

// TestListItemsStoreFailure verifies backend failures surface as a 500
// envelope carrying the message
func TestListItemsStoreFailure(t *testing.T) {
	fake := newFakeStore()
	fake.failure = store.NewOperationError("Query", "ITEM", errors.New("backend down"))

	result, err := NewItems(fake).List(context.Background(), request("", ""))
	if err != nil {
		t.Fatalf("Expected the error wrapped in the envelope, got %v", err)
	}
	if result.StatusCode != 500 {
		t.Errorf("Expected status 500, got %d", result.StatusCode)
	}

	var body invocation.ErrorBody
	if err := json.Unmarshal([]byte(result.Body), &body); err != nil {
		t.Fatalf("Failed to decode error body: %v", err)
	}
	if body.Error == "" {
		t.Error("Expected the failure message in the envelope")
	}
}

// TestGetItem verifies retrieval of one stored item
func TestGetItem(t *testing.T) {
	fake := newFakeStore()
	fake.records["42"] = models.Record{"id": "42", "name": "croissant", "filling": "almond"}

	result, err := NewItems(fake).Get(context.Background(), request("42", ""))
	if err != nil {
		t.Fatalf("Get returned an error: %v", err)
	}
	if result.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", result.StatusCode)
	}

	var rec models.Record
	if err := json.Unmarshal([]byte(result.Body), &rec); err != nil {
		t.Fatalf("Failed to decode item body: %v", err)
	}
	if rec["filling"] != "almond" {
		t.Errorf("Expected the full record returned, got %v", rec)
	}
}

// TestGetItemMissing verifies an absent id yields a 404 envelope
func TestGetItemMissing(t *testing.T) {
	result, err := NewItems(newFakeStore()).Get(context.Background(), request("nope", ""))
	if err != nil {
		t.Fatalf("Get returned an error: %v", err)
	}
	if result.StatusCode != 404 {
		t.Errorf("Expected status 404, got %d", result.StatusCode)
	}

	var body invocation.ErrorBody
	if err := json.Unmarshal([]byte(result.Body), &body); err != nil {
		t.Fatalf("Failed to decode error body: %v", err)
	}
	if body.Error != "ITEM record 'nope' not found" {
		t.Errorf("Expected the kinded not-found message, got %q", body.Error)
	}
}

// TestCreateItem verifies creation returns the generated id and keeps
// fields outside the typed view
func TestCreateItem(t *testing.T) {
	fake := newFakeStore()

	result, err := NewItems(fake).Create(context.Background(),
		request("", `{"name":"rye loaf","crust":"dark"}`))
	if err != nil {
		t.Fatalf("Create returned an error: %v", err)
	}
	if result.StatusCode != 201 {
		t.Fatalf("Expected status 201, got %d", result.StatusCode)
	}

	var body map[string]string
	if err := json.Unmarshal([]byte(result.Body), &body); err != nil {
		t.Fatalf("Failed to decode create body: %v", err)
	}
	if body["id"] != "generated-id" {
		t.Errorf("Expected the generated id, got %v", body)
	}

	stored := fake.records["generated-id"]
	if stored == nil {
		t.Fatal("Expected the record stored")
	}
	if stored["crust"] != "dark" {
		t.Errorf("Expected fields outside the typed view preserved, got %v", stored)
	}
}

// TestCreateItemRejectsInvalidPayloads verifies malformed and
// incomplete payloads fail with 400 before touching the store
func TestCreateItemRejectsInvalidPayloads(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"malformed", `{"name":`},
		{"missing name", `{"color":"blue"}`},
		{"empty body", ""},
	}

	for _, tc := range cases {
		fake := newFakeStore()
		result, err := NewItems(fake).Create(context.Background(), request("", tc.body))
		if err != nil {
			t.Fatalf("%s: Create returned an error: %v", tc.name, err)
		}
		if result.StatusCode != 400 {
			t.Errorf("%s: expected status 400, got %d", tc.name, result.StatusCode)
		}
		if len(fake.records) != 0 {
			t.Errorf("%s: expected nothing stored", tc.name)
		}
	}
}

// TestUpdateItem verifies the body merges over the stored record and
// untouched fields survive
func TestUpdateItem(t *testing.T) {
	fake := newFakeStore()
	fake.records["7"] = models.Record{"id": "7", "name": "brioche", "butter": "extra"}

	result, err := NewItems(fake).Update(context.Background(),
		request("7", `{"name":"brioche loaf"}`))
	if err != nil {
		t.Fatalf("Update returned an error: %v", err)
	}
	if result.StatusCode != 204 {
		t.Fatalf("Expected status 204, got %d", result.StatusCode)
	}

	stored := fake.records["7"]
	if stored["name"] != "brioche loaf" {
		t.Errorf("Expected the patched field updated, got %v", stored["name"])
	}
	if stored["butter"] != "extra" {
		t.Errorf("Expected untouched fields preserved, got %v", stored)
	}
}

// TestUpdateItemMissing verifies patching an absent id yields a 404
// envelope
func TestUpdateItemMissing(t *testing.T) {
	result, err := NewItems(newFakeStore()).Update(context.Background(),
		request("ghost", `{"name":"phantom"}`))
	if err != nil {
		t.Fatalf("Update returned an error: %v", err)
	}
	if result.StatusCode != 404 {
		t.Errorf("Expected status 404, got %d", result.StatusCode)
	}
}

// TestUpdateItemIDMismatch verifies a body id contradicting the path id
// is rejected
func TestUpdateItemIDMismatch(t *testing.T) {
	fake := newFakeStore()
	fake.records["7"] = models.Record{"id": "7", "name": "brioche"}

	result, err := NewItems(fake).Update(context.Background(),
		request("7", `{"id":"8","name":"hijack"}`))
	if err != nil {
		t.Fatalf("Update returned an error: %v", err)
	}
	if result.StatusCode != 400 {
		t.Errorf("Expected status 400, got %d", result.StatusCode)
	}
	if fake.records["7"]["name"] != "brioche" {
		t.Error("Expected the stored record untouched")
	}
}

// TestDeleteItem verifies deletion succeeds for present and absent ids
// alike
func TestDeleteItem(t *testing.T) {
	fake := newFakeStore()
	fake.records["9"] = models.Record{"id": "9", "name": "bagel"}

	items := NewItems(fake)

	result, err := items.Delete(context.Background(), request("9", ""))
	if err != nil {
		t.Fatalf("Delete returned an error: %v", err)
	}
	if result.StatusCode != 204 {
		t.Errorf("Expected status 204, got %d", result.StatusCode)
	}
	if _, ok := fake.records["9"]; ok {
		t.Error("Expected the record removed")
	}

	result, err = items.Delete(context.Background(), request("9", ""))
	if err != nil {
		t.Fatalf("Second delete returned an error: %v", err)
	}
	if result.StatusCode != 204 {
		t.Errorf("Expected the second delete to succeed with 204, got %d", result.StatusCode)
	}
}

// TestItemsRouteTable verifies the resource declares the full CRUD
// surface
func TestItemsRouteTable(t *testing.T) {
	items := NewItems(newFakeStore())

	if items.BasePath() != "items" {
		t.Errorf("Expected base path items, got %q", items.BasePath())
	}
	if len(items.Routes()) != 5 {
		t.Errorf("Expected 5 routes, got %d", len(items.Routes()))
	}
	for _, route := range items.Routes() {
		if route.Handler == nil {
			t.Errorf("Route %s %s has no handler", route.Method, route.Path)
		}
	}
}
