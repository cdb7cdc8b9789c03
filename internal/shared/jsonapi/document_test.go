package jsonapi

import (
	"context"
	"encoding/json"
	"errors"
	"iter"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fbraem/kwai/internal/shared/presenter"
)

type newsAttributes struct {
	Title string `json:"title"`
}

type applicationAttributes struct {
	Name string `json:"name"`
}

func newsDocument(id, title string) Document[newsAttributes] {
	application := Resource[applicationAttributes]{Type: "applications", ID: "1", Attributes: applicationAttributes{Name: "news"}}
	resource := Resource[newsAttributes]{Type: "news_items", ID: id, Attributes: newsAttributes{Title: title}}.
		Relate("application", ToOne(application.Ref()))
	document := NewDocument(resource)
	document.Include(application)
	return document
}

func TestSingleDocument(t *testing.T) {
	data, err := json.Marshal(newsDocument("1", "Judo"))
	require.NoError(t, err)
	require.JSONEq(t, `{
		"data": {
			"type": "news_items",
			"id": "1",
			"attributes": {"title": "Judo"},
			"relationships": {"application": {"data": {"type": "applications", "id": "1"}}}
		},
		"included": [{"type": "applications", "id": "1", "attributes": {"name": "news"}}]
	}`, string(data))
}

func TestMergeKeepsOrderAndCount(t *testing.T) {
	collection := NewCollection[newsAttributes](Meta{Count: 42, Offset: 10, Limit: 3})
	collection.Merge(newsDocument("1", "one"))
	collection.Merge(newsDocument("2", "two"))
	collection.Merge(newsDocument("3", "three"))

	resources := collection.Resources()
	require.Len(t, resources, 3)
	require.Equal(t, []string{"1", "2", "3"}, []string{resources[0].ID, resources[1].ID, resources[2].ID})
	require.Equal(t, 42, collection.Meta.Count)
	require.Len(t, collection.Included(), 1)

	data, err := json.Marshal(collection)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, map[string]any{"count": float64(42), "offset": float64(10), "limit": float64(3)}, decoded["meta"])
}

func TestEmptyCollectionHasEmptyData(t *testing.T) {
	data, err := json.Marshal(NewCollection[newsAttributes](Meta{}))
	require.NoError(t, err)
	require.JSONEq(t, `{"meta": {"count": 0, "offset": 0, "limit": 0}, "data": []}`, string(data))
}

func TestRelationshipShapes(t *testing.T) {
	cases := map[string]struct {
		relationship Relationship
		expected     string
	}{
		"null":     {relationship: ToOne(nil), expected: `{"data": null}`},
		"one":      {relationship: ToOne(&ResourceIdentifier{Type: "teams", ID: "3"}), expected: `{"data": {"type": "teams", "id": "3"}}`},
		"empty":    {relationship: ToMany(), expected: `{"data": []}`},
		"multiple": {relationship: ToMany(ResourceIdentifier{Type: "coaches", ID: "1"}, ResourceIdentifier{Type: "coaches", ID: "2"}), expected: `{"data": [{"type": "coaches", "id": "1"}, {"type": "coaches", "id": "2"}]}`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			data, err := json.Marshal(tc.relationship)
			require.NoError(t, err)
			require.JSONEq(t, tc.expected, string(data))

			var decoded Relationship
			require.NoError(t, json.Unmarshal(data, &decoded))
			require.Equal(t, tc.relationship.IsMany(), decoded.IsMany())
			require.Equal(t, tc.relationship.Many(), decoded.Many())
		})
	}
}

func TestDecodeRequestDocument(t *testing.T) {
	var document Document[newsAttributes]
	err := json.Unmarshal([]byte(`{"data": {"type": "news_items", "attributes": {"title": "Randori"},
		"relationships": {"application": {"data": {"type": "applications", "id": "7"}}}}}`), &document)
	require.NoError(t, err)

	resource, ok := document.Resource()
	require.True(t, ok)
	require.Equal(t, "Randori", resource.Attributes.Title)
	relationship, ok := resource.Relationship("application")
	require.True(t, ok)
	application, ok := relationship.One()
	require.True(t, ok)
	require.Equal(t, "7", application.ID)
}

func TestCollectionPresenter(t *testing.T) {
	titles := []string{"a", "b"}
	result := presenter.IterableResult[string]{
		Count: 10,
		Limit: 2,
		Iterator: func(yield func(string, error) bool) {
			for _, title := range titles {
				if !yield(title, nil) {
					return
				}
			}
		},
	}
	p := NewCollectionPresenter(func(title string) Document[newsAttributes] { return newsDocument(title, title) })
	require.NoError(t, p.Present(context.Background(), result))

	document := p.Document()
	require.Len(t, document.Resources(), 2)
	require.Equal(t, 10, document.Meta.Count)
	require.Equal(t, 2, document.Meta.Limit)
}

func TestCollectionPresenterStopsOnError(t *testing.T) {
	failure := errors.New("cursor closed")
	var failing iter.Seq2[string, error] = func(yield func(string, error) bool) {
		yield("", failure)
	}
	p := NewCollectionPresenter(func(title string) Document[newsAttributes] { return newsDocument(title, title) })
	err := p.Present(context.Background(), presenter.IterableResult[string]{Iterator: failing})
	require.ErrorIs(t, err, failure)
}
