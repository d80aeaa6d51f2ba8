package marketplace_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lalajistore/vendor-gateway/pkg/marketplace"
)

func TestNormalizeProducts_BareArray(t *testing.T) {
	data := json.RawMessage(`[{"_id": "p1", "name": "Widget"}, {"_id": "p2", "name": "Gadget"}]`)

	items, shape := marketplace.NormalizeProducts(data)
	assert.Equal(t, marketplace.ShapeArray, shape)
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ID)
}

func TestNormalizeProducts_NestedObject(t *testing.T) {
	data := json.RawMessage(`{"products": [{"_id": "p1", "name": "Widget"}]}`)

	items, shape := marketplace.NormalizeProducts(data)
	assert.Equal(t, marketplace.ShapeNested, shape)
	require.Len(t, items, 1)
	assert.Equal(t, "Widget", items[0].Name)
}

func TestNormalizeProducts_Unrecognized(t *testing.T) {
	cases := map[string]json.RawMessage{
		"empty payload":   nil,
		"scalar":          json.RawMessage(`42`),
		"object no field": json.RawMessage(`{"items": []}`),
		"null":            json.RawMessage(`null`),
		"string":          json.RawMessage(`"oops"`),
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			items, shape := marketplace.NormalizeProducts(data)
			assert.Equal(t, marketplace.ShapeUnrecognized, shape)
			assert.Empty(t, items)
		})
	}
}

func TestProductRef_Unmarshal(t *testing.T) {
	t.Run("bare id", func(t *testing.T) {
		var ref marketplace.ProductRef
		require.NoError(t, json.Unmarshal([]byte(`"p7"`), &ref))
		assert.Equal(t, "p7", ref.ID)
		assert.Nil(t, ref.Product)
	})

	t.Run("populated document", func(t *testing.T) {
		var ref marketplace.ProductRef
		require.NoError(t, json.Unmarshal([]byte(`{"_id": "p7", "name": "Widget"}`), &ref))
		assert.Equal(t, "p7", ref.ID)
		require.NotNil(t, ref.Product)
		assert.Equal(t, "Widget", ref.Product.Name)
	})
}

func TestProductRef_MarshalRoundTrip(t *testing.T) {
	bare := marketplace.ProductRef{ID: "p1"}
	b, err := json.Marshal(bare)
	require.NoError(t, err)
	assert.JSONEq(t, `"p1"`, string(b))

	populated := marketplace.ProductRef{ID: "p1", Product: &marketplace.Product{ID: "p1", Name: "Widget"}}
	b, err = json.Marshal(populated)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"name":"Widget"`)
}

func TestEnvelope_ErrMessage(t *testing.T) {
	e := &marketplace.Envelope{Error: "hard error", Message: "soft message"}
	assert.Equal(t, "hard error", e.ErrMessage())

	e = &marketplace.Envelope{Message: "soft message"}
	assert.Equal(t, "soft message", e.ErrMessage())
}
