package gptrouter

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeMetadata(t *testing.T) {
	base := func() map[string]any {
		return map[string]any{"stream": false, "data": []string{"A"}}
	}

	t.Run("call site overrides defaults", func(t *testing.T) {
		out, err := MergeMetadata(base(),
			Metadata{MetaTag: "a", MetaCreatedByUserID: "u1"},
			Metadata{MetaTag: "b"})
		require.NoError(t, err)

		assert.Equal(t, "b", out["tag"])
		assert.Equal(t, "u1", out["createdByUserId"])
		assert.Equal(t, Metadata{MetaTag: "b", MetaCreatedByUserID: "u1"}, out["metadata"])
		assert.Equal(t, false, out["stream"])
	})

	t.Run("absent tag and history are omitted", func(t *testing.T) {
		out, err := MergeMetadata(base(), Metadata{MetaCreatedByUserID: "u1"}, nil)
		require.NoError(t, err)

		assert.NotContains(t, out, "tag")
		assert.NotContains(t, out, "historyId")
		assert.Contains(t, out, "createdByUserId")
	})

	t.Run("nil tag is omitted", func(t *testing.T) {
		out, err := MergeMetadata(base(), nil, Metadata{MetaCreatedByUserID: "u1", MetaTag: nil})
		require.NoError(t, err)
		assert.NotContains(t, out, "tag")
	})

	t.Run("no metadata adds nothing", func(t *testing.T) {
		out, err := MergeMetadata(base(), nil, Metadata{})
		require.NoError(t, err)
		assert.Equal(t, base(), out)
	})

	t.Run("missing user id", func(t *testing.T) {
		_, err := MergeMetadata(base(), Metadata{MetaTag: "a"}, nil)
		assert.ErrorIs(t, err, ErrMissingCreatedByUserID)

		_, err = MergeMetadata(base(), nil, Metadata{MetaCreatedByUserID: nil})
		assert.ErrorIs(t, err, ErrMissingCreatedByUserID)
	})

	t.Run("history id is stringified", func(t *testing.T) {
		id := uuid.New()
		out, err := MergeMetadata(base(), nil, Metadata{MetaCreatedByUserID: 42, MetaHistoryID: id})
		require.NoError(t, err)
		assert.Equal(t, id.String(), out["historyId"])
		assert.Equal(t, 42, out["createdByUserId"])

		out, err = MergeMetadata(base(), nil, Metadata{MetaCreatedByUserID: "u", MetaHistoryID: 17})
		require.NoError(t, err)
		assert.Equal(t, "17", out["historyId"])
	})

	t.Run("nil payload values are stripped", func(t *testing.T) {
		out, err := MergeMetadata(map[string]any{"keep": 1, "drop": nil}, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"keep": 1}, out)
	})

	t.Run("inputs are not mutated", func(t *testing.T) {
		payload := base()
		defaults := Metadata{MetaTag: "a", MetaCreatedByUserID: "u1"}
		call := Metadata{MetaTag: "b"}

		_, err := MergeMetadata(payload, defaults, call)
		require.NoError(t, err)

		assert.Equal(t, base(), payload)
		assert.Equal(t, Metadata{MetaTag: "a", MetaCreatedByUserID: "u1"}, defaults)
		assert.Equal(t, Metadata{MetaTag: "b"}, call)
	})
}

func TestMetadataBuilders(t *testing.T) {
	var md Metadata
	assert.Nil(t, md.Clone())

	withTag := md.WithTag("t")
	assert.Nil(t, md)
	assert.Equal(t, Metadata{MetaTag: "t"}, withTag)

	full := withTag.WithCreatedByUserID("u").WithHistoryID("h")
	assert.Equal(t, Metadata{MetaTag: "t", MetaCreatedByUserID: "u", MetaHistoryID: "h"}, full)
	assert.Len(t, withTag, 1)

	clone := full.Clone()
	clone[MetaTag] = "x"
	assert.Equal(t, "t", full[MetaTag])
}
