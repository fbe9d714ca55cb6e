package store

import (
	"testing"

	"feedthread/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldPath(t *testing.T) {
	base := Field("comments")
	p := base.At(3).Field("replys")
	assert.Equal(t, "comments.3.replys", p.String())
	assert.Equal(t, "{3,replys}", p.PGArray())
	assert.Equal(t, "comments", base.String(), "builders must not mutate the receiver")

	i, ok := p.Index(1)
	assert.True(t, ok)
	assert.Equal(t, 3, i)
	_, ok = p.Index(2)
	assert.False(t, ok)
}

func TestPatchValidate(t *testing.T) {
	cases := []struct {
		name string
		p    Patch
		ok   bool
	}{
		{"inc", Inc(Articles, "A1", "browse_count", 1), true},
		{"push", PushComment("A1", models.Comment{}), true},
		{"no doc", Inc(Articles, "", "browse_count", 1), false},
		{"int inc", Patch{Collection: Articles, DocID: "A1", Path: Field("browse_count"), Op: OpInc, Value: 1}, false},
		{"dotted segment", Patch{Collection: Articles, DocID: "A1", Path: FieldPath{"a.b"}, Op: OpInc, Value: int64(1)}, false},
		{"operator segment", Patch{Collection: Articles, DocID: "A1", Path: FieldPath{"$set"}, Op: OpInc, Value: int64(1)}, false},
		{"unknown op", Patch{Collection: Articles, DocID: "A1", Path: Field("x"), Value: 1}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.p.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func comment(id string) models.Comment {
	return models.Comment{Node: models.Node{CommentID: id}, Replys: []models.Reply{}}
}

func TestApplyToArticleUnshift(t *testing.T) {
	a := &models.Article{ID: "A1", Comments: []models.Comment{comment("c1")}}

	col, err := ApplyToArticle(a, PushComment("A1", comment("c2")))
	require.NoError(t, err)
	assert.Equal(t, "comments", col)
	require.Len(t, a.Comments, 2)
	assert.Equal(t, "c2", a.Comments[0].CommentID)

	r := models.Reply{Node: models.Node{CommentID: "r1", IsReply: true}}
	_, err = ApplyToArticle(a, PushReply("A1", 1, "c1", r))
	require.NoError(t, err)
	assert.Equal(t, "r1", a.Comments[1].Replys[0].CommentID)
	assert.Empty(t, a.Comments[0].Replys)
}

func TestApplyToArticleGuard(t *testing.T) {
	a := &models.Article{ID: "A1", Comments: []models.Comment{comment("c2"), comment("c1")}}
	r := models.Reply{Node: models.Node{CommentID: "r1"}}

	// c1 was at index 0 when the caller looked, a newer comment has since moved it.
	_, err := ApplyToArticle(a, PushReply("A1", 0, "c1", r))
	assert.ErrorIs(t, err, ErrConflict)
	assert.Empty(t, a.Comments[0].Replys)
	assert.Empty(t, a.Comments[1].Replys)

	_, err = ApplyToArticle(a, PushReply("A1", 5, "c1", r))
	assert.ErrorIs(t, err, ErrConflict)
}

func TestApplyToArticleInc(t *testing.T) {
	a := &models.Article{ID: "A1", ThumbsUpCount: 2}
	col, err := ApplyToArticle(a, Inc(Articles, "A1", "thumbs_up_count", 1))
	require.NoError(t, err)
	assert.Equal(t, "thumbs_up_count", col)
	assert.EqualValues(t, 3, a.ThumbsUpCount)

	_, err = ApplyToArticle(a, Inc(Articles, "A1", "title", 1))
	assert.Error(t, err)
}
