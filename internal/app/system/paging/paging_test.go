package paging

import (
	"net/http/httptest"
	"testing"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseStart(t *testing.T) {
	cases := map[string]int{
		"":          1,
		"start=1":   1,
		"start=51":  51,
		"start=0":   1,
		"start=-5":  1,
		"start=abc": 1,
	}
	for qs, want := range cases {
		r := httptest.NewRequest("GET", "/requests?"+qs, nil)
		assert.Equal(t, want, ParseStart(r), "query %q", qs)
	}
}

func TestParseCursors(t *testing.T) {
	r := httptest.NewRequest("GET", "/admin/users?before=b&after=a", nil)
	before, after := ParseCursors(r)
	assert.Equal(t, "b", before)
	assert.Equal(t, "a", after)
}

func TestTrimPage_FirstPageShort(t *testing.T) {
	rows := []int{1, 2, 3}
	res := TrimPage(&rows, "", "")

	assert.Len(t, rows, 3)
	assert.False(t, res.HasPrev)
	assert.False(t, res.HasNext)
}

func TestTrimPage_ForwardOverflow(t *testing.T) {
	rows := make([]int, PageSize+1)
	res := TrimPage(&rows, "", "after-cursor")

	assert.Len(t, rows, PageSize, "the look-ahead row is trimmed")
	assert.True(t, res.HasPrev, "an after cursor means a previous page")
	assert.True(t, res.HasNext)
}

func TestTrimPage_BackwardOverflow(t *testing.T) {
	full := make([]int, PageSize+1)
	res := TrimPage(&full, "before-cursor", "")

	assert.Len(t, full, PageSize, "the oldest look-ahead row is trimmed")
	assert.True(t, res.HasPrev)
	assert.True(t, res.HasNext, "paging back always has a next page")
}

func TestTrimPage_BackwardShort(t *testing.T) {
	rows := []int{0, 1, 2}
	res := TrimPage(&rows, "before-cursor", "")

	assert.Len(t, rows, 3)
	assert.False(t, res.HasPrev)
	assert.True(t, res.HasNext)
}

func TestComputeRange(t *testing.T) {
	rng := ComputeRange(1, 20)
	assert.Equal(t, Range{Start: 1, End: 20, PrevStart: 1, NextStart: 21}, rng)

	rng = ComputeRange(101, PageSize)
	assert.Equal(t, 101, rng.Start)
	assert.Equal(t, 100+PageSize, rng.End)
	assert.Equal(t, 51, rng.PrevStart)
	assert.Equal(t, 101+PageSize, rng.NextStart)
}

func TestComputeRange_Empty(t *testing.T) {
	rng := ComputeRange(1, 0)
	assert.Equal(t, Range{Start: 0, End: 0, PrevStart: 1, NextStart: 1}, rng)
}

func TestComputeRange_PrevClampsToOne(t *testing.T) {
	rng := ComputeRange(10, 5)
	assert.Equal(t, 1, rng.PrevStart)
}

func TestConfigureKeyset_Forward(t *testing.T) {
	cfg := ConfigureKeyset("", "")

	assert.Equal(t, Forward, cfg.Direction)
	assert.Equal(t, 1, cfg.SortOrder)
	assert.Nil(t, cfg.Cursor)
	assert.Nil(t, cfg.KeysetWindow("name_ci"))
}

func TestConfigureKeyset_After(t *testing.T) {
	id := primitive.NewObjectID()
	cfg := ConfigureKeyset("", wafflemongo.EncodeCursor("smith", id))

	assert.Equal(t, Forward, cfg.Direction)
	require.NotNil(t, cfg.Cursor)
	assert.Equal(t, "smith", cfg.Cursor.CI)
	assert.Equal(t, id, cfg.Cursor.ID)
	assert.NotNil(t, cfg.KeysetWindow("name_ci"))
}

func TestConfigureKeyset_Before(t *testing.T) {
	id := primitive.NewObjectID()
	cfg := ConfigureKeyset(wafflemongo.EncodeCursor("adams", id), "")

	assert.Equal(t, Backward, cfg.Direction)
	assert.Equal(t, -1, cfg.SortOrder)
	require.NotNil(t, cfg.Cursor)
	assert.Equal(t, "adams", cfg.Cursor.CI)
}

func TestConfigureKeyset_GarbageCursor(t *testing.T) {
	cfg := ConfigureKeyset("", "not-a-cursor")

	assert.Nil(t, cfg.Cursor, "an undecodable cursor falls back to page one")
	assert.Nil(t, cfg.KeysetWindow("name_ci"))
}

func TestReverse(t *testing.T) {
	rows := []string{"a", "b", "c", "d"}
	Reverse(rows)
	assert.Equal(t, []string{"d", "c", "b", "a"}, rows)

	var empty []string
	Reverse(empty)
	assert.Empty(t, empty)
}

func TestBuildCursors(t *testing.T) {
	type row struct {
		key string
		id  primitive.ObjectID
	}
	rows := []row{
		{"adams", primitive.NewObjectID()},
		{"baker", primitive.NewObjectID()},
		{"clark", primitive.NewObjectID()},
	}

	prev, next := BuildCursors(rows,
		func(r row) string { return r.key },
		func(r row) primitive.ObjectID { return r.id })

	p, ok := wafflemongo.DecodeCursor(prev)
	require.True(t, ok)
	assert.Equal(t, "adams", p.CI)
	assert.Equal(t, rows[0].id, p.ID)

	n, ok := wafflemongo.DecodeCursor(next)
	require.True(t, ok)
	assert.Equal(t, "clark", n.CI)
	assert.Equal(t, rows[2].id, n.ID)
}

func TestBuildCursors_Empty(t *testing.T) {
	prev, next := BuildCursors(nil,
		func(r int) string { return "" },
		func(r int) primitive.ObjectID { return primitive.NilObjectID })

	assert.Empty(t, prev)
	assert.Empty(t, next)
}
