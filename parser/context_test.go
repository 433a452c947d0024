package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goarxml/goarxml/constant"
	"github.com/goarxml/goarxml/internal/testutil"
)

func TestContextPushPop(t *testing.T) {
	var c Context
	c.Push()
	require.NoError(t, c.DefaultHandler(testutil.T("SHORT-NAME", "outer"), "X"))

	c.Push()
	assert.Equal(t, 2, c.Depth())
	assert.Empty(t, c.Name(), "new frame starts empty")
	require.NoError(t, c.DefaultHandler(testutil.T("SHORT-NAME", "inner"), "X"))
	require.NoError(t, c.DefaultHandler(testutil.T("CATEGORY", "VALUE"), "X"))
	assert.Equal(t, "inner", c.Name())
	assert.Equal(t, "VALUE", c.Category())
	c.Pop(nil)

	assert.Equal(t, "outer", c.Name())
	assert.Empty(t, c.Category())
	c.Pop(nil)
	assert.Equal(t, 0, c.Depth())
}

func TestContextPopAppliesMetadata(t *testing.T) {
	var c Context
	c.Push()
	require.NoError(t, c.DefaultHandler(testutil.E("DESC", testutil.Attr(testutil.T("L-2", "d"), "L", "EN")), "X"))
	require.NoError(t, c.DefaultHandler(testutil.E("LONG-NAME", testutil.Attr(testutil.T("L-4", "n"), "L", "FOR-ALL")), "X"))
	assert.Equal(t, "d", c.Desc().Text)
	assert.Equal(t, "n", c.LongName().Text)

	target := &constant.Constant{}
	c.Pop(target)
	require.NotNil(t, target.Desc)
	assert.Equal(t, constant.LangText{Text: "d", Lang: "EN"}, *target.Desc)
	require.NotNil(t, target.LongName)
	assert.Equal(t, constant.LangText{Text: "n", Lang: "FOR-ALL"}, *target.LongName)
}

func TestContextPopWithoutMetadataLeavesTarget(t *testing.T) {
	var c Context
	c.Push()
	target := &constant.Constant{}
	c.Pop(target)
	assert.Nil(t, target.Desc)
	assert.Nil(t, target.LongName)
}

func TestContextDescWithoutParagraph(t *testing.T) {
	var c Context
	c.Push()
	defer c.Pop(nil)
	require.NoError(t, c.DefaultHandler(testutil.E("DESC"), "X"))
	assert.Nil(t, c.Desc())
}

func TestContextDefaultHandlerRejectsUnknown(t *testing.T) {
	var c Context
	c.Push()
	defer c.Pop(nil)

	err := c.DefaultHandler(testutil.T("INTRODUCTION", ""), "CONSTANT-SPECIFICATION")
	require.ErrorIs(t, err, ErrUnsupportedTag)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "INTRODUCTION", perr.Tag)
	assert.Equal(t, "CONSTANT-SPECIFICATION", perr.Parent)
	assert.Equal(t, "unsupported-tag", perr.Code())
}

func TestContextAdminData(t *testing.T) {
	var c Context
	c.Push()
	defer c.Pop(nil)

	admin := testutil.E("ADMIN-DATA",
		testutil.T("LANGUAGE", "EN"),
		testutil.E("SDGS",
			testutil.Attr(testutil.E("SDG", testutil.Attr(testutil.T("SD", "1"), "GID", "a"), testutil.T("SD", "2")), "GID", "first"),
			testutil.Attr(testutil.E("SDG"), "GID", "second"),
		),
	)
	require.NoError(t, c.DefaultHandler(admin, "X"))

	want := &constant.AdminData{SpecialDataGroups: []constant.SpecialDataGroup{
		{GID: "first", SpecialData: []constant.SpecialData{{GID: "a", Text: "1"}, {Text: "2"}}},
		{GID: "second"},
	}}
	assert.Equal(t, want, c.AdminData())

	bad := testutil.E("ADMIN-DATA", testutil.E("SDGS", testutil.Attr(testutil.E("SDG", testutil.T("SDX", "")), "GID", "g")))
	require.ErrorIs(t, c.DefaultHandler(bad, "X"), ErrUnsupportedTag)
}

func TestContextScope(t *testing.T) {
	var c Context
	target := &constant.Constant{}

	err := c.Scope(func() (constant.Describable, error) {
		assert.Equal(t, 1, c.Depth())
		require.NoError(t, c.DefaultHandler(testutil.E("DESC", testutil.Attr(testutil.T("L-2", "kept"), "L", "EN")), "X"))
		return target, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, c.Depth())
	require.NotNil(t, target.Desc)
	assert.Equal(t, "kept", target.Desc.Text)

	failed := &constant.Constant{}
	boom := errors.New("boom")
	err = c.Scope(func() (constant.Describable, error) {
		require.NoError(t, c.DefaultHandler(testutil.E("DESC", testutil.Attr(testutil.T("L-2", "dropped"), "L", "EN")), "X"))
		return failed, boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Depth())
	assert.Nil(t, failed.Desc, "metadata is not applied on failure")
}

func TestContextScopePopsOnPanic(t *testing.T) {
	var c Context
	assert.Panics(t, func() {
		_ = c.Scope(func() (constant.Describable, error) {
			panic("unexpected")
		})
	})
	assert.Equal(t, 0, c.Depth())
}

func TestContextEmptyStackPanics(t *testing.T) {
	var c Context
	assert.Panics(t, func() { _ = c.Name() })
	assert.Panics(t, func() { c.Pop(nil) })
}
