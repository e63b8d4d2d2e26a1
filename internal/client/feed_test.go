package client

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"clubhub/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(n int) string {
	w := make([]string, n)
	for i := range w {
		w[i] = "w"
	}
	return strings.Join(w, " ")
}

func TestPreview(t *testing.T) {
	got, cut := Preview("  short   text ", 30)
	assert.Equal(t, "short text", got)
	assert.False(t, cut)

	got, cut = Preview(words(31), 30)
	assert.True(t, cut)
	assert.Equal(t, words(30)+"...", got)
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2030, 1, 1, 9, 5, 0, 0, time.UTC)
	assert.Equal(t, "Tue, 01 Jan 2030 09:05", FormatDate(ts, time.UTC))
	assert.Equal(t, "TBA", FormatDate(time.Time{}, time.UTC))
}

func TestFeed_ExpandCollapse(t *testing.T) {
	long := words(40) + " tail"
	f := NewFeed(time.UTC)
	f.Replace([]dto.EventView{
		{ID: "a", Title: "Hackathon", Category: "Competition", Description: long, RegistrationLink: "https://reg.example"},
		{ID: "b", Title: "Talk", Category: "Seminar", Description: "brief"},
	})

	var out bytes.Buffer
	f.Render(&out)
	assert.NotContains(t, out.String(), "tail")
	assert.Contains(t, out.String(), "(expand 1 to read more)")
	assert.Contains(t, out.String(), "Register: https://reg.example")
	assert.NotContains(t, out.String(), "(expand 2")

	require.NoError(t, f.Expand(1))
	out.Reset()
	f.Render(&out)
	assert.Contains(t, out.String(), "tail")

	// Expanded state survives a refresh while the event is still listed.
	f.Replace(f.events)
	out.Reset()
	f.Render(&out)
	assert.Contains(t, out.String(), "tail")

	require.NoError(t, f.Collapse(1))
	out.Reset()
	f.Render(&out)
	assert.NotContains(t, out.String(), "tail")

	assert.Error(t, f.Expand(0))
	assert.Error(t, f.Expand(3))
}

func TestFeed_Empty(t *testing.T) {
	var out bytes.Buffer
	NewFeed(nil).Render(&out)
	assert.Equal(t, "No events yet.\n", out.String())
}
