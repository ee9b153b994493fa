package dom

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage_LookupMountedOnly(t *testing.T) {
	p := NewPage("#moon-phase")

	el, ok := p.Lookup(" #moon-phase ")
	require.True(t, ok)
	assert.Equal(t, "#moon-phase", el.Locator())

	_, ok = p.Lookup("#star-chart")
	assert.False(t, ok)
}

func TestPage_ReplaceAndSnapshotClone(t *testing.T) {
	p := NewPage("#a")
	el, ok := p.Lookup("#a")
	require.True(t, ok)

	before := time.Now()
	el.Replace(Text{Value: "Loading…"})
	el.Replace(Image{Src: "https://img/x.png", Alt: "x"}, Text{Value: "caption"})

	snap, ok := p.Snapshot("#a")
	require.True(t, ok)
	assert.Equal(t, uint64(2), snap.Version)
	assert.False(t, snap.UpdatedAt.Before(before))
	assert.Equal(t, "caption", snap.Text())
	require.Len(t, snap.Images(), 1)
	assert.Equal(t, "https://img/x.png", snap.Images()[0].Src)

	// Returned snapshot should be independent of the stored one.
	snap.Nodes[0] = Text{Value: "changed"}
	again, _ := p.Snapshot("#a")
	assert.IsType(t, Image{}, again.Nodes[0])
}

func TestPage_ReplaceWithNothingClears(t *testing.T) {
	p := NewPage("#a")
	el, _ := p.Lookup("#a")
	el.Replace(Text{Value: "x"})
	el.Replace()

	snap, _ := p.Snapshot("#a")
	assert.Empty(t, snap.Nodes)
	assert.Equal(t, "", snap.Text())
}

func TestPage_OnChangeReceivesCopy(t *testing.T) {
	p := NewPage("#a", "#b")
	var got []Snapshot
	p.OnChange(func(s Snapshot) { got = append(got, s) })

	el, _ := p.Lookup("#b")
	el.Replace(Text{Value: "hello"})

	require.Len(t, got, 1)
	assert.Equal(t, "#b", got[0].Locator)
	assert.Equal(t, "hello", got[0].Text())
}

func TestPage_SnapshotsInMountOrder(t *testing.T) {
	p := NewPage("#b", "#a")
	p.Mount("#b")
	p.Mount("")

	snaps := p.Snapshots()
	require.Len(t, snaps, 2)
	assert.Equal(t, "#b", snaps[0].Locator)
	assert.Equal(t, "#a", snaps[1].Locator)
}

func TestPage_ConcurrentReplaceLastWriterWins(t *testing.T) {
	p := NewPage("#a")
	el, _ := p.Lookup("#a")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			el.Replace(Text{Value: "x"})
		}()
	}
	wg.Wait()

	snap, _ := p.Snapshot("#a")
	assert.Equal(t, uint64(50), snap.Version)
	assert.Equal(t, "x", snap.Text())
}
