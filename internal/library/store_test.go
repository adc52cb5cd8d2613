package library

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icemuppet/cinema/pkg/scene"
)

func movieItem(key, title string, year int) *Item {
	return &Item{
		Category:  scene.CategoryMovies,
		Key:       key,
		Title:     title,
		Year:      year,
		Path:      "/movies/" + key + ".mkv",
		SizeBytes: 1 << 30,
		ModTime:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestUpsertItem_InsertThenRefresh(t *testing.T) {
	store := NewStore(setupTestDB(t))

	it := movieItem("heat|1995", "Heat", 1995)
	it.TMDBID = ptr(int64(949))
	require.NoError(t, store.UpsertItem(it))
	require.NotZero(t, it.ID)
	firstSeen := it.FirstSeen

	// Upserting the same key updates in place and keeps first_seen.
	again := movieItem("heat|1995", "Heat", 1995)
	again.SizeBytes = 2 << 30
	require.NoError(t, store.UpsertItem(again))

	assert.Equal(t, it.ID, again.ID)
	assert.Equal(t, firstSeen.UTC().Truncate(time.Second), again.FirstSeen.UTC().Truncate(time.Second))

	got, err := store.GetItem(it.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2<<30), got.SizeBytes)

	_, total, err := store.ListItems(ItemFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestGetItem_NotFound(t *testing.T) {
	store := NewStore(setupTestDB(t))
	_, err := store.GetItem(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpsertItem_NullTMDBID(t *testing.T) {
	store := NewStore(setupTestDB(t))

	it := movieItem("obscure film|2019", "Obscure Film", 2019)
	require.NoError(t, store.UpsertItem(it))

	got, err := store.GetItem(it.ID)
	require.NoError(t, err)
	assert.Nil(t, got.TMDBID)
}

func TestListItems_Filter(t *testing.T) {
	store := NewStore(setupTestDB(t))

	require.NoError(t, store.UpsertItem(movieItem("heat|1995", "Heat", 1995)))
	arch := movieItem("old film|1960", "Old Film", 1960)
	arch.Archived = true
	require.NoError(t, store.UpsertItem(arch))
	show := &Item{Category: scene.CategoryShows, Key: "south park", Title: "South Park",
		Path: "/tv/South Park", ModTime: time.Now()}
	require.NoError(t, store.UpsertItem(show))

	cat := scene.CategoryMovies
	items, total, err := store.ListItems(ItemFilter{Category: &cat})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, items, 2)

	archived := false
	items, total, err = store.ListItems(ItemFilter{Category: &cat, Archived: &archived})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Heat", items[0].Title)
}

func TestNewestItems(t *testing.T) {
	store := NewStore(setupTestDB(t))

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i, key := range []string{"first|2020", "second|2021", "third|2022"} {
		it := movieItem(key, key, 2020+i)
		it.ModTime = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, store.UpsertItem(it))
	}
	arch := movieItem("archived|2023", "Archived", 2023)
	arch.Archived = true
	arch.ModTime = base.Add(100 * time.Hour)
	require.NoError(t, store.UpsertItem(arch))

	items, err := store.NewestItems(string(scene.CategoryMovies), 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "third|2022", items[0].Key)
	assert.Equal(t, "second|2021", items[1].Key)
}

func TestPruneVanished(t *testing.T) {
	store := NewStore(setupTestDB(t))

	require.NoError(t, store.UpsertItem(movieItem("stale|2010", "Stale", 2010)))
	time.Sleep(20 * time.Millisecond)
	cutoff := time.Now()
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, store.UpsertItem(movieItem("fresh|2020", "Fresh", 2020)))

	n, err := store.PruneVanished(string(scene.CategoryMovies), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, total, err := store.ListItems(ItemFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestEpisodes(t *testing.T) {
	store := NewStore(setupTestDB(t))

	show := &Item{Category: scene.CategoryShows, Key: "south park", Title: "South Park",
		Path: "/tv/South Park", ModTime: time.Now()}
	require.NoError(t, store.UpsertItem(show))

	e1 := &Episode{ItemID: show.ID, Season: 27, Episode: 3, Title: "Got a Nut",
		Path: "/tv/South Park/s27e03.mkv", SizeBytes: 1200 << 20, ModTime: time.Now()}
	require.NoError(t, store.UpsertEpisode(e1))
	e2 := &Episode{ItemID: show.ID, Season: 27, Episode: 1,
		Path: "/tv/South Park/s27e01.mkv", SizeBytes: 900 << 20, ModTime: time.Now().Add(-time.Hour)}
	require.NoError(t, store.UpsertEpisode(e2))

	// Upsert of the same episode replaces the file reference.
	bigger := &Episode{ItemID: show.ID, Season: 27, Episode: 1,
		Path: "/tv/South Park/s27e01-better.mkv", SizeBytes: 1500 << 20, ModTime: time.Now()}
	require.NoError(t, store.UpsertEpisode(bigger))
	assert.Equal(t, e2.ID, bigger.ID)

	eps, err := store.ListEpisodes(show.ID)
	require.NoError(t, err)
	require.Len(t, eps, 2)
	assert.Equal(t, 1, eps[0].Episode)
	assert.Equal(t, "/tv/South Park/s27e01-better.mkv", eps[0].Path)
	assert.Equal(t, 3, eps[1].Episode)

	newest, err := store.NewestEpisodes(10)
	require.NoError(t, err)
	require.Len(t, newest, 2)
	assert.Equal(t, "South Park", newest[0].ShowTitle)
}

func TestCategoryStats(t *testing.T) {
	store := NewStore(setupTestDB(t))

	m := movieItem("heat|1995", "Heat", 1995)
	m.SizeBytes = 100
	require.NoError(t, store.UpsertItem(m))
	arch := movieItem("old film|1960", "Old Film", 1960)
	arch.SizeBytes = 50
	arch.Archived = true
	require.NoError(t, store.UpsertItem(arch))

	show := &Item{Category: scene.CategoryShows, Key: "south park", Title: "South Park",
		Path: "/tv/South Park", ModTime: time.Now()}
	require.NoError(t, store.UpsertItem(show))
	require.NoError(t, store.UpsertEpisode(&Episode{ItemID: show.ID, Season: 1, Episode: 1,
		Path: "/tv/a.mkv", SizeBytes: 40, ModTime: time.Now()}))
	require.NoError(t, store.UpsertEpisode(&Episode{ItemID: show.ID, Season: 1, Episode: 2,
		Path: "/tv/b.mkv", SizeBytes: 60, ModTime: time.Now()}))

	stats, err := store.CategoryStats()
	require.NoError(t, err)
	require.Len(t, stats, 2)

	byCat := map[scene.Category]CategoryStat{}
	for _, st := range stats {
		byCat[st.Category] = st
	}
	assert.Equal(t, 2, byCat[scene.CategoryMovies].Items)
	assert.Equal(t, 1, byCat[scene.CategoryMovies].Archived)
	assert.Equal(t, int64(150), byCat[scene.CategoryMovies].TotalBytes)
	assert.Equal(t, 1, byCat[scene.CategoryShows].Items)
	assert.Equal(t, 2, byCat[scene.CategoryShows].Episodes)
	assert.Equal(t, 0, byCat[scene.CategoryShows].Archived)
	assert.Equal(t, int64(100), byCat[scene.CategoryShows].TotalBytes)
}

func TestTxRollback(t *testing.T) {
	store := NewStore(setupTestDB(t))

	tx, err := store.Begin()
	require.NoError(t, err)
	require.NoError(t, tx.UpsertItem(movieItem("heat|1995", "Heat", 1995)))
	require.NoError(t, tx.Rollback())

	_, total, err := store.ListItems(ItemFilter{})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestTxCommit(t *testing.T) {
	store := NewStore(setupTestDB(t))

	tx, err := store.Begin()
	require.NoError(t, err)
	it := movieItem("heat|1995", "Heat", 1995)
	require.NoError(t, tx.UpsertItem(it))
	require.NoError(t, tx.UpsertEpisode(&Episode{ItemID: it.ID, Season: 1, Episode: 1,
		Path: "/x.mkv", ModTime: time.Now()}))
	require.NoError(t, tx.Commit())

	eps, err := store.ListEpisodes(it.ID)
	require.NoError(t, err)
	assert.Len(t, eps, 1)
}
