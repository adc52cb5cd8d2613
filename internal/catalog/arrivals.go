package catalog

import "sort"

// SelectNewest returns up to n non-archived items ordered by file
// modification time, newest first, ties broken by path for stable output.
func SelectNewest(items []Item, n int) []Item {
	fresh := make([]Item, 0, len(items))
	for _, it := range items {
		if !it.Entry.Archived {
			fresh = append(fresh, it)
		}
	}
	sort.Slice(fresh, func(i, j int) bool {
		a, b := fresh[i].Entry, fresh[j].Entry
		if !a.ModTime.Equal(b.ModTime) {
			return a.ModTime.After(b.ModTime)
		}
		return a.Path < b.Path
	})
	if len(fresh) > n {
		fresh = fresh[:n]
	}
	return fresh
}

// NewArrival is one show with its freshest episodes.
type NewArrival struct {
	Show     ShowGroup
	Episodes []Item
	HasMore  bool // the show has more recent episodes than perShow allows
}

// SelectNewestShows picks up to n shows ranked by their newest non-archived
// episode, listing at most perShow episodes each.
func SelectNewestShows(groups []ShowGroup, n, perShow int) []NewArrival {
	type ranked struct {
		group    ShowGroup
		episodes []Item
	}

	var shows []ranked
	for _, g := range groups {
		eps := SelectNewest(g.Episodes, len(g.Episodes))
		if len(eps) > 0 {
			shows = append(shows, ranked{group: g, episodes: eps})
		}
	}
	sort.Slice(shows, func(i, j int) bool {
		a, b := shows[i].episodes[0].Entry, shows[j].episodes[0].Entry
		if !a.ModTime.Equal(b.ModTime) {
			return a.ModTime.After(b.ModTime)
		}
		return a.Path < b.Path
	})
	if len(shows) > n {
		shows = shows[:n]
	}

	arrivals := make([]NewArrival, 0, len(shows))
	for _, s := range shows {
		a := NewArrival{Show: s.group, Episodes: s.episodes}
		if len(a.Episodes) > perShow {
			a.Episodes = a.Episodes[:perShow]
			a.HasMore = true
		}
		arrivals = append(arrivals, a)
	}
	return arrivals
}
