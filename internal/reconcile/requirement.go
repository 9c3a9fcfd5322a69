package reconcile

import (
	"sort"

	"chatdash/internal/format"
	"chatdash/internal/models"
)

// GroupRequirements clusters a flat requirement list into parent/reply
// groups keyed by the parsed source tag. Reply records attach to the key's
// replies list; a channel-sourced record becomes the group's main entry;
// manual requirements form singleton groups. Groups that never received a
// main record are orphaned replies and are dropped entirely.
func GroupRequirements(reqs []models.Requirement) []models.RequirementGroup {
	type bucket struct {
		main    *models.Requirement
		replies []models.Requirement
	}

	buckets := make(map[string]*bucket)
	order := make([]string, 0, len(reqs))

	get := func(key string) *bucket {
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
			order = append(order, key)
		}
		return b
	}

	for _, r := range reqs {
		key := r.Source.GroupKey(r.ID)
		switch r.Source.Kind {
		case models.SourceReply:
			get(key).replies = append(get(key).replies, r)
		default:
			// Channel-sourced and manual records both anchor their group; a
			// channel record is expected at most once per key and overwrites
			// any placeholder.
			r := r
			get(key).main = &r
		}
	}

	groups := make([]models.RequirementGroup, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		if b.main == nil {
			continue
		}
		groups = append(groups, models.RequirementGroup{
			Key:     key,
			Main:    *b.main,
			Replies: b.replies,
		})
	}

	sortGroups(groups)
	return groups
}

// sortGroups orders pinned first, then pending before done, then newest
// first by creation time.
func sortGroups(groups []models.RequirementGroup) {
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i].Main, groups[j].Main
		if a.Pinned != b.Pinned {
			return a.Pinned
		}
		aDone := a.Status == models.StatusDone
		bDone := b.Status == models.StatusDone
		if aDone != bDone {
			return !aDone
		}
		return laterCreated(a.CreatedAt, b.CreatedAt)
	})
}

func laterCreated(a, b string) bool {
	ta, okA := format.ParseTimestamp(a)
	tb, okB := format.ParseTimestamp(b)
	if okA && okB {
		return ta.After(tb)
	}
	// ISO timestamps compare lexicographically; keeps garbage deterministic.
	return a > b
}
