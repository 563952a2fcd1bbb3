package domain

// Keyed is implemented by list entries addressed by a stable id.
type Keyed interface {
	Key() string
}

// Add appends entry to a copy of list.
func Add[T any](list []T, entry T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, list...)
	return append(out, entry)
}

// Update returns a copy of list where the entry with the given id is replaced
// by apply(entry). Missing ids leave the copy unchanged.
func Update[T Keyed](list []T, id string, apply func(T) T) []T {
	out := make([]T, len(list))
	for i, e := range list {
		if e.Key() == id {
			e = apply(e)
		}
		out[i] = e
	}
	return out
}

// Remove returns a copy of list without the entry with the given id.
// The result is never nil.
func Remove[T Keyed](list []T, id string) []T {
	out := make([]T, 0, len(list))
	for _, e := range list {
		if e.Key() != id {
			out = append(out, e)
		}
	}
	return out
}

// Reorder adopts newOrder verbatim. Callers supply a full permutation of the
// current entries; see OrderByKeys for building one from ids.
func Reorder[T any](newOrder []T) []T {
	out := make([]T, len(newOrder))
	copy(out, newOrder)
	return out
}

// OrderByKeys builds the permutation of list named by keys. It fails with
// ErrInvalidOrder unless keys names every entry exactly once.
func OrderByKeys[T Keyed](list []T, keys []string) ([]T, error) {
	if len(keys) != len(list) {
		return nil, ErrInvalidOrder
	}
	byKey := make(map[string]T, len(list))
	for _, e := range list {
		byKey[e.Key()] = e
	}
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		e, ok := byKey[k]
		if !ok {
			return nil, ErrInvalidOrder
		}
		delete(byKey, k)
		out = append(out, e)
	}
	return out, nil
}

func AddLink(links []Link) ([]Link, Link) {
	l := NewLink()
	return Add(links, l), l
}

func UpdateLink(links []Link, id string, patch LinkPatch) []Link {
	return Update(links, id, patch.Apply)
}

// RemoveLink drops a link. Removing the last one leaves an empty list.
func RemoveLink(links []Link, id string) []Link {
	return Remove(links, id)
}

func ReorderLinks(newOrder []Link) []Link {
	return Reorder(newOrder)
}

func AddVideo(videos []Video) ([]Video, Video) {
	v := NewVideo()
	return Add(videos, v), v
}

func UpdateVideo(videos []Video, id string, patch VideoPatch) []Video {
	return Update(videos, id, patch.Apply)
}

// RemoveVideo drops a video. Removing the last one yields nil, meaning the
// profile has no featured videos at all.
func RemoveVideo(videos []Video, id string) []Video {
	out := Remove(videos, id)
	if len(out) == 0 {
		return nil
	}
	return out
}

func ReorderVideos(newOrder []Video) []Video {
	if len(newOrder) == 0 {
		return nil
	}
	return Reorder(newOrder)
}
