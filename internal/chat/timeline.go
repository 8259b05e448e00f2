package chat

import "sort"

// SortByCreatedAt orders messages ascending by creation time, in place. The
// sort is stable so messages with equal timestamps keep the server's order.
func SortByCreatedAt(msgs []Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})
}
