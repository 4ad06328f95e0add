package order

import "github.com/unmoha/restaurant-customer-order-management/model"

// Less reports whether a must come before b.
type Less func(a, b model.Order) bool

// ByTimestamp orders by creation time. The fixed zero-padded layout makes
// string order chronological.
func ByTimestamp(a, b model.Order) bool {
	return a.Timestamp < b.Timestamp
}

type node struct {
	order *model.Order
	next  *node
}

// MergeSort returns orders sorted by less. Equal elements keep their input
// order. The input slice is not modified.
func MergeSort(orders []model.Order, less Less) []model.Order {
	if len(orders) < 2 {
		res := make([]model.Order, len(orders))
		copy(res, orders)
		return res
	}

	nodes := make([]node, len(orders))
	for i := range orders {
		nodes[i].order = &orders[i]
		if i+1 < len(nodes) {
			nodes[i].next = &nodes[i+1]
		}
	}

	res := make([]model.Order, 0, len(orders))
	for n := mergeSort(&nodes[0], less); n != nil; n = n.next {
		res = append(res, *n.order)
	}
	return res
}

func mergeSort(head *node, less Less) *node {
	if head == nil || head.next == nil {
		return head
	}

	slow, fast := head, head.next
	for fast != nil && fast.next != nil {
		slow = slow.next
		fast = fast.next.next
	}
	mid := slow.next
	slow.next = nil

	return merge(mergeSort(head, less), mergeSort(mid, less), less)
}

// merge takes from the right run only when it is strictly smaller, so ties
// resolve to the left run, which held the earlier elements.
func merge(left, right *node, less Less) *node {
	var dummy node
	tail := &dummy
	for left != nil && right != nil {
		if less(*right.order, *left.order) {
			tail.next = right
			right = right.next
		} else {
			tail.next = left
			left = left.next
		}
		tail = tail.next
	}
	if left != nil {
		tail.next = left
	} else {
		tail.next = right
	}
	return dummy.next
}
