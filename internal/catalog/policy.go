package catalog

// CanAdd reports whether one more unit of an item may enter a cart that
// already holds currentQty units. An item whose ceiling is zero is out of
// stock and never addable, including the very first unit. A blocked add
// is an expected steady-state outcome, not a fault; removals are never
// gated here.
func CanAdd(av Availability, currentQty int) bool {
	if av == nil {
		return false
	}
	ceiling := av.Ceiling()
	return ceiling > 0 && currentQty < ceiling
}

// RemainingCapacity returns how many more units may be added on top of
// currentQty. Never negative.
func RemainingCapacity(av Availability, currentQty int) int {
	if av == nil {
		return 0
	}
	remaining := av.Ceiling() - currentQty
	if remaining < 0 {
		return 0
	}
	return remaining
}
