package blocktree

import "errors"

// ErrUnknownParent is returned when inserting a block whose parent has not
// been inserted yet.
var ErrUnknownParent = errors.New("unknown parent root")

// ErrNonMonotonicSlot is returned when a block's slot is not strictly
// greater than its parent's slot.
var ErrNonMonotonicSlot = errors.New("block slot not greater than parent slot")

// ErrDuplicateRoot is returned when a block with the same root was already
// inserted.
var ErrDuplicateRoot = errors.New("duplicate block root")

// ErrUnknownBlock is returned by queries referencing a root that is not in
// the tree.
var ErrUnknownBlock = errors.New("unknown block root")
