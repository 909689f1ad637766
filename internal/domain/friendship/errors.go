package friendship

import "errors"

var (
	ErrFriendshipNotFound = errors.New("friend request not found")
	ErrSelfFriendship     = errors.New("cannot send friend request to yourself")
	ErrAlreadyRequested   = errors.New("friend request already sent")
	ErrAlreadyFriends     = errors.New("already friends")
	ErrNotAddressee       = errors.New("not authorized to respond to this request")
	ErrNotPending         = errors.New("friend request is not pending")
)
