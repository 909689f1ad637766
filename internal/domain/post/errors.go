package post

import "errors"

var (
	ErrPostNotFound        = errors.New("post not found")
	ErrCommentNotFound     = errors.New("comment not found")
	ErrNotPostAuthor       = errors.New("not authorized to modify this post")
	ErrAlreadyShared       = errors.New("post already shared")
	ErrInvalidReactionType = errors.New("invalid reaction type")
)
