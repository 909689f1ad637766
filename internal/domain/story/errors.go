package story

import "errors"

var (
	ErrStoryNotFound  = errors.New("story not found")
	ErrStoryExpired   = errors.New("story has expired")
	ErrNotStoryAuthor = errors.New("not authorized to modify this story")
)
