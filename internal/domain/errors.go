package domain

import "fmt"

// Not-found sentinels: queries for nonexistent entities must surface these,
// never a default/zero record.
var (
	ErrPostNotFound   = fmt.Errorf("post not found")
	ErrAuthorNotFound = fmt.Errorf("author not found")
)
