package domain

// PostStatus is the moderation status of a Post. Submitted posts are moderated
// into approved or rejected; archiving is an administrative action reachable from
// any status.
type PostStatus string

const (
	PostStatusSubmitted PostStatus = "submitted"
	PostStatusApproved  PostStatus = "approved"
	PostStatusRejected  PostStatus = "rejected"
	PostStatusArchived  PostStatus = "archived"
)

// ParsePostStatus returns the PostStatus for s, or false if s is not a known
// status value.
func ParsePostStatus(s string) (PostStatus, bool) {
	switch PostStatus(s) {
	case PostStatusSubmitted, PostStatusApproved, PostStatusRejected, PostStatusArchived:
		return PostStatus(s), true
	}
	return "", false
}

// IsPubliclyVisible reports whether posts in this status appear on public pages.
func (s PostStatus) IsPubliclyVisible() bool {
	return s == PostStatusApproved
}

// CanBeModerated reports whether a moderation decision may be applied in this
// status. Approved posts can be re-reviewed into rejected; rejected and archived
// posts are terminal for moderation.
func (s PostStatus) CanBeModerated() bool {
	return s == PostStatusSubmitted || s == PostStatusApproved
}
