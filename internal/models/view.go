package models

// Identity is the resolved display identity of a user: the display name
// fallback chain (name, email, "Anonymous") plus the resolved profile image
// URL, nil when the user has no profile image or the object is gone.
type Identity struct {
	DisplayName     string  `json:"display_name"`
	ProfileImageURL *string `json:"profile_image_url"`
}

// ImageView is the hydrated, denormalized image object returned to clients.
// It spreads every Image field and adds the resolved storage URL, the likes
// set, uploader identity, and repost lineage. For reposts whose origin no
// longer exists the Original* fields are nil; the repost itself stays
// visible.
type ImageView struct {
	Image
	URL                             string  `json:"url"`
	Likes                           []uint  `json:"likes"`
	LikeCount                       int     `json:"like_count"`
	Uploader                        string  `json:"uploader"`
	UploaderProfileImageURL         *string `json:"uploader_profile_image_url"`
	OriginalUploader                *string `json:"original_uploader"`
	OriginalUploaderProfileImageURL *string `json:"original_uploader_profile_image_url"`
}

// CommentView is a comment hydrated with its author's display identity.
type CommentView struct {
	Comment
	CommenterName            string  `json:"commenter_name"`
	CommenterProfileImageURL *string `json:"commenter_profile_image_url"`
}
