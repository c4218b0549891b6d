package packets

type CreatePostRequest struct {
	Body string `json:"body" binding:"required,max=2000"`
}

type CreateCommentRequest struct {
	Body string `json:"body" binding:"required,max=1000"`
}
