package handler

type sendMessageRequest struct {
	ReceiverID string `json:"receiver_id" validate:"required"`
	Content    string `json:"content" validate:"required,max=5000"`
}

type unreadResponse struct {
	Count int64 `json:"count"`
}
