package notification

const (
	ToastSuccess = "success"
	ToastError   = "error"
	ToastInfo    = "info"
)

// Toast is a transient notification returned to the acting client. It is
// never persisted; durable rows go through the repository instead.
type Toast struct {
	UserID  string `json:"userId"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func NewToast(userID, title, message, toastType string) Toast {
	return Toast{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    toastType,
	}
}

type NotificationResponse struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Link      *string        `json:"link,omitempty"`
	Payload   map[string]any `json:"payload,omitempty"`
	IsRead    bool           `json:"is_read"`
	CreatedAt string         `json:"created_at"`
}

type MarkReadRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}
