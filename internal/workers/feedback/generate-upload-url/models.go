// internal/workers/feedback/generate-upload-url/models.go
package generateuploadurl

// Input fields are optional; requests are not authenticated yet so the
// user falls back to DefaultUserID.
type Input struct {
	UserID  string `json:"userId,omitempty"`
	OrderID string `json:"orderId,omitempty"`
}

type Output struct {
	UploadURL string `json:"uploadUrl"`
	PhotoKey  string `json:"photoKey"`
	ExpiresIn int    `json:"expiresIn"` // seconds
}
